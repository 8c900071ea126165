package dbf

import (
	"bytes"
	"errors"
	"testing"
)

func TestConverterFromCodePage(t *testing.T) {
	tests := []struct {
		codePage byte
		name     string
		known    bool
	}{
		{0x00, "ascii", true},
		{0x01, "cp437", true},
		{0x02, "cp850", true},
		{0x03, "cp1252", true},
		{0x57, "cp1252", true},
		{0x64, "cp852", true},
		{0xC8, "cp1250", true},
		{0xC9, "cp1251", true},
		{0x7F, "utf-8", false},
	}
	for _, tt := range tests {
		converter, known := ConverterFromCodePage(tt.codePage)
		if known != tt.known {
			t.Errorf("code page 0x%02X: got known=%v, want %v", tt.codePage, known, tt.known)
		}
		if converter.Name() != tt.name {
			t.Errorf("code page 0x%02X: got name %q, want %q", tt.codePage, converter.Name(), tt.name)
		}
	}
}

func TestConverterFromName(t *testing.T) {
	converter, err := ConverterFromName("CP1252")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if converter.Name() != "cp1252" {
		t.Errorf("got name %q, want cp1252", converter.Name())
	}
	if _, err := ConverterFromName("klingon"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestCharmapConverterDecode(t *testing.T) {
	converter, _ := ConverterFromCodePage(0x03)
	out, err := converter.Decode([]byte{'c', 'a', 'f', 0xE9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "café" {
		t.Errorf("got %q, want café", out)
	}
}

func TestCharmapConverterRoundTrip(t *testing.T) {
	converter, _ := ConverterFromCodePage(0xC9)
	original := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2} // "Привет" in cp1251
	decoded, err := converter.Decode(original)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(decoded) != "Привет" {
		t.Fatalf("got %q, want Привет", decoded)
	}
	encoded, err := converter.Encode(decoded)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.Equal(encoded, original) {
		t.Errorf("round trip mismatch: got % X, want % X", encoded, original)
	}
}

func TestUTF8ConverterFallback(t *testing.T) {
	converter := UTF8Converter{fallback: '?'}
	out, err := converter.Decode([]byte{'a', 0xFF, 'b'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != "a?b" {
		t.Errorf("got %q, want a?b", out)
	}
	valid := []byte("plain")
	out, _ = converter.Decode(valid)
	if !bytes.Equal(out, valid) {
		t.Errorf("valid input should pass through unchanged")
	}
}
