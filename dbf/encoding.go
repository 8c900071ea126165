package dbf

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// EncodingConverter translates between the table character set and UTF-8.
type EncodingConverter interface {
	Decode(in []byte) ([]byte, error)
	Encode(in []byte) ([]byte, error)
	CodePage() byte
	Name() string
}

// CharmapConverter converts through one of the golang.org/x/text charmaps.
type CharmapConverter struct {
	charmap  *charmap.Charmap
	name     string
	codePage byte
}

func (c CharmapConverter) Decode(in []byte) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(in), c.charmap.NewDecoder()))
	if err != nil {
		return nil, newError("dbf-encoding-decode-1", err)
	}
	return out, nil
}

func (c CharmapConverter) Encode(in []byte) ([]byte, error) {
	out, _, err := transform.Bytes(encoding.ReplaceUnsupported(c.charmap.NewEncoder()), in)
	if err != nil {
		return nil, newError("dbf-encoding-encode-1", err)
	}
	return out, nil
}

func (c CharmapConverter) CodePage() byte {
	return c.codePage
}

func (c CharmapConverter) Name() string {
	return c.name
}

// UTF8Converter passes data through, replacing invalid UTF-8 sequences with
// the fallback rune. It backs the "ascii" code page and the recovery path
// for unknown encodings.
type UTF8Converter struct {
	name     string
	codePage byte
	fallback rune
}

func (c UTF8Converter) Decode(in []byte) ([]byte, error) {
	if utf8.Valid(in) {
		return in, nil
	}
	fallback := c.fallback
	if fallback == 0 {
		fallback = utf8.RuneError
	}
	out := make([]byte, 0, len(in))
	for len(in) > 0 {
		r, size := utf8.DecodeRune(in)
		if r == utf8.RuneError && size == 1 {
			r = fallback
		}
		out = utf8.AppendRune(out, r)
		in = in[size:]
	}
	return out, nil
}

func (c UTF8Converter) Encode(in []byte) ([]byte, error) {
	return in, nil
}

func (c UTF8Converter) CodePage() byte {
	return c.codePage
}

func (c UTF8Converter) Name() string {
	if len(c.name) == 0 {
		return "utf-8"
	}
	return c.name
}

// Code page marks of the language drivers this package interprets.
// https://learn.microsoft.com/en-us/previous-versions/visualstudio/foxpro/8t45x02s(v=vs.71)
var codePages = map[byte]CharmapConverter{
	0x01: {charmap: charmap.CodePage437, name: "cp437", codePage: 0x01},
	0x02: {charmap: charmap.CodePage850, name: "cp850", codePage: 0x02},
	0x03: {charmap: charmap.Windows1252, name: "cp1252", codePage: 0x03},
	0x57: {charmap: charmap.Windows1252, name: "cp1252", codePage: 0x57},
	0x64: {charmap: charmap.CodePage852, name: "cp852", codePage: 0x64},
	0xC8: {charmap: charmap.Windows1250, name: "cp1250", codePage: 0xC8},
	0xC9: {charmap: charmap.Windows1251, name: "cp1251", codePage: 0xC9},
}

// ConverterFromCodePage interprets a language driver byte from the table
// header. Unknown marks fall back to UTF-8 passthrough, the second return
// reports whether the mark was recognized.
func ConverterFromCodePage(codePage byte) (EncodingConverter, bool) {
	if converter, ok := codePages[codePage]; ok {
		return converter, true
	}
	if codePage == 0x00 {
		return UTF8Converter{name: "ascii"}, true
	}
	return UTF8Converter{codePage: codePage}, false
}

// ConverterFromName resolves a caller supplied encoding override.
// Returns ErrInvalidEncoding for names outside the registry.
func ConverterFromName(name string) (EncodingConverter, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "ascii":
		return UTF8Converter{name: "ascii"}, nil
	case "utf8", "utf-8":
		return UTF8Converter{}, nil
	}
	for _, converter := range codePages {
		if converter.name == normalized {
			return converter, nil
		}
	}
	return nil, newError("dbf-encoding-fromname-1", ErrInvalidEncoding)
}
