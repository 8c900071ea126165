//go:build windows
// +build windows

package dbf

import (
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

func mapChunk(file *os.File, offset int64, length int) ([]byte, error) {
	mapping, err := windows.CreateFileMapping(windows.Handle(file.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(mapping)
	addr, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_READ, uint32(offset>>32), uint32(offset), uintptr(length))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), length), nil
}

func unmapChunk(view []byte) error {
	return windows.UnmapViewOfFile(uintptr(unsafe.Pointer(&view[0])))
}
