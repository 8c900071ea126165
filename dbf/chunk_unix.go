//go:build !windows
// +build !windows

package dbf

import (
	"os"

	"golang.org/x/sys/unix"
)

func mapChunk(file *os.File, offset int64, length int) ([]byte, error) {
	return unix.Mmap(int(file.Fd()), offset, length, unix.PROT_READ, unix.MAP_SHARED)
}

func unmapChunk(view []byte) error {
	return unix.Munmap(view)
}
