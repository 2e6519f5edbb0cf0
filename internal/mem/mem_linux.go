//go:build linux

package mem

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/unix"
)

// Map maps a region of page-backed memory. A named region is backed by a
// file under /dev/shm and may be shared with other processes; an unnamed
// region is an anonymous shared mapping.
func Map(opts MapOptions) (*MappedRegion, error) {
	if opts.Name == "" {
		addr, err := unix.Mmap(-1, 0, opts.Size,
			unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
		if err != nil {
			return nil, fmt.Errorf("mmap: %w", err)
		}
		return &MappedRegion{Addr: addr, fd: -1}, nil
	}

	shmPath := filepath.Join("/dev/shm", opts.Name)
	if opts.Create && !canCreateOnDevShm(uint64(opts.Size), shmPath) {
		return nil, fmt.Errorf("no space left on /dev/shm for %d bytes", opts.Size)
	}
	flags := unix.O_RDWR
	if opts.Create {
		flags |= unix.O_CREAT
	}
	fd, err := unix.Open(shmPath, flags, 0600)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if opts.Create {
		if err := unix.Ftruncate(fd, int64(opts.Size)); err != nil {
			_ = unix.Close(fd)
			return nil, fmt.Errorf("ftruncate: %w", err)
		}
	}
	addr, err := unix.Mmap(fd, 0, opts.Size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap: %w", err)
	}
	return &MappedRegion{Addr: addr, fd: fd, path: shmPath}, nil
}

// Unmap releases the region. Calling it while a transfer still targets the
// region frees memory out from under the hardware; the caller must have
// observed completion first.
func Unmap(region *MappedRegion) error {
	if region == nil || region.Addr == nil {
		return nil
	}
	if err := unix.Munmap(region.Addr); err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	region.Addr = nil
	if region.fd >= 0 {
		if err := unix.Close(region.fd); err != nil {
			return fmt.Errorf("close: %w", err)
		}
		region.fd = -1
	}
	return nil
}

// canCreateOnDevShm reports whether /dev/shm has room for a backing file of
// the given size. Paths outside /dev/shm are not size-limited by tmpfs and
// always pass.
func canCreateOnDevShm(size uint64, path string) bool {
	if !strings.HasPrefix(path, "/dev/shm") {
		return true
	}
	stat, err := disk.Usage("/dev/shm")
	if err != nil {
		return true
	}
	return stat.Free >= size
}
