// Package mem contains platform helpers for page-backed memory used as DMA
// buffer storage. Mappings are pinned from the runtime's point of view: the
// Go GC never moves or reclaims them, so their address satisfies the
// stable-address contract for as long as the mapping is held.
package mem

import (
	gopsmem "github.com/shirou/gopsutil/v3/mem"
)

// MappedRegion represents a mapped region of page-backed memory.
type MappedRegion struct {
	Addr []byte
	fd   int
	path string
	heap bool
}

// MapOptions defines options for mapping a region.
type MapOptions struct {
	// Name identifies a /dev/shm file backing the region. Empty maps the
	// region anonymously.
	Name string
	// Size is the region size in bytes.
	Size int
	// Create indicates whether a named backing file may be created.
	Create bool
}

// CanReserve reports whether the host currently has size bytes of available
// memory. Mapping more than is available would make the window back itself
// with pages that fault mid-transfer.
func CanReserve(size uint64) bool {
	vm, err := gopsmem.VirtualMemory()
	if err != nil {
		// No measurement, no veto.
		return true
	}
	return vm.Available >= size
}
