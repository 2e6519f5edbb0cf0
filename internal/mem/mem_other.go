//go:build !linux

package mem

// Map falls back to heap-backed storage on platforms without a /dev/shm
// mapping path. Heap slices still satisfy the stable-address contract: the
// backing array never moves while the region holds it.
func Map(opts MapOptions) (*MappedRegion, error) {
	return &MappedRegion{Addr: make([]byte, opts.Size), fd: -1, heap: true}, nil
}

// Unmap releases the region.
func Unmap(region *MappedRegion) error {
	if region == nil {
		return nil
	}
	region.Addr = nil
	return nil
}
