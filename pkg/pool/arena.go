package pool

import (
	"errors"
	"sync"

	"github.com/srediag/dma-buf/pkg/dma"
)

// ErrNoFreeBlock reports that a size class has no free block left.
var ErrNoFreeBlock = errors.New("pool: no free block")

// SizeClass describes one block size in an arena layout.
type SizeClass struct {
	// Size is the block size in bytes.
	Size uint32
	// Count is how many blocks of this size the arena carves out.
	Count uint32
}

// Block is a fixed window into an arena's backing memory. It satisfies
// both capabilities; its address is stable because the arena never moves
// its backing allocation.
type Block struct {
	data []byte
	off  uint32
	size uint32
	used bool
}

// ReadBuffer returns the block's full window.
func (b *Block) ReadBuffer() (*byte, int) {
	return dma.ProjectSlice(b.data)
}

// WriteBuffer returns the block's full window.
func (b *Block) WriteBuffer() (*byte, int) {
	return dma.ProjectSlice(b.data)
}

// Bytes exposes the block payload. Inspect it only while no transfer is in
// flight.
func (b *Block) Bytes() []byte {
	return b.data
}

// Offset reports the block's byte offset inside the arena's backing memory.
func (b *Block) Offset() uint32 {
	return b.off
}

// Cap reports the block size in bytes.
func (b *Block) Cap() uint32 {
	return b.size
}

// Arena carves one backing allocation into fixed-size blocks grouped by
// size class. Blocks are non-owning views into the arena; the arena stays
// the sole owner of the memory, so recovering it whole after transfers is
// always possible.
type Arena struct {
	mu      sync.Mutex
	mem     []byte
	classes []SizeClass
	free    map[uint32][]*Block
}

// NewArena lays blocks out over mem according to layout, front to back.
// Classes that do not fit in the remaining memory are truncated.
func NewArena(mem []byte, layout []SizeClass) *Arena {
	a := &Arena{
		mem:     mem,
		classes: layout,
		free:    make(map[uint32][]*Block, len(layout)),
	}
	offset := 0
	for _, class := range layout {
		for i := uint32(0); i < class.Count; i++ {
			end := offset + int(class.Size)
			if end > len(mem) {
				break
			}
			a.free[class.Size] = append(a.free[class.Size], &Block{
				data: mem[offset:end],
				off:  uint32(offset),
				size: class.Size,
			})
			offset = end
		}
	}
	return a
}

// Alloc hands out a free block of exactly the given class size. It fails
// with ErrNoFreeBlock when the class is exhausted or unknown.
func (a *Arena) Alloc(size uint32) (*Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, b := range a.free[size] {
		if !b.used {
			b.used = true
			return b, nil
		}
	}
	return nil, ErrNoFreeBlock
}

// Recycle returns a block to its class. The caller must have observed
// completion of every transfer using the block.
func (a *Arena) Recycle(b *Block) {
	if b == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	b.used = false
}

// Stats reports the number of free blocks per size class.
func (a *Arena) Stats() map[uint32]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	stats := make(map[uint32]int, len(a.free))
	for size, blocks := range a.free {
		n := 0
		for _, b := range blocks {
			if !b.used {
				n++
			}
		}
		stats[size] = n
	}
	return stats
}

// Bytes exposes the arena's whole backing memory.
func (a *Arena) Bytes() []byte {
	return a.mem
}

var (
	_ dma.ReadBuffer[byte]  = (*Block)(nil)
	_ dma.WriteBuffer[byte] = (*Block)(nil)
)
