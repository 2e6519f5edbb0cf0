package dma

import "unsafe"

// Word constrains the scalar transfer units a DMA window may be expressed
// in. Every listed kind is valid for any bit pattern of its byte width, so
// arbitrary hardware-written bytes never produce an invalid value. Named
// types with one of these underlying kinds qualify as well.
type Word interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// SizeOf reports the byte width of the word type W.
func SizeOf[W Word]() uintptr {
	var w W
	return unsafe.Sizeof(w)
}

// wordAdd steps a word pointer forward by off words.
func wordAdd[W Word](p *W, off int) *W {
	if off == 0 {
		return p
	}
	return (*W)(unsafe.Add(unsafe.Pointer(p), uintptr(off)*SizeOf[W]()))
}
