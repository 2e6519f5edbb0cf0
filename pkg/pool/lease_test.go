package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/suite"

	"github.com/srediag/dma-buf/pkg/dma"
)

type LeaseSuite struct {
	suite.Suite
}

func (s *LeaseSuite) TestLeaseWindow() {
	s.T().Logf("[START] TestLeaseWindow")
	l := Acquire(4096)
	defer l.Release()

	ptr, n := l.ReadBuffer()
	s.Equal(4096, n)
	s.Equal(unsafe.Pointer(&l.Bytes()[0]), unsafe.Pointer(ptr))

	wptr, wn := l.WriteBuffer()
	s.Equal(unsafe.Pointer(ptr), unsafe.Pointer(wptr))
	s.Equal(n, wn)
	s.T().Logf("[END] TestLeaseWindow")
}

func (s *LeaseSuite) TestLeaseStableAcrossQueries() {
	s.T().Logf("[START] TestLeaseStableAcrossQueries")
	l := Acquire(512)
	defer l.Release()

	p1, _ := l.ReadBuffer()
	p2, _ := l.ReadBuffer()
	p3, _ := l.WriteBuffer()
	s.Same(p1, p2)
	s.Same(p1, p3)
	s.T().Logf("[END] TestLeaseStableAcrossQueries")
}

func (s *LeaseSuite) TestLeaseZeroed() {
	s.T().Logf("[START] TestLeaseZeroed")
	l := Acquire(64)
	for i := range l.Bytes() {
		l.Bytes()[i] = 0xFF
	}
	l.Release()

	// A recycled payload must come back zeroed, not with the previous
	// lease's bytes.
	l = Acquire(64)
	defer l.Release()
	for _, b := range l.Bytes() {
		s.Equal(byte(0), b)
	}
	s.T().Logf("[END] TestLeaseZeroed")
}

func (s *LeaseSuite) TestLeaseSliceAdaptor() {
	s.T().Logf("[START] TestLeaseSliceAdaptor")
	l := Acquire(128)
	defer l.Release()

	sl, err := dma.SliceWrite[byte](l, dma.To(100))
	s.Require().NoError(err)
	_, n := sl.WriteBuffer()
	s.Equal(100, n)
	s.Equal(128, sl.Inner().Len())
	s.T().Logf("[END] TestLeaseSliceAdaptor")
}

func TestLeaseSuite(t *testing.T) {
	suite.Run(t, new(LeaseSuite))
}
