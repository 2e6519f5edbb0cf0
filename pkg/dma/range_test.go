package dma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeResolve(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		n     int
		start int
		end   int
		ok    bool
	}{
		{"span", Span(2, 10), 16, 2, 10, true},
		{"span empty", Span(5, 5), 16, 5, 5, true},
		{"span at edge", Span(0, 16), 16, 0, 16, true},
		{"span inverted", Span(10, 2), 16, 0, 0, false},
		{"span past end", Span(0, 17), 16, 0, 0, false},
		{"span negative", Span(-1, 4), 16, 0, 0, false},
		{"closed", Closed(2, 9), 16, 2, 10, true},
		{"closed last word", Closed(15, 15), 16, 15, 16, true},
		{"closed past end", Closed(0, 16), 16, 0, 0, false},
		{"closed end overflow", Closed(0, math.MaxInt), 16, 0, 0, false},
		{"from", From(4), 16, 4, 16, true},
		{"from at edge", From(16), 16, 16, 16, true},
		{"from past end", From(17), 16, 0, 0, false},
		{"to", To(12), 16, 0, 12, true},
		{"to past end", To(17), 16, 0, 0, false},
		{"full", Full(), 16, 0, 16, true},
		{"full of empty", Full(), 0, 0, 0, true},
		{"zero value", Range{}, 16, 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start, end, ok := c.r.resolve(c.n)
			assert.Equal(t, c.ok, ok)
			if c.ok {
				assert.Equal(t, c.start, start)
				assert.Equal(t, c.end, end)
			}
		})
	}
}

func TestRangeClamp(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		n     int
		start int
		end   int
	}{
		{"span inside", Span(2, 10), 16, 2, 10},
		{"span past end", Span(2, 100), 16, 2, 16},
		{"span wholly past", Span(20, 30), 16, 16, 16},
		{"span inverted", Span(10, 2), 16, 2, 2},
		{"span negative start", Span(-3, 4), 16, 0, 4},
		{"span negative end", Span(0, -5), 16, 0, 0},
		{"closed", Closed(0, 7), 16, 0, 8},
		{"closed end overflow", Closed(0, math.MaxInt), 16, 0, 16},
		{"from inside", From(4), 16, 4, 16},
		{"from past end", From(200), 16, 16, 16},
		{"to past end", To(1000), 16, 0, 16},
		{"full", Full(), 16, 0, 16},
		{"full of empty", Full(), 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			start, end := c.r.clamp(c.n)
			assert.Equal(t, c.start, start)
			assert.Equal(t, c.end, end)
			assert.LessOrEqual(t, start, end)
			assert.LessOrEqual(t, end, c.n)
		})
	}
}
