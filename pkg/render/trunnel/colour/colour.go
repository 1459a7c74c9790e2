// Package colour assigns ribbon colours by interpolating linearly in RGB
// between a start and an end colour.
//
// The scale domain is [0, n] for n items, so item i gets the colour at
// i/n: the first item is the start colour and the last item stops one
// step short of the end colour.
package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Scale maps an item index to a colour.
type Scale struct {
	start, end colorful.Color
	n          int
}

// New parses start and end as hex colours ("#rgb" or "#rrggbb") and returns
// a scale over n items.
func New(start, end string, n int) (Scale, error) {
	s, err := colorful.Hex(start)
	if err != nil {
		return Scale{}, fmt.Errorf("start colour %q: %w", start, err)
	}
	e, err := colorful.Hex(end)
	if err != nil {
		return Scale{}, fmt.Errorf("end colour %q: %w", end, err)
	}
	return Scale{start: s, end: e, n: n}, nil
}

// At returns the colour for index i as "#rrggbb". With no items every
// index maps to the start colour.
func (s Scale) At(i int) string {
	if s.n <= 0 {
		return s.start.Clamped().Hex()
	}
	t := float64(i) / float64(s.n)
	return s.start.BlendRgb(s.end, t).Clamped().Hex()
}

// Valid reports whether v parses as a hex colour.
func Valid(v string) bool {
	_, err := colorful.Hex(v)
	return err == nil
}
