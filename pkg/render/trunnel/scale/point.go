package scale

// Point maps an ordered set of labels to evenly spaced positions across a
// range. The first label maps to the range start and the last to the range
// end; a single label maps to the middle.
type Point[K comparable] struct {
	domain []K
	index  map[K]int
	r0, r1 float64
	start  float64
	step   float64
}

// NewPoint returns a point scale over labels. Repeated labels keep their
// first position.
func NewPoint[K comparable](labels []K, r0, r1 float64) Point[K] {
	p := Point[K]{
		index: make(map[K]int, len(labels)),
		r0:    r0,
		r1:    r1,
	}
	for _, k := range labels {
		if _, seen := p.index[k]; seen {
			continue
		}
		p.index[k] = len(p.domain)
		p.domain = append(p.domain, k)
	}

	switch n := len(p.domain); n {
	case 0:
		p.start = r0
	case 1:
		p.start = lerp(r0, r1, 0.5)
	default:
		p.start = r0
		p.step = (r1 - r0) / float64(n-1)
	}
	return p
}

// Map returns the position of label. ok is false for labels outside the
// domain, which includes every label of an empty scale.
func (p Point[K]) Map(label K) (pos float64, ok bool) {
	i, ok := p.index[label]
	if !ok {
		return p.r0, false
	}
	return p.start + p.step*float64(i), true
}

// Domain returns the distinct labels in order.
func (p Point[K]) Domain() []K { return append([]K(nil), p.domain...) }

// Range returns the range endpoints.
func (p Point[K]) Range() (float64, float64) { return p.r0, p.r1 }

// Len returns the number of distinct labels.
func (p Point[K]) Len() int { return len(p.domain) }

// Empty reports whether the scale has no labels.
func (p Point[K]) Empty() bool { return len(p.domain) == 0 }

// Step returns the distance between adjacent labels.
func (p Point[K]) Step() float64 { return p.step }
