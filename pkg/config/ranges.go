package config

import "strconv"

// Range is the interval a settings UI should offer for one numeric setting.
type Range struct {
	Name    string  `json:"name"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Integer bool    `json:"integer,omitempty"`

	get func(Settings) float64
	set func(*Settings, float64)
}

// Get reads the setting from s.
func (r Range) Get(s Settings) float64 { return r.get(s) }

// Set writes v into s, clamped to the range.
func (r Range) Set(s *Settings, v float64) {
	r.set(s, min(max(v, r.Min), r.Max))
}

// Format renders v the way the range displays it.
func (r Range) Format(v float64) string {
	if r.Integer {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidRanges lists the adjustable dimensions for a chart of itemCount
// items. The leaf count may reach itemCount, making every item a leaf.
func ValidRanges(itemCount int) []Range {
	itemCount = max(itemCount, 0)
	return []Range{
		{
			Name: "dimensions.trunk_width", Min: 0.2, Max: 0.8, Step: 0.05,
			get: func(s Settings) float64 { return s.Dimensions.TrunkWidth },
			set: func(s *Settings, v float64) { s.Dimensions.TrunkWidth = v },
		},
		{
			Name: "dimensions.trunk_height", Min: 0.2, Max: 0.8, Step: 0.05,
			get: func(s Settings) float64 { return s.Dimensions.TrunkHeight },
			set: func(s *Settings, v float64) { s.Dimensions.TrunkHeight = v },
		},
		{
			Name: "dimensions.leaves_height", Min: 0.2, Max: 1, Step: 0.05,
			get: func(s Settings) float64 { return s.Dimensions.LeavesHeight },
			set: func(s *Settings, v float64) { s.Dimensions.LeavesHeight = v },
		},
		{
			Name: "dimensions.leaves_count", Min: 0, Max: float64(itemCount), Step: 1, Integer: true,
			get: func(s Settings) float64 { return float64(s.Dimensions.LeavesCount) },
			set: func(s *Settings, v float64) { s.Dimensions.LeavesCount = int(v + 0.5) },
		},
	}
}
