package textlayers

import (
	"cmp"
	"fmt"
	"slices"
)

// Region is an immutable reference to a span [Begin…End) of a text resource.
// Offsets count Unicode code points (runes), not bytes.
type Region struct {
	Resource string // identifier of the text resource
	Begin    int
	End      int
}

// Len returns the number of runes the region spans.
func (r Region) Len() int {
	if r.End < r.Begin {
		return 0
	}
	return r.End - r.Begin
}

// Check returns ErrMalformedRegion if r has negative offsets or ends before it begins.
func (r Region) Check() error {
	if r.Begin < 0 || r.End < r.Begin {
		return fmt.Errorf("region %s: %w", r, ErrMalformedRegion)
	}
	return nil
}

// Contains is true if pos is inside [Begin…End].
// The region end is included, as zero-width intervals may sit there.
func (r Region) Contains(pos int) bool {
	return pos >= r.Begin && pos <= r.End
}

func (r Region) String() string {
	return fmt.Sprintf("%s#%d-%d", r.Resource, r.Begin, r.End)
}

// NoLayer is the layer index of intervals which belong to no highlight layer.
const NoLayer = 0

// Interval is a labeled range [Begin…End) over a text resource. Intervals with
// Begin == End are point annotations (zero-width).
//
// Layer refers to a highlight layer by its 1-based position in a Layers table.
// Data holds key/value pairs a TagRule may refer to when computing a label.
type Interval struct {
	ID      string
	Begin   int
	End     int
	Layer   int
	Data    map[string]string
	Payload any // opaque to the renderer
}

// ZeroWidth is true for point annotations.
func (iv Interval) ZeroWidth() bool {
	return iv.Begin == iv.End
}

// Intersects is true if iv covers at least one rune of r or, for zero-width
// intervals, sits somewhere in [r.Begin…r.End].
func (iv Interval) Intersects(r Region) bool {
	if iv.ZeroWidth() {
		return r.Contains(iv.Begin)
	}
	return iv.Begin < r.End && iv.End > r.Begin
}

// Clamp restricts iv to the bounds of r.
func (iv Interval) Clamp(r Region) Interval {
	iv.Begin = max(iv.Begin, r.Begin)
	iv.End = min(iv.End, r.End)
	if iv.End < iv.Begin {
		iv.End = iv.Begin
	}
	return iv
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s[%d…%d)@%d", iv.ID, iv.Begin, iv.End, iv.Layer)
}

// CompareIntervals orders intervals by begin offset, then by end offset.
func CompareIntervals(a, b Interval) int {
	if c := cmp.Compare(a.Begin, b.Begin); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// SortIntervals sorts intervals in place into the total order used for rendering:
// by begin, then by end, then by position in the input (insertion order).
func SortIntervals(intervals []Interval) {
	slices.SortStableFunc(intervals, CompareIntervals)
}

// Selection is a primary text region to render.
type Selection struct {
	ID            string // identifier used for titles, may be empty
	Region        Region
	WholeResource bool  // region spans a complete text resource
	Err           error // set by selection streams for selections without extractable text
}

// Same is true if s and other refer to the same text.
func (s Selection) Same(other Selection) bool {
	return s.Region == other.Region && s.WholeResource == other.WholeResource
}

func (s Selection) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Region.String()
}
