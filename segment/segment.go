package segment

import (
	"fmt"
	"iter"
	"slices"

	tl "github.com/npillmayer/textlayers"
)

// Segment is a range [Begin…End) of runes between two consecutive boundaries.
type Segment struct {
	Begin, End int
}

// Len returns the number of runes of the segment.
func (s Segment) Len() int {
	return s.End - s.Begin
}

func (s Segment) String() string {
	return fmt.Sprintf("[%d…%d)", s.Begin, s.End)
}

// Boundaries returns the sorted set of offsets where the active set of
// intervals over region changes. It always includes the region's begin and end.
// Intervals not intersecting region are ignored, all others are clamped to it.
// A zero-width interval contributes a single boundary.
//
// Boundaries returns nil for malformed regions.
func Boundaries(region tl.Region, intervals []tl.Interval) []int {
	if err := region.Check(); err != nil {
		tracer().Errorf("segment: %v", err)
		return nil
	}
	bounds := make([]int, 0, 2*len(intervals)+2)
	bounds = append(bounds, region.Begin, region.End)
	for _, iv := range intervals {
		if !iv.Intersects(region) {
			continue
		}
		iv = iv.Clamp(region)
		bounds = append(bounds, iv.Begin)
		if !iv.ZeroWidth() {
			bounds = append(bounds, iv.End)
		}
	}
	slices.Sort(bounds)
	return slices.Compact(bounds)
}

// Segments returns the segments of region, in document order. The segments cover
// the region contiguously. Without any intersecting intervals the whole region
// is a single segment; an empty region has no segments.
//
// The sequence is a pure function of its inputs and may be iterated repeatedly.
func Segments(region tl.Region, intervals []tl.Interval) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		bounds := Boundaries(region, intervals)
		for i := 1; i < len(bounds); i++ {
			if !yield(Segment{Begin: bounds[i-1], End: bounds[i]}) {
				return
			}
		}
	}
}

// Iterator iterates over the segments of a region. It is an alternative to
// Segments for clients preferring a pull-style interface.
//
//	it := segment.Iterate(region, intervals)
//	for it.Next() {
//	    seg := it.Segment()
//	    …
//	}
type Iterator struct {
	bounds []int
	inx    int
}

// Iterate creates an iterator over the segments of region.
func Iterate(region tl.Region, intervals []tl.Interval) *Iterator {
	return &Iterator{bounds: Boundaries(region, intervals)}
}

// Next moves to the next segment. It returns false when all segments have been
// visited.
func (it *Iterator) Next() bool {
	if it.inx+1 >= len(it.bounds) {
		return false
	}
	it.inx++
	return true
}

// Segment returns the segment at the current iterator position.
func (it *Iterator) Segment() Segment {
	if it.inx == 0 {
		return Segment{}
	}
	return Segment{Begin: it.bounds[it.inx-1], End: it.bounds[it.inx]}
}
