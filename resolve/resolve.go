package resolve

import (
	"iter"

	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/segment"
)

// Closure is an interval closing at a boundary, together with its label.
// An empty label means that no label is to be displayed.
type Closure struct {
	Interval tl.Interval
	Label    string
}

// Delta describes the changes of the active set at a boundary.
type Delta struct {
	Offset    int
	Closing   []Closure     // intervals ending here, oldest first
	ZeroWidth []Closure     // zero-width intervals sitting here
	Opening   []tl.Interval // intervals beginning here
	Before    []int         // visible layers with active intervals before closing
	After     []int         // visible layers with active intervals after opening
	Active    int           // number of active intervals after opening, of any layer
	IDs       []string      // IDs of the active intervals after opening, in total order
	Final     bool          // boundary is the end of the region
}

// Resolver tracks active intervals of a region across its boundaries.
// A Resolver is not safe for concurrent use.
type Resolver struct {
	region tl.Region
	layers tl.Layers
	items  []tl.Interval // clamped and sorted intervals intersecting the region
	next   int           // index of the next item to open
	active []int         // indices of active items, in order of opening
	seen   []bool        // scratch buffer for layer sets
	pruned int
}

// New creates a resolver for the intervals over region. Intervals not intersecting
// region are ignored, all others are clamped to it. With prune set, intervals
// which do not belong to one of layers are dropped altogether.
func New(region tl.Region, intervals []tl.Interval, layers tl.Layers, prune bool) *Resolver {
	r := &Resolver{
		region: region,
		layers: layers,
		items:  make([]tl.Interval, 0, len(intervals)),
		seen:   make([]bool, len(layers)+1),
	}
	for _, iv := range intervals {
		if !iv.Intersects(region) {
			continue
		}
		if prune && !layers.Valid(iv.Layer) {
			r.pruned++
			continue
		}
		r.items = append(r.items, iv.Clamp(region))
	}
	tl.SortIntervals(r.items)
	if r.pruned > 0 {
		tracer().Debugf("resolve: pruned %d intervals without highlight layer", r.pruned)
	}
	return r
}

// Step advances the resolver to boundary offset. Boundaries must be visited in
// ascending order.
func (r *Resolver) Step(offset int) Delta {
	d := Delta{
		Offset: offset,
		Final:  offset >= r.region.End,
	}
	d.Before = r.visibleLayers()
	keep := make([]int, 0, len(r.active))
	for _, inx := range r.active {
		iv := r.items[inx]
		if iv.End <= offset {
			d.Closing = append(d.Closing, Closure{Interval: iv, Label: r.layers.Label(iv)})
		} else {
			keep = append(keep, inx)
		}
	}
	r.active = keep
	for r.next < len(r.items) && r.items[r.next].Begin <= offset {
		iv := r.items[r.next]
		if iv.ZeroWidth() {
			d.ZeroWidth = append(d.ZeroWidth, Closure{Interval: iv, Label: r.layers.Label(iv)})
		} else if iv.End > offset && !d.Final {
			d.Opening = append(d.Opening, iv)
			r.active = append(r.active, r.next)
		} else {
			tracer().Debugf("resolve: boundary for %v has been skipped", iv)
		}
		r.next++
	}
	d.After = r.visibleLayers()
	d.Active = len(r.active)
	for _, inx := range r.active { // opening order is total order
		if id := r.items[inx].ID; id != "" {
			d.IDs = append(d.IDs, id)
		}
	}
	return d
}

// visibleLayers returns the visible layers of the active intervals, ascending.
func (r *Resolver) visibleLayers() []int {
	clear(r.seen)
	for _, inx := range r.active {
		if k := r.items[inx].Layer; r.layers.Visible(k) {
			r.seen[k] = true
		}
	}
	var ls []int
	for k, ok := range r.seen {
		if ok {
			ls = append(ls, k)
		}
	}
	return ls
}

// Active returns the currently active intervals, in order of opening.
func (r *Resolver) Active() []tl.Interval {
	ivs := make([]tl.Interval, len(r.active))
	for i, inx := range r.active {
		ivs[i] = r.items[inx]
	}
	return ivs
}

// ActiveOn returns the currently active intervals of layer k, in order of opening.
func (r *Resolver) ActiveOn(k int) []tl.Interval {
	var ivs []tl.Interval
	for _, inx := range r.active {
		if r.items[inx].Layer == k {
			ivs = append(ivs, r.items[inx])
		}
	}
	return ivs
}

// Boundaries returns the boundaries of the region with respect to the intervals
// the resolver tracks, i.e. excluding pruned intervals.
func (r *Resolver) Boundaries() []int {
	return segment.Boundaries(r.region, r.items)
}

// Pruned returns the number of intervals dropped because they belong to no layer.
func (r *Resolver) Pruned() int {
	return r.pruned
}

// Resolve returns the deltas for all boundaries of region, in ascending order.
func Resolve(region tl.Region, intervals []tl.Interval, layers tl.Layers, prune bool) iter.Seq[Delta] {
	return func(yield func(Delta) bool) {
		r := New(region, intervals, layers, prune)
		for _, b := range r.Boundaries() {
			if !yield(r.Step(b)) {
				return
			}
		}
	}
}
