package textlayers

// TextSource gives access to the literal text of a region.
type TextSource interface {
	Text(Region) (string, error)
}

// IntervalSource delivers all intervals touching a selection. Intervals
// returned by an IntervalSource keep their Layer; intervals of highlight
// layers may instead be delivered by Layer.Source.
type IntervalSource interface {
	Intervals(Selection) ([]Interval, error)
}

// IntervalsFunc is an adapter to use ordinary functions as IntervalSource.
type IntervalsFunc func(Selection) ([]Interval, error)

// Intervals calls f(sel).
func (f IntervalsFunc) Intervals(sel Selection) ([]Interval, error) {
	return f(sel)
}

// TextFunc is an adapter to use ordinary functions as TextSource.
type TextFunc func(Region) (string, error)

// Text calls f(r).
func (f TextFunc) Text(r Region) (string, error) {
	return f(r)
}
