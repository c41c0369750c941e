package textlayers

import (
	"fmt"
	"strings"
)

// TagKind determines which label is displayed for an interval when it closes.
type TagKind int8

// Tag kinds of a TagRule.
const (
	TagNone        TagKind = iota // pure highlight, no label
	TagID                         // the interval's identifier
	TagKey                        // the key (or layer label)
	TagKeyAndValue                // "key: value"
	TagValue                      // the value, falling back to the key
)

var tagKindNames = [...]string{"none", "id", "key", "keyvalue", "value"}

func (k TagKind) String() string {
	if k < 0 || int(k) >= len(tagKindNames) {
		return fmt.Sprintf("TagKind(%d)", int(k))
	}
	return tagKindNames[k]
}

// ParseTagKind converts a tag kind name to a TagKind. Names are case-insensitive;
// "key-value", "key_value" and "keyandvalue" are accepted as well.
func ParseTagKind(s string) (TagKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return TagNone, nil
	case "id":
		return TagID, nil
	case "key":
		return TagKey, nil
	case "keyvalue", "key-value", "key_value", "keyandvalue":
		return TagKeyAndValue, nil
	case "value":
		return TagValue, nil
	}
	return TagNone, fmt.Errorf("tag kind %q: %w", s, ErrIllegalArguments)
}

// TagRule tells a layer how to compute the label of an interval.
//
// Value, if set, looks up the value of an interval. Otherwise the value is
// taken from the interval's Data, using Key.
type TagRule struct {
	Kind  TagKind
	Key   string
	Value func(Interval) (string, bool)
}

func (rule TagRule) value(iv Interval) (string, bool) {
	if rule.Value != nil {
		return rule.Value(iv)
	}
	if iv.Data == nil {
		return "", false
	}
	v, ok := iv.Data[rule.Key]
	return v, ok
}

// Layer is a highlight layer. Layers are numbered by their position in a
// Layers table, starting at 1; the number is used for CSS classes and colors.
type Layer struct {
	Name  string  // display name for legends, underscores display as spaces
	Label string  // overrides the key of the tag rule in labels, and Name in legends
	Hide  bool    // no highlighting, only labels ("tags only")
	Style string  // additional CSS class(es) for highlighted spans
	Tag   TagRule //
	Query string  // human readable description of the interval source, optional
	// Source retrieves the intervals of this layer for a selection. It may be nil,
	// if the layer's intervals are delivered by other means.
	Source func(Selection) ([]Interval, error)
}

// LabelFor computes the label to display for iv when it closes.
// An empty string means: no label.
func (l Layer) LabelFor(iv Interval) string {
	rule := l.Tag
	label := l.Label
	if label == "" {
		label = rule.Key
	}
	switch rule.Kind {
	case TagID:
		return iv.ID
	case TagKey:
		return label
	case TagKeyAndValue:
		if v, ok := rule.value(iv); ok {
			return label + ": " + v
		}
		return label
	case TagValue:
		if v, ok := rule.value(iv); ok {
			return v
		}
		return label
	}
	return ""
}

// DisplayName returns the name of l as shown in legends.
func (l Layer) DisplayName() string {
	name := l.Label
	if name == "" {
		name = l.Name
	}
	if name == "" {
		return "(untitled)"
	}
	return strings.ReplaceAll(name, "_", " ")
}

// Layers is an ordered table of highlight layers.
// Layer k (k ≥ 1) is stored at index k-1.
type Layers []Layer

// At returns layer k, if it exists.
func (ls Layers) At(k int) (Layer, bool) {
	if k < 1 || k > len(ls) {
		return Layer{}, false
	}
	return ls[k-1], true
}

// Valid is true if k refers to a layer of the table.
func (ls Layers) Valid(k int) bool {
	return k >= 1 && k <= len(ls)
}

// Visible is true if k refers to a layer of the table which is not hidden.
func (ls Layers) Visible(k int) bool {
	return ls.Valid(k) && !ls[k-1].Hide
}

// VisibleCount returns the number of layers which are not hidden.
func (ls Layers) VisibleCount() int {
	n := 0
	for _, l := range ls {
		if !l.Hide {
			n++
		}
	}
	return n
}

// Label computes the label of iv from its layer. Intervals which do not belong
// to a layer of the table never have a label.
func (ls Layers) Label(iv Interval) string {
	l, ok := ls.At(iv.Layer)
	if !ok {
		return ""
	}
	return l.LabelFor(iv)
}
