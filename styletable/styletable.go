/*
Package styletable reads the configuration of highlight layers and rendering
options from YAML.

A style table looks like this:

	format: html
	legend: true
	layers:
	  - name: part_of_speech
	    tag: keyvalue
	    key: pos
	  - name: lemmas
	    hide: true
	    tag: value
	    key: lemma

Layers are numbered in order of appearance, starting at 1.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package styletable

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	tl "github.com/npillmayer/textlayers"
	"github.com/npillmayer/textlayers/formatter"
	"gopkg.in/yaml.v3"
)

// tracer writes to trace with key 'textlayers'
func tracer() tracing.Trace {
	return tracing.Select("textlayers")
}

// LayerSpec is the YAML form of a highlight layer.
type LayerSpec struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Hide  bool   `yaml:"hide"`
	Style string `yaml:"style"`
	Tag   string `yaml:"tag"` // none, id, key, keyvalue or value
	Key   string `yaml:"key"`
	Value string `yaml:"value"` // restricts a layer to intervals with this value for Key
	Query string `yaml:"query"`
}

// Table is the YAML form of a rendering configuration.
// Options not present in the YAML input keep their defaults.
type Table struct {
	Format        string      `yaml:"format"`
	Legend        bool        `yaml:"legend"`
	Titles        bool        `yaml:"titles"`
	Prune         bool        `yaml:"prune"`
	Autocollapse  bool        `yaml:"autocollapse"`
	OffsetAttr    bool        `yaml:"offset_attr"`
	AnnotationIDs bool        `yaml:"annotation_ids"`
	Interactive   bool        `yaml:"interactive"`
	Color         bool        `yaml:"color"`
	Width         int         `yaml:"width"`
	Header        string      `yaml:"header"`
	Footer        string      `yaml:"footer"`
	Layers        []LayerSpec `yaml:"layers"`
}

// Default returns a table with default options and no layers.
func Default() *Table {
	return &Table{
		Format:      string(formatter.FormatHTML),
		Legend:      true,
		Titles:      true,
		Interactive: true,
		Color:       true,
	}
}

// Parse reads a style table from YAML.
func Parse(content []byte) (*Table, error) {
	t := Default()
	if err := yaml.Unmarshal(content, t); err != nil {
		return nil, fmt.Errorf("parse style table: %w", err)
	}
	if _, err := t.Compile(); err != nil {
		return nil, err
	}
	tracer().Debugf("style table with %d layers", len(t.Layers))
	return t, nil
}

// LoadFromFile reads a style table from a YAML file.
func LoadFromFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}

// Compile validates the layer specifications and converts them to a layer table.
func (t *Table) Compile() (tl.Layers, error) {
	if t.Width < 0 {
		return nil, fmt.Errorf("style table: width %d: %w", t.Width, tl.ErrIllegalArguments)
	}
	if _, err := formatter.ParseFormat(t.Format); err != nil {
		return nil, fmt.Errorf("style table: %w", err)
	}
	layers := make(tl.Layers, 0, len(t.Layers))
	for i, spec := range t.Layers {
		l, err := spec.compile()
		if err != nil {
			return nil, fmt.Errorf("style table: layer %d: %w", i+1, err)
		}
		layers = append(layers, l)
	}
	return layers, nil
}

func (spec LayerSpec) compile() (tl.Layer, error) {
	kind, err := tl.ParseTagKind(spec.Tag)
	if err != nil {
		return tl.Layer{}, err
	}
	switch kind {
	case tl.TagKey:
		if spec.Key == "" && spec.Label == "" {
			return tl.Layer{}, fmt.Errorf("tag %s needs a key or a label: %w", kind, tl.ErrIllegalArguments)
		}
	case tl.TagKeyAndValue, tl.TagValue:
		if spec.Key == "" {
			return tl.Layer{}, fmt.Errorf("tag %s needs a key: %w", kind, tl.ErrIllegalArguments)
		}
	}
	if spec.Value != "" && spec.Key == "" {
		return tl.Layer{}, fmt.Errorf("value %q without key: %w", spec.Value, tl.ErrIllegalArguments)
	}
	return tl.Layer{
		Name:  spec.Name,
		Label: spec.Label,
		Hide:  spec.Hide,
		Style: spec.Style,
		Tag:   tl.TagRule{Kind: kind, Key: spec.Key},
		Query: spec.Query,
	}, nil
}

// Binder provides the interval source for a layer. A nil source leaves the
// layer to intervals delivered by the document's interval source.
type Binder func(LayerSpec) func(tl.Selection) ([]tl.Interval, error)

// Document creates a rendering configuration from the table. bind may be nil.
// The caller has to provide the document's text source.
func (t *Table) Document(bind Binder) (*formatter.Document, error) {
	layers, err := t.Compile()
	if err != nil {
		return nil, err
	}
	if bind != nil {
		for i, spec := range t.Layers {
			layers[i].Source = bind(spec)
		}
	}
	format, _ := formatter.ParseFormat(t.Format)
	return &formatter.Document{
		Format:        format,
		Layers:        layers,
		Legend:        t.Legend,
		Titles:        t.Titles,
		Prune:         t.Prune,
		Autocollapse:  t.Autocollapse,
		OffsetAttr:    t.OffsetAttr,
		AnnotationIDs: t.AnnotationIDs,
		Interactive:   t.Interactive,
		NoColor:       !t.Color,
		Width:         t.Width,
		Header:        t.Header,
		Footer:        t.Footer,
	}, nil
}
