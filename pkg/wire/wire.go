// Package wire converts layouts into a self-describing document that
// external renderers can consume without linking the layout engine.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Document is a serialized layout.
type Document struct {
	Width      float64       `json:"width" yaml:"width"`
	Config     layout.Config `json:"config" yaml:"config"`
	Bounds     Bounds        `json:"bounds" yaml:"bounds"`
	Nodes      []Node        `json:"nodes" yaml:"nodes"`
	Connectors []Connector   `json:"connectors" yaml:"connectors"`
}

// Bounds is the canvas region covered by cards.
type Bounds struct {
	MinX float64 `json:"min_x" yaml:"min_x"`
	MinY float64 `json:"min_y" yaml:"min_y"`
	MaxX float64 `json:"max_x" yaml:"max_x"`
	MaxY float64 `json:"max_y" yaml:"max_y"`
}

// Node is a placed card.
type Node struct {
	ID         int     `json:"id" yaml:"id"`
	Name       string  `json:"name" yaml:"name"`
	Parent     string  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Level      int     `json:"level" yaml:"level"`
	Generation int     `json:"generation" yaml:"generation"`
	X          float64 `json:"x" yaml:"x"`
	Y          float64 `json:"y" yaml:"y"`
	// Expandable is true when the node has children, shown or not.
	Expandable bool `json:"expandable" yaml:"expandable"`
	Children   int  `json:"children" yaml:"children"`
}

// Connector is a parent-child curve.
type Connector struct {
	From int          `json:"from" yaml:"from"`
	To   int          `json:"to" yaml:"to"`
	Path string       `json:"path" yaml:"path"`
	Src  layout.Point `json:"src" yaml:"src"`
	Dst  layout.Point `json:"dst" yaml:"dst"`
}

// FromLayout builds a Document for l. tree supplies the node details that
// a layout does not carry; a nil tree leaves them zero.
func FromLayout(tree *genealogy.Node, l layout.Layout) Document {
	idx := genealogy.Index(tree)
	b := l.Bounds()

	doc := Document{
		Width:      l.Width,
		Config:     l.Config,
		Bounds:     Bounds{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY},
		Nodes:      make([]Node, 0, l.Len()),
		Connectors: []Connector{},
	}
	for _, p := range l.Placements {
		n := Node{ID: p.ID, Name: p.Name, Parent: p.Parent, Level: p.Level, X: p.X, Y: p.Y}
		if src, ok := idx[p.ID]; ok {
			n.Generation = src.Generation
			n.Expandable = src.HasChildren()
			n.Children = len(src.Children)
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, c := range layout.Connectors(l) {
		doc.Connectors = append(doc.Connectors, Connector{
			From: c.ParentID,
			To:   c.ChildID,
			Path: c.Path(),
			Src:  c.From,
			Dst:  c.To,
		})
	}
	return doc
}

// Marshal encodes doc as indented JSON or YAML.
func Marshal(doc Document, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q (want json or yaml)", format)
	}
}

// Unmarshal decodes a document previously produced by Marshal.
func Unmarshal(data []byte, format string) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON, "":
		err = json.Unmarshal(data, &doc)
	case FormatYAML, "yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		return doc, errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format %q (want json or yaml)", format)
	}
	if err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s layout", format)
	}
	return doc, nil
}
