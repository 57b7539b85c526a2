package wire

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/evotree/pkg/errors"
	"github.com/matzehuels/evotree/pkg/genealogy"
	"github.com/matzehuels/evotree/pkg/layout"
)

func sampleDocument() Document {
	tree := genealogy.Sample()
	return FromLayout(tree, layout.Compute(tree, layout.NewExpandedSet(1, 2), 1200))
}

func TestFromLayout(t *testing.T) {
	doc := sampleDocument()

	if doc.Width != 1200 {
		t.Errorf("Width = %g, want 1200", doc.Width)
	}
	var names []string
	for _, n := range doc.Nodes {
		names = append(names, n.Name)
	}
	if diff := cmp.Diff([]string{"Spore", "Adam", "Morpheus", "Eve"}, names); diff != "" {
		t.Errorf("node order mismatch (-want +got):\n%s", diff)
	}

	eve := doc.Nodes[3]
	want := Node{ID: 3, Name: "Eve", Parent: "Spore", Level: 1, Generation: 2, X: 650, Y: 300, Expandable: true, Children: 1}
	if diff := cmp.Diff(want, eve); diff != "" {
		t.Errorf("Eve mismatch (-want +got):\n%s", diff)
	}

	if len(doc.Connectors) != 3 {
		t.Fatalf("len(Connectors) = %d, want 3", len(doc.Connectors))
	}
	c := doc.Connectors[0]
	if c.From != 1 || c.To != 2 || c.Path != "M 600 250 C 600 275, 400 275, 400 300" {
		t.Errorf("first connector = %+v", c)
	}
	if doc.Bounds.MaxY != 750 {
		t.Errorf("Bounds.MaxY = %g, want 750", doc.Bounds.MaxY)
	}
}

func TestFromLayoutWithoutTree(t *testing.T) {
	tree := genealogy.Sample()
	doc := FromLayout(nil, layout.Compute(tree, layout.NewExpandedSet(), 800))
	if len(doc.Nodes) != 1 || doc.Nodes[0].Generation != 0 || doc.Nodes[0].Expandable {
		t.Errorf("Nodes = %+v", doc.Nodes)
	}
	if doc.Connectors == nil {
		t.Error("Connectors should encode as an empty list, not null")
	}
}

func TestMarshal(t *testing.T) {
	doc := sampleDocument()

	tests := []struct {
		format string
		want   []string
	}{
		{FormatJSON, []string{`"width": 1200`, `"name": "Morpheus"`, `"path": "M 600 250 C 600 275, 400 275, 400 300"`}},
		{FormatYAML, []string{"width: 1200", "name: Morpheus", "path: M 600 250 C 600 275, 400 275, 400 300"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := Marshal(doc, tt.format)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(string(data), s) {
					t.Errorf("output missing %q", s)
				}
			}

			back, err := Unmarshal(data, tt.format)
			if err != nil {
				t.Fatalf("Unmarshal() error: %v", err)
			}
			if diff := cmp.Diff(doc, back); diff != "" {
				t.Errorf("decoded document mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMarshalUnsupported(t *testing.T) {
	if _, err := Marshal(Document{}, "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Marshal(xml) = %v, want INVALID_FORMAT", err)
	}
	if _, err := Unmarshal([]byte("{"), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Unmarshal(bad json) = %v, want INVALID_FORMAT", err)
	}
}
