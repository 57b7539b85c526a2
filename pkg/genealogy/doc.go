// Package genealogy defines the agent family tree that evotree lays out and
// renders.
//
// A tree is a single root [Node] that exclusively owns its children. Besides
// the structural fields (ID, Name, Parent, Children) every node carries the
// decorative agent attributes shown on cards: generation, token and wallet
// data, traits, health and breed progress.
//
// # Sources
//
// The demo tree is embedded at compile time and returned by [Sample]. Other
// trees can be loaded from JSON or YAML files with [ReadFile]:
//
//	root, err := genealogy.ReadFile("agents.yaml")
//	if err != nil {
//	    return err
//	}
//
// [ReadFile] validates what it loads. [Watch] rereads a file each time it
// changes on disk, which is how the explorer follows edits live.
//
// # Parent references
//
// Each non-root node names its parent in the Parent field. The name is a
// declaration only: structure always comes from Children. Renderers use the
// declared name to draw connectors and silently skip nodes whose declared
// parent cannot be found, so a mismatch is not a validation error.
//
// [Profile] describes a single agent as markdown for terminal display.
//
// # Concurrency
//
// Trees are treated as immutable once loaded. All functions are safe for
// concurrent reads; use [Clone] before mutating a shared tree.
package genealogy
