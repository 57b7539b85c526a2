package genealogy

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed sample.json
var sampleJSON []byte

var parseSample = sync.OnceValue(func() *Node {
	var root Node
	if err := json.Unmarshal(sampleJSON, &root); err != nil {
		panic("genealogy: embedded sample tree is invalid: " + err.Error())
	}
	return &root
})

// Sample returns a fresh copy of the embedded demo tree:
//
//	Spore
//	├── Adam
//	│   └── Morpheus
//	└── Eve
//	    └── Trinity
func Sample() *Node {
	return Clone(parseSample())
}
