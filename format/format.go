// Package format implements named codecs between value.Value and byte
// buffers (spec.md §4.A). "json" is the mandatory format; additional codecs
// register themselves the same way.
package format

import (
	"fmt"
	"sync"

	"github.com/tigrux/traeger-go/value"
)

// Format encodes and decodes value.Value to and from a byte buffer.
type Format interface {
	// Name returns the format identifier, e.g. "json".
	Name() string
	// Encode serializes v deterministically: for the same Value, Encode
	// always produces the same bytes (insertion-order keys, shortest
	// round-trippable numeric form).
	Encode(v value.Value) ([]byte, error)
	// Decode parses data into a Value, or returns a *DecodeError on
	// malformed input.
	Decode(data []byte) (value.Value, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Format{}
)

func register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[f.Name()] = f
}

func init() {
	register(jsonFormat{})
}

// Get looks up a registered Format by name.
func Get(name string) (Format, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%s: unknown format %q", Namespace, name)
	}
	return f, nil
}

// New is an alias for Get matching the traeger.Format(name) call in the
// original bindings.
func New(name string) (Format, error) { return Get(name) }
