// Package module implements spec.md §4.G: loading an actor factory out of
// a dynamically loaded shared object. Go's standard plugin package is the
// only mechanism in the retrieval pack (or the wider ecosystem) that opens
// a .so and resolves exported symbols at runtime, so it is used directly
// rather than through a third-party wrapper; see DESIGN.md.
package module

import (
	"fmt"
	"plugin"

	"go.uber.org/zap"

	"github.com/tigrux/traeger-go/actor"
	"github.com/tigrux/traeger-go/internal/logging"
	"github.com/tigrux/traeger-go/value"
)

// Factory is the symbol every loadable module must export under the name
// "Factory": given the configuration Map passed to Load, it returns the
// Mailbox of a ready-to-use actor. Equivalent to the original bindings'
// make_actor(clazz, *args) called inside the loaded shared object, with
// config replacing the positional constructor arguments Go cannot pass
// reflectively.
type Factory func(config value.Value) (actor.Mailbox, error)

// Module is a loaded shared object exposing one actor factory.
type Module struct {
	path    string
	mailbox actor.Mailbox
}

// Load opens the shared object at path, resolves its Factory symbol, and
// calls it with config (the same Map argument example-module-actor.py
// passes as traeger.Module(path, configuration)).
func Load(path string, config value.Value) (*Module, error) {
	logger := logging.L()
	p, err := plugin.Open(path)
	if err != nil {
		logger.Error("module: open failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}

	sym, err := p.Lookup("Factory")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFactory, path)
	}

	// plugin.Lookup returns the function value directly for a top-level
	// func declaration, but a pointer to it for a package-level var (the
	// more common way to export a closure); accept either.
	var factory Factory
	switch f := sym.(type) {
	case func(value.Value) (actor.Mailbox, error):
		factory = f
	case *func(value.Value) (actor.Mailbox, error):
		factory = *f
	default:
		return nil, fmt.Errorf("%w: %s", ErrBadFactorySignature, path)
	}

	mailbox, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("%s: factory failed for %s: %w", Namespace, path, err)
	}

	return &Module{path: path, mailbox: mailbox}, nil
}

// Mailbox returns the loaded module's actor mailbox.
func (m *Module) Mailbox() actor.Mailbox {
	return m.mailbox
}
