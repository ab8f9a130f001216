package module

import "errors"

// Namespace prefixes every sentinel error this package returns.
const Namespace = "module"

var (
	// ErrNotFound is returned when the .so at the given path cannot be
	// opened.
	ErrNotFound = errors.New(Namespace + ": module not found")

	// ErrMissingFactory is returned when the loaded plugin does not export
	// the Factory symbol this package requires.
	ErrMissingFactory = errors.New(Namespace + ": module does not export a Factory symbol")

	// ErrBadFactorySignature is returned when the exported Factory symbol
	// does not have the expected type.
	ErrBadFactorySignature = errors.New(Namespace + ": Factory has the wrong signature")
)
