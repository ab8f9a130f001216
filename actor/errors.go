package actor

import "errors"

// Namespace prefixes every sentinel error this package returns.
const Namespace = "actor"

// ErrUnknownMethod is the error message used when Send names a method that
// was never registered with DefineReader/DefineWriter.
var ErrUnknownMethod = errors.New(Namespace + ": unknown method")
