package promise

// Namespace prefixes every sentinel error this package returns, matching the
// convention set by the teacher's errors.go.
const Namespace = "promise"
