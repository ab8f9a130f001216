package module_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/module"
	"github.com/tigrux/traeger-go/value"
)

func TestLoadMissingPath(t *testing.T) {
	_, err := module.Load("/nonexistent/path/to/actor.so", value.Null())
	require.ErrorIs(t, err, module.ErrNotFound)
}
