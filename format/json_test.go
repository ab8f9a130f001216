package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/value"
)

// TestJSONRoundTripLiteral reproduces spec.md §8 scenario 3.
func TestJSONRoundTripLiteral(t *testing.T) {
	m := value.NewMap()
	m.Set("name", value.String("John"))
	m.Set("age", value.Int(30))
	m.Set("married", value.Bool(true))
	v := value.FromMap(m)

	jsonFmt, err := format.Get("json")
	require.NoError(t, err)

	encoded, err := jsonFmt.Encode(v)
	require.NoError(t, err)
	require.Equal(t, `{"name":"John","age":30,"married":true}`, string(encoded))

	decoded, err := jsonFmt.Decode(encoded)
	require.NoError(t, err)
	require.True(t, v.Equal(decoded))
}

func TestJSONDecodeMalformedIsDecodeError(t *testing.T) {
	jsonFmt, _ := format.Get("json")
	_, err := jsonFmt.Decode([]byte(`{not json`))
	require.Error(t, err)
	var de *format.DecodeError
	require.ErrorAs(t, err, &de)
}

func TestJSONFloatRoundTripsAsFloat(t *testing.T) {
	jsonFmt, _ := format.Get("json")
	v := value.Float(1.0)
	encoded, err := jsonFmt.Encode(v)
	require.NoError(t, err)
	require.Contains(t, string(encoded), ".")

	decoded, err := jsonFmt.Decode(encoded)
	require.NoError(t, err)
	_, isFloat := decoded.FloatValue()
	require.True(t, isFloat)
}

func TestJSONPreservesInsertionOrderOnReencode(t *testing.T) {
	jsonFmt, _ := format.Get("json")
	m := value.NewMap()
	m.Set("z", value.Int(1))
	m.Set("a", value.Int(2))
	v := value.FromMap(m)

	encoded, err := jsonFmt.Encode(v)
	require.NoError(t, err)
	require.Equal(t, `{"z":1,"a":2}`, string(encoded))

	decoded, err := jsonFmt.Decode(encoded)
	require.NoError(t, err)
	reencoded, err := jsonFmt.Encode(decoded)
	require.NoError(t, err)
	require.Equal(t, encoded, reencoded)
}

func TestUnknownFormat(t *testing.T) {
	_, err := format.Get("protobuf")
	require.Error(t, err)
}
