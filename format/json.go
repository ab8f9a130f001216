package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tigrux/traeger-go/value"
)

// jsonFormat is the mandatory "json" codec (spec.md §4.A). It emits
// canonical JSON: UTF-8, lowercase booleans, shortest round-trippable
// numeric form, and object keys in the Map's insertion order (never
// alphabetical — that order is significant and caller-controlled).
type jsonFormat struct{}

func (jsonFormat) Name() string { return "json" }

func (jsonFormat) Encode(v value.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, &EncodeError{Format: "json", Err: err}
	}
	return buf.Bytes(), nil
}

func (jsonFormat) Decode(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return value.Value{}, &DecodeError{Format: "json", Err: err}
	}
	if dec.More() {
		return value.Value{}, &DecodeError{Format: "json", Err: fmt.Errorf("trailing data after top-level value")}
	}
	return v, nil
}

func encodeValue(buf *bytes.Buffer, v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		buf.WriteString("null")
		return nil

	case value.KindBool:
		b, _ := v.BoolValue()
		if b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil

	case value.KindInt:
		i, _ := v.IntValue()
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil

	case value.KindFloat:
		f, _ := v.FloatValue()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("cannot encode non-finite float %v", f)
		}
		encodeFloat(buf, f)
		return nil

	case value.KindString:
		s, _ := v.StringValue()
		encodeString(buf, s)
		return nil

	case value.KindList:
		l, _ := v.ListValue()
		buf.WriteByte('[')
		first := true
		var encErr error
		l.Each(func(_ int, item value.Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := encodeValue(buf, item); err != nil {
				encErr = err
				return false
			}
			return true
		})
		if encErr != nil {
			return encErr
		}
		buf.WriteByte(']')
		return nil

	case value.KindMap:
		m, _ := v.MapValue()
		buf.WriteByte('{')
		first := true
		var encErr error
		m.Each(func(k string, item value.Value) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			encodeString(buf, k)
			buf.WriteByte(':')
			if err := encodeValue(buf, item); err != nil {
				encErr = err
				return false
			}
			return true
		})
		if encErr != nil {
			return encErr
		}
		buf.WriteByte('}')
		return nil

	default:
		return fmt.Errorf("unsupported value kind %v", v.Kind())
	}
}

// encodeFloat writes the shortest round-trippable representation, always
// containing a '.' or an exponent so decode can tell it apart from an int.
func encodeFloat(buf *bytes.Buffer, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	buf.WriteString(s)
}

// encodeString writes a JSON string literal without the HTML-escaping that
// encoding/json.Marshal applies by default, since we want plain canonical
// output, not web-safe output.
func encodeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := value.NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return value.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return value.Value{}, fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return value.Value{}, err
			}
			return value.FromMap(m), nil

		case '[':
			l := value.NewList()
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				l.Append(v)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return value.Value{}, err
			}
			return value.FromList(l), nil

		default:
			return value.Value{}, fmt.Errorf("unexpected delimiter %v", t)
		}

	case nil:
		return value.Null(), nil

	case bool:
		return value.Bool(t), nil

	case string:
		return value.String(t), nil

	case json.Number:
		s := string(t)
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return value.Int(i), nil
			}
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil

	default:
		return value.Value{}, fmt.Errorf("unsupported JSON token %v (%T)", tok, tok)
	}
}
