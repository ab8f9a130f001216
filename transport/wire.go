package transport

import (
	"github.com/tigrux/traeger-go/format"
	"github.com/tigrux/traeger-go/value"
)

// Wire framing, per spec.md §4.A: one message is always a short List encoded
// through a format.Format, so the same json codec that round-trips a
// user-level Value also round-trips the transport envelope.
//
//   Request: [method_name, arguments]   (arguments is itself a List)
//   Reply:   [ok, payload]
//   Publish: [topic, value]

func encodeRequest(f format.Format, method string, args []value.Value) ([]byte, error) {
	items := value.NewList(value.String(method), value.FromList(value.NewList(args...)))
	return f.Encode(value.FromList(items))
}

func decodeRequest(f format.Format, data []byte) (method string, args []value.Value, err error) {
	v, err := f.Decode(data)
	if err != nil {
		return "", nil, err
	}
	list, ok := v.ListValue()
	if !ok || list.Len() != 2 {
		return "", nil, ErrMalformedFrame
	}
	mv, ok := list.Get(0)
	if !ok {
		return "", nil, ErrMalformedFrame
	}
	method, ok = mv.StringValue()
	if !ok {
		return "", nil, ErrMalformedFrame
	}
	av, ok := list.Get(1)
	if !ok {
		return "", nil, ErrMalformedFrame
	}
	argsList, ok := av.ListValue()
	if !ok {
		return "", nil, ErrMalformedFrame
	}
	args = make([]value.Value, 0, argsList.Len())
	for i := 0; i < argsList.Len(); i++ {
		item, _ := argsList.Get(i)
		args = append(args, item)
	}
	return method, args, nil
}

func encodeReply(f format.Format, ok bool, payload value.Value) ([]byte, error) {
	items := value.NewList(value.Bool(ok), payload)
	return f.Encode(value.FromList(items))
}

func decodeReply(f format.Format, data []byte) (ok bool, payload value.Value, err error) {
	v, err := f.Decode(data)
	if err != nil {
		return false, value.Value{}, err
	}
	list, listOk := v.ListValue()
	if !listOk || list.Len() != 2 {
		return false, value.Value{}, ErrMalformedFrame
	}
	okV, got := list.Get(0)
	if !got {
		return false, value.Value{}, ErrMalformedFrame
	}
	ok, isBool := okV.BoolValue()
	if !isBool {
		return false, value.Value{}, ErrMalformedFrame
	}
	payload, got = list.Get(1)
	if !got {
		return false, value.Value{}, ErrMalformedFrame
	}
	return ok, payload, nil
}

func encodePublish(f format.Format, topic string, payload value.Value) ([]byte, error) {
	items := value.NewList(value.String(topic), payload)
	return f.Encode(value.FromList(items))
}

func decodePublish(f format.Format, data []byte) (topic string, payload value.Value, err error) {
	v, err := f.Decode(data)
	if err != nil {
		return "", value.Value{}, err
	}
	list, ok := v.ListValue()
	if !ok || list.Len() != 2 {
		return "", value.Value{}, ErrMalformedFrame
	}
	tv, got := list.Get(0)
	if !got {
		return "", value.Value{}, ErrMalformedFrame
	}
	topic, ok = tv.StringValue()
	if !ok {
		return "", value.Value{}, ErrMalformedFrame
	}
	payload, got = list.Get(1)
	if !got {
		return "", value.Value{}, ErrMalformedFrame
	}
	return topic, payload, nil
}
