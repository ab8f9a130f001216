package actor

import (
	"fmt"

	"github.com/tigrux/traeger-go/promise"
	"github.com/tigrux/traeger-go/value"
)

// Actor[S] pairs a StatelessActor core with a concrete Go state value S. It
// is the generics-based equivalent of the original bindings' Actor class,
// which used inspect.signature over the host method to coerce arguments and
// wrap the return into a Result. Go has no runtime signature inspection, so
// the BindN helpers below play that role at each call site instead, fixed
// at the arity the caller actually has.
type Actor[S any] struct {
	*StatelessActor
	State *S
}

// New constructs an Actor[S] wrapping state, with no methods defined yet.
// Equivalent to make_actor(clazz, *args) once the caller has already built
// the state value (Go has no reflective constructor call).
func New[S any](state *S) *Actor[S] {
	return &Actor[S]{StatelessActor: NewStatelessActor(), State: state}
}

// DefineReader0 binds a zero-argument reader method.
func DefineReader0[S, R any](a *Actor[S], name string, method func(*S) (R, error)) {
	a.StatelessActor.DefineReader(name, Bind0(a.State, method))
}

// DefineWriter0 binds a zero-argument writer method.
func DefineWriter0[S, R any](a *Actor[S], name string, method func(*S) (R, error)) {
	a.StatelessActor.DefineWriter(name, Bind0(a.State, method))
}

// DefineReader1 binds a one-argument reader method.
func DefineReader1[S, A1, R any](a *Actor[S], name string, method func(*S, A1) (R, error)) {
	a.StatelessActor.DefineReader(name, Bind1(a.State, method))
}

// DefineWriter1 binds a one-argument writer method.
func DefineWriter1[S, A1, R any](a *Actor[S], name string, method func(*S, A1) (R, error)) {
	a.StatelessActor.DefineWriter(name, Bind1(a.State, method))
}

// DefineReader2 binds a two-argument reader method.
func DefineReader2[S, A1, A2, R any](a *Actor[S], name string, method func(*S, A1, A2) (R, error)) {
	a.StatelessActor.DefineReader(name, Bind2(a.State, method))
}

// DefineWriter2 binds a two-argument writer method.
func DefineWriter2[S, A1, A2, R any](a *Actor[S], name string, method func(*S, A1, A2) (R, error)) {
	a.StatelessActor.DefineWriter(name, Bind2(a.State, method))
}

// Bind0 wraps a zero-argument method as a Handler, converting its result to
// a Value and any returned error to a failed Result (equivalent to the
// original's Result.from_error(str(e))).
func Bind0[S, R any](state *S, method func(*S) (R, error)) Handler {
	return func(args []value.Value) promise.Result[value.Value] {
		if len(args) != 0 {
			return arityError(0, len(args))
		}
		result, err := method(state)
		return toResult(result, err)
	}
}

// Bind1 wraps a one-argument method, converting the sole Value argument to
// A1 via convertArg before calling method.
func Bind1[S, A1, R any](state *S, method func(*S, A1) (R, error)) Handler {
	return func(args []value.Value) promise.Result[value.Value] {
		if len(args) != 1 {
			return arityError(1, len(args))
		}
		a1, err := convertArg[A1](args[0])
		if err != nil {
			return promise.FromErr[value.Value](err)
		}
		result, err := method(state, a1)
		return toResult(result, err)
	}
}

// Bind2 wraps a two-argument method.
func Bind2[S, A1, A2, R any](state *S, method func(*S, A1, A2) (R, error)) Handler {
	return func(args []value.Value) promise.Result[value.Value] {
		if len(args) != 2 {
			return arityError(2, len(args))
		}
		a1, err := convertArg[A1](args[0])
		if err != nil {
			return promise.FromErr[value.Value](err)
		}
		a2, err := convertArg[A2](args[1])
		if err != nil {
			return promise.FromErr[value.Value](err)
		}
		result, err := method(state, a1, a2)
		return toResult(result, err)
	}
}

func arityError(want, got int) promise.Result[value.Value] {
	return promise.FromError[value.Value](fmt.Sprintf("function takes %d arguments but %d were given", want, got))
}

func toResult[R any](result R, err error) promise.Result[value.Value] {
	if err != nil {
		return promise.FromErr[value.Value](err)
	}
	v, err := value.FromNative(result)
	if err != nil {
		return promise.FromErr[value.Value](err)
	}
	return promise.FromValue(v)
}

// convertArg coerces a raw Value into the Go type T a bound method
// declares, mirroring the permissive numeric coercion the original's
// convert(annotation, value) performed via Python's float()/int()/str().
func convertArg[T any](v value.Value) (T, error) {
	var zero T
	native := v.Unwrap()

	switch any(zero).(type) {
	case float64:
		switch n := native.(type) {
		case float64:
			return any(n).(T), nil
		case int64:
			return any(float64(n)).(T), nil
		}
	case int64:
		switch n := native.(type) {
		case int64:
			return any(n).(T), nil
		case float64:
			return any(int64(n)).(T), nil
		}
	case string:
		if s, ok := native.(string); ok {
			return any(s).(T), nil
		}
	case bool:
		if b, ok := native.(bool); ok {
			return any(b).(T), nil
		}
	case value.Value:
		return any(v).(T), nil
	}

	return zero, fmt.Errorf("cannot convert %T to %T", native, zero)
}
