//go:build js && wasm

package native

import (
	"fmt"
	"syscall/js"
)

// JSModule wraps the Emscripten Module object.
type JSModule struct{ jsValue js.Value }

func NewModule(v js.Value) JSModule { return JSModule{v} }

// GlobalModule returns the Module object installed by the Emscripten loader.
func GlobalModule() JSModule { return NewModule(js.Global().Get("Module")) }

// Ready reports whether the runtime has finished initializing.
func (m JSModule) Ready() bool {
	if m.jsValue.IsUndefined() || m.jsValue.IsNull() {
		return false
	}
	return !m.jsValue.Get("cwrap").IsUndefined()
}

func (m JSModule) Cwrap(name string, returns Type, params ...Type) (fn Func, err error) {
	if !m.Ready() {
		return nil, fmt.Errorf("module is not initialized")
	}
	jsParams := make([]any, len(params))
	for i, p := range params {
		jsParams[i] = string(p)
	}
	var wrapped js.Value
	if err := catch(func() {
		wrapped = m.jsValue.Call("cwrap", name, string(returns), jsParams)
	}); err != nil {
		return nil, err
	}
	if wrapped.Type() != js.TypeFunction {
		return nil, fmt.Errorf("cwrap(%q) returned %s", name, wrapped.Type())
	}

	return func(args ...any) (any, error) {
		var result js.Value
		if err := catch(func() { result = wrapped.Invoke(args...) }); err != nil {
			return nil, err
		}
		return fromJS(result), nil
	}, nil
}

// catch runs fn and converts a thrown JS value into an error.
func catch(fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		jsErr, ok := r.(js.Error)
		if !ok {
			panic(r)
		}
		err = thrownValue(jsErr.Value)
	}()
	fn()
	return nil
}

func thrownValue(v js.Value) error {
	if v.Type() == js.TypeString {
		return thrown("", v.String())
	}
	if v.Type() == js.TypeObject {
		name := v.Get("name")
		msg := v.Get("message")
		if name.Type() == js.TypeString && msg.Type() == js.TypeString {
			return thrown(name.String(), msg.String())
		}
	}
	return thrown("", js.Global().Call("String", v).String())
}

func fromJS(v js.Value) any {
	switch v.Type() {
	case js.TypeNumber:
		return v.Float()
	case js.TypeBoolean:
		return v.Bool()
	case js.TypeString:
		return v.String()
	case js.TypeUndefined, js.TypeNull:
		return nil
	}
	return v
}
