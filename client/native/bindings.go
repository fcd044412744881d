// Package native binds the entry points exported by the compiled GL module.
package native

import (
	"errors"
	"fmt"
)

// A Handle is the opaque window pointer returned by the native initGL.
type Handle uint32

const (
	// NoHandle is returned by initGL when the GL context could not be created.
	NoHandle Handle = 0
	// UnwindHandle stands in for the real pointer when initGL exits by
	// throwing "unwind" after installing the native main loop.
	UnwindHandle Handle = 1
)

// Valid reports whether h refers to a window the native side created.
func (h Handle) Valid() bool { return h > UnwindHandle }

// Type is the cwrap name for an argument or return type.
type Type string

const (
	TypeVoid    Type = ""
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
)

// ErrUnwind is returned when a native call exits via the runtime's "unwind" exception.
var ErrUnwind = errors.New("native: unwind")

// Func is a wrapped native function.
type Func func(args ...any) (any, error)

// A Module can produce callable wrappers for its exported functions.
type Module interface {
	Cwrap(name string, returns Type, params ...Type) (Func, error)
}

// An EntryPoint describes one exported native function.
type EntryPoint struct {
	Name    string
	Returns Type
	Params  []Type
}

var (
	initGLEntry         = EntryPoint{"initGL", TypeNumber, []Type{TypeNumber, TypeNumber}}
	sizeWindowEntry     = EntryPoint{"size_window", TypeNumber, []Type{TypeNumber, TypeNumber, TypeNumber}}
	drawSceneEntry      = EntryPoint{"draw_scene", TypeVoid, []Type{TypeNumber}}
	refreshShadersEntry = EntryPoint{"refresh_shaders", TypeVoid, []Type{TypeString, TypeString}}
	pasteTextEntry      = EntryPoint{"paste_text", TypeNumber, []Type{TypeNumber, TypeString}}
)

// EntryPoints returns the table of native functions Bind wraps, in binding order.
func EntryPoints() []EntryPoint {
	return []EntryPoint{
		initGLEntry,
		sizeWindowEntry,
		drawSceneEntry,
		refreshShadersEntry,
		pasteTextEntry,
	}
}

// Bindings holds typed callables for the native entry points.
type Bindings struct {
	InitGL         func(width, height int) (Handle, error)
	SizeWindow     func(w Handle, width, height int) (int, error)
	DrawScene      func(w Handle) error
	RefreshShaders func(vertex, fragment string) error
	PasteText      func(w Handle, text string) (bool, error)
}

// Bind wraps every entry point of m.
func Bind(m Module) (*Bindings, error) {
	fns := make(map[string]Func)
	for _, ep := range EntryPoints() {
		fn, err := m.Cwrap(ep.Name, ep.Returns, ep.Params...)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", ep.Name, err)
		}
		if fn == nil {
			return nil, fmt.Errorf("binding %s: module returned no function", ep.Name)
		}
		fns[ep.Name] = fn
	}

	initGL := fns[initGLEntry.Name]
	sizeWindow := fns[sizeWindowEntry.Name]
	drawScene := fns[drawSceneEntry.Name]
	refreshShaders := fns[refreshShadersEntry.Name]
	pasteText := fns[pasteTextEntry.Name]

	return &Bindings{
		InitGL: func(width, height int) (Handle, error) {
			v, err := initGL(width, height)
			if err != nil {
				return NoHandle, err
			}
			n, err := toNumber(v)
			if err != nil {
				return NoHandle, fmt.Errorf("initGL: %w", err)
			}
			return Handle(n), nil
		},
		SizeWindow: func(w Handle, width, height int) (int, error) {
			v, err := sizeWindow(float64(w), width, height)
			if err != nil {
				return 0, err
			}
			n, err := toNumber(v)
			if err != nil {
				return 0, fmt.Errorf("size_window: %w", err)
			}
			return int(n), nil
		},
		DrawScene: func(w Handle) error {
			_, err := drawScene(float64(w))
			return err
		},
		RefreshShaders: func(vertex, fragment string) error {
			_, err := refreshShaders(vertex, fragment)
			return err
		},
		PasteText: func(w Handle, text string) (bool, error) {
			v, err := pasteText(float64(w), text)
			if err != nil {
				return false, err
			}
			return truthy(v), nil
		},
	}, nil
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	}
	return true
}
