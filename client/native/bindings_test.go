package native

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type call struct {
	Name string
	Args []any
}

// fakeModule records cwrap requests and calls made through the wrappers.
type fakeModule struct {
	wrapped []EntryPoint
	calls   []call
	results map[string]any
	errs    map[string]error
	missing string
}

func (m *fakeModule) Cwrap(name string, returns Type, params ...Type) (Func, error) {
	if name == m.missing {
		return nil, fmt.Errorf("no export named %q", name)
	}
	m.wrapped = append(m.wrapped, EntryPoint{Name: name, Returns: returns, Params: params})
	return func(args ...any) (any, error) {
		m.calls = append(m.calls, call{Name: name, Args: args})
		if err := m.errs[name]; err != nil {
			return nil, err
		}
		return m.results[name], nil
	}, nil
}

func TestEntryPoints(t *testing.T) {
	want := []EntryPoint{
		{Name: "initGL", Returns: TypeNumber, Params: []Type{TypeNumber, TypeNumber}},
		{Name: "size_window", Returns: TypeNumber, Params: []Type{TypeNumber, TypeNumber, TypeNumber}},
		{Name: "draw_scene", Returns: TypeVoid, Params: []Type{TypeNumber}},
		{Name: "refresh_shaders", Returns: TypeVoid, Params: []Type{TypeString, TypeString}},
		{Name: "paste_text", Returns: TypeNumber, Params: []Type{TypeNumber, TypeString}},
	}
	if diff := cmp.Diff(want, EntryPoints()); diff != "" {
		t.Errorf("EntryPoints() mismatch (-want +got):\n%s", diff)
	}
}

func TestBindWrapsEveryEntryPoint(t *testing.T) {
	m := &fakeModule{}
	if _, err := Bind(m); err != nil {
		t.Fatalf("Bind() = %v, want nil error", err)
	}
	if diff := cmp.Diff(EntryPoints(), m.wrapped); diff != "" {
		t.Errorf("wrapped entry points mismatch (-want +got):\n%s", diff)
	}
}

func TestBindMissingExport(t *testing.T) {
	m := &fakeModule{missing: "paste_text"}
	_, err := Bind(m)
	if err == nil {
		t.Fatalf("Bind() = nil error, want error")
	}
	if got, want := err.Error(), `binding paste_text: no export named "paste_text"`; got != want {
		t.Errorf("Bind() error = %q, want %q", got, want)
	}
}

func TestBindingsCalls(t *testing.T) {
	m := &fakeModule{
		results: map[string]any{
			"initGL":      float64(5016),
			"size_window": float64(0),
			"paste_text":  float64(1),
		},
	}
	b, err := Bind(m)
	if err != nil {
		t.Fatalf("Bind() failed unexpectedly: %v", err)
	}

	h, err := b.InitGL(640, 480)
	if err != nil {
		t.Fatalf("InitGL() = %v, want nil error", err)
	}
	if h != 5016 {
		t.Errorf("InitGL() = %d, want 5016", h)
	}
	if _, err := b.SizeWindow(h, 1280, 960); err != nil {
		t.Errorf("SizeWindow() = %v, want nil error", err)
	}
	if err := b.DrawScene(h); err != nil {
		t.Errorf("DrawScene() = %v, want nil error", err)
	}
	if err := b.RefreshShaders("vtx", "frg"); err != nil {
		t.Errorf("RefreshShaders() = %v, want nil error", err)
	}
	ok, err := b.PasteText(h, "hello")
	if err != nil {
		t.Errorf("PasteText() = %v, want nil error", err)
	}
	if !ok {
		t.Errorf("PasteText() = false, want true")
	}

	want := []call{
		{Name: "initGL", Args: []any{640, 480}},
		{Name: "size_window", Args: []any{float64(5016), 1280, 960}},
		{Name: "draw_scene", Args: []any{float64(5016)}},
		{Name: "refresh_shaders", Args: []any{"vtx", "frg"}},
		{Name: "paste_text", Args: []any{float64(5016), "hello"}},
	}
	if diff := cmp.Diff(want, m.calls); diff != "" {
		t.Errorf("native calls mismatch (-want +got):\n%s", diff)
	}
}

func TestInitGLErrors(t *testing.T) {
	tests := []struct {
		name    string
		result  any
		err     error
		wantErr error
	}{
		{name: "unwind", err: ErrUnwind, wantErr: ErrUnwind},
		{name: "not a number", result: "oops"},
		{name: "boolean", result: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeModule{
				results: map[string]any{"initGL": tc.result},
				errs:    map[string]error{"initGL": tc.err},
			}
			b, err := Bind(m)
			if err != nil {
				t.Fatalf("Bind() failed unexpectedly: %v", err)
			}
			h, err := b.InitGL(1, 1)
			if err == nil {
				t.Fatalf("InitGL() = %d, nil, want error", h)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("InitGL() error = %v, want %v", err, tc.wantErr)
			}
			if h != NoHandle {
				t.Errorf("InitGL() handle = %d, want %d", h, NoHandle)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{float64(0), false},
		{float64(1), true},
		{float64(-1), true},
		{"", false},
		{"x", true},
	}
	for _, tc := range tests {
		if got := truthy(tc.v); got != tc.want {
			t.Errorf("truthy(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestHandleValid(t *testing.T) {
	for h, want := range map[Handle]bool{NoHandle: false, UnwindHandle: false, 2: true, 70000: true} {
		if got := h.Valid(); got != want {
			t.Errorf("Handle(%d).Valid() = %v, want %v", h, got, want)
		}
	}
}

func TestThrown(t *testing.T) {
	if err := thrown("", "unwind"); !errors.Is(err, ErrUnwind) {
		t.Errorf("thrown(unwind) = %v, want ErrUnwind", err)
	}

	err := thrown("RuntimeError", "unreachable")
	var exc *Exception
	if !errors.As(err, &exc) {
		t.Fatalf("thrown() = %T, want *Exception", err)
	}
	want := &Exception{Name: "RuntimeError", Message: "unreachable"}
	if diff := cmp.Diff(want, exc); diff != "" {
		t.Errorf("thrown() mismatch (-want +got):\n%s", diff)
	}
	if got, want := err.Error(), "native exception: RuntimeError: unreachable"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
