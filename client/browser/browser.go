//go:build js && wasm

// Package browser wraps the DOM objects the relay needs.
package browser

import (
	"strconv"
	"syscall/js"
)

type HTMLWindow struct{ jsValue js.Value }

func Window() HTMLWindow {
	return HTMLWindow{js.Global().Get("window")}
}

func (w HTMLWindow) RequestAnimationFrame(fn js.Func) { w.jsValue.Call("requestAnimationFrame", fn) }

// RequestFrame runs fn once before the next repaint.
func (w HTMLWindow) RequestFrame(fn func()) {
	var frame js.Func
	frame = js.FuncOf(func(this js.Value, args []js.Value) any {
		frame.Release()
		fn()
		return nil
	})
	w.RequestAnimationFrame(frame)
}

func (w HTMLWindow) AddEventListener(event string, fn js.Func) {
	w.jsValue.Call("addEventListener", event, fn)
}

func (w HTMLWindow) DevicePixelRatio() float64 {
	v := w.jsValue.Get("devicePixelRatio")
	if v.Type() != js.TypeNumber {
		return 1
	}
	return v.Float()
}

// Location returns the page URL.
func (w HTMLWindow) Location() string { return w.jsValue.Get("location").Get("href").String() }

// Search returns the query part of the page URL, including the leading '?'.
func (w HTMLWindow) Search() string { return w.jsValue.Get("location").Get("search").String() }

type HTMLDocument struct{ jsValue js.Value }

func Document() HTMLDocument {
	return HTMLDocument{js.Global().Get("document")}
}

func (d HTMLDocument) GetElementByID(id string) js.Value {
	return d.jsValue.Call("getElementById", id)
}

func (d HTMLDocument) AddEventListener(event string, fn js.Func) {
	d.jsValue.Call("addEventListener", event, fn)
}

func (d HTMLDocument) RemoveEventListener(event string, fn js.Func) {
	d.jsValue.Call("removeEventListener", event, fn)
}

// HTMLCanvas is a <canvas> element.
type HTMLCanvas struct {
	jsValue js.Value
	window  HTMLWindow
}

func NewCanvas(el js.Value, window HTMLWindow) HTMLCanvas {
	return HTMLCanvas{jsValue: el, window: window}
}

func (c HTMLCanvas) Value() js.Value { return c.jsValue }

func (c HTMLCanvas) Size() (int, int) {
	return c.jsValue.Get("width").Int(), c.jsValue.Get("height").Int()
}

func (c HTMLCanvas) ClientSize() (float64, float64) {
	return c.jsValue.Get("clientWidth").Float(), c.jsValue.Get("clientHeight").Float()
}

func (c HTMLCanvas) PixelRatio() float64 { return c.window.DevicePixelRatio() }

func (c HTMLCanvas) StyleSize() (string, string) {
	style := c.jsValue.Get("style")
	return style.Get("width").String(), style.Get("height").String()
}

func (c HTMLCanvas) SetStyleSize(width, height string) {
	style := c.jsValue.Get("style")
	style.Set("width", width)
	style.Set("height", height)
}

func (c HTMLCanvas) String() string {
	w, h := c.Size()
	return "canvas#" + c.jsValue.Get("id").String() + " " + strconv.Itoa(w) + "x" + strconv.Itoa(h)
}

type ResizeObserver struct{ jsValue js.Value }

func NewResizeObserver(fn js.Func) ResizeObserver {
	return ResizeObserver{js.Global().Get("ResizeObserver").New(fn)}
}

func (o ResizeObserver) Observe(el js.Value) { o.jsValue.Call("observe", el) }

func (o ResizeObserver) Disconnect() { o.jsValue.Call("disconnect") }
