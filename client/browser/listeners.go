//go:build js && wasm

package browser

import (
	"context"
	"log"
	"syscall/js"
)

// Relay receives the browser events forwarded to the native module.
type Relay interface {
	Resize() error
	KeyDown(ctx context.Context, key string) error
	Paste(text string) bool
}

// Listeners are the DOM callbacks installed by Attach.
type Listeners struct {
	doc      HTMLDocument
	observer ResizeObserver
	cancel   context.CancelFunc

	resize  js.Func
	keydown js.Func
	paste   js.Func
}

// Attach forwards canvas resizes and document key and paste events to r.
func Attach(r Relay, canvas HTMLCanvas, doc HTMLDocument) *Listeners {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Listeners{doc: doc, cancel: cancel}

	l.resize = js.FuncOf(func(this js.Value, args []js.Value) any {
		if err := r.Resize(); err != nil {
			log.Printf("resize failed: %v", err)
		}
		return nil
	})
	l.observer = NewResizeObserver(l.resize)
	l.observer.Observe(canvas.Value())

	l.keydown = js.FuncOf(func(this js.Value, args []js.Value) any {
		key := args[0].Get("key").String()
		// Fetching blocks, which is not allowed inside an event callback.
		go func() {
			if err := r.KeyDown(ctx, key); err != nil {
				log.Printf("keydown %q: %v", key, err)
			}
		}()
		return nil
	})
	doc.AddEventListener("keydown", l.keydown)

	l.paste = js.FuncOf(func(this js.Value, args []js.Value) any {
		evt := args[0]
		data := evt.Get("clipboardData")
		if data.IsUndefined() || data.IsNull() {
			return nil
		}
		txt := data.Call("getData", "text")
		if txt.Type() != js.TypeString {
			return nil
		}
		if r.Paste(txt.String()) {
			evt.Call("preventDefault")
		}
		return nil
	})
	doc.AddEventListener("paste", l.paste)

	return l
}

// Release removes every listener and frees the callbacks.
func (l *Listeners) Release() {
	l.cancel()
	l.observer.Disconnect()
	l.doc.RemoveEventListener("keydown", l.keydown)
	l.doc.RemoveEventListener("paste", l.paste)
	l.resize.Release()
	l.keydown.Release()
	l.paste.Release()
}
