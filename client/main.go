//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"log"
	"syscall/js"
	"time"

	"github.com/hulkholden/stereoweb/client/browser"
	"github.com/hulkholden/stereoweb/client/native"
	"github.com/hulkholden/stereoweb/client/relay"
	"github.com/hulkholden/stereoweb/client/shaders"
)

const (
	defaultCanvasID = "canvas"
	nativeTimeout   = 30 * time.Second
)

// waitForNative waits until the loader script reports the native runtime has initialized.
func waitForNative() (native.JSModule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), nativeTimeout)
	defer cancel()

	m := native.GlobalModule()
	err := native.WaitReady(ctx, 250*time.Millisecond, func() bool {
		if !js.Global().Get("nativeReady").Truthy() {
			return false
		}
		m = native.GlobalModule()
		return m.Ready()
	})
	return m, err
}

func findCanvas(window browser.HTMLWindow, doc browser.HTMLDocument) (browser.HTMLCanvas, error) {
	var el js.Value
	if fn := js.Global().Get("getCanvas"); fn.Type() == js.TypeFunction {
		el = fn.Invoke()
	} else {
		el = doc.GetElementByID(defaultCanvasID)
	}
	if !el.Truthy() {
		return browser.HTMLCanvas{}, fmt.Errorf("no <canvas> element found")
	}
	return browser.NewCanvas(el, window), nil
}

func run() error {
	window := browser.Window()
	doc := browser.Document()

	opts := relay.OptionsFromQuery(window.Search())

	module, err := waitForNative()
	if err != nil {
		return err
	}
	bindings, err := native.Bind(module)
	if err != nil {
		return fmt.Errorf("binding native module: %v", err)
	}

	canvas, err := findCanvas(window, doc)
	if err != nil {
		return err
	}
	fetcher, err := shaders.NewFetcher(window.Location())
	if err != nil {
		return err
	}

	program, err := relay.New(canvas, bindings, window, fetcher, opts)
	if err != nil {
		return err
	}
	log.Printf("initialized %v, window %d", canvas, program.Window())

	listeners := browser.Attach(program, canvas, doc)
	var pagehide js.Func
	pagehide = js.FuncOf(func(this js.Value, args []js.Value) any {
		persisted := len(args) > 0 && args[0].Get("persisted").Truthy()
		if !program.PageHide(persisted) {
			return nil
		}
		listeners.Release()
		pagehide.Release()
		return nil
	})
	window.AddEventListener("pagehide", pagehide)
	return nil
}

func main() {
	log.Println("Started client!")

	if err := run(); err != nil {
		log.Printf("run() failed: %v", err)
		if fn := js.Global().Get("showError"); !fn.IsUndefined() {
			fn.Invoke("Run error: " + err.Error())
		}
	}

	<-make(chan bool)
}
