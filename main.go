// Command stereoweb serves the page that hosts the native GL module and its
// Go relay, together with the shader sources the relay reloads.
package main

import (
	"crypto/tls"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

var (
	port      = flag.Int("port", 8080, "http port to listen on")
	useTLS    = flag.Bool("tls", false, "enable HTTPS with a self-signed certificate")
	basePath  = flag.String("base_path", "", "base path to serve on, e.g. '/foo/'")
	distDir   = flag.String("dist_dir", "dist", "directory holding client.wasm, wasm_exec.js and the native module build")
	shaderDir = flag.String("shader_dir", "shaders", "directory holding main.vtx and main.frg")
	minifyOut = flag.Bool("minify", true, "minify the index page and static assets")
)

func main() {
	flag.Parse()

	srv, err := newServer(config{
		BasePath:  *basePath,
		DistDir:   *distDir,
		ShaderDir: *shaderDir,
		Minify:    *minifyOut,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	addr := fmt.Sprintf(":%d", *port)
	handler := logRequest(srv.routes())

	if *useTLS {
		tlsCert, err := selfSignedCert("stereoweb dev", 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to generate self-signed certificate: %v", err)
		}
		hs := &http.Server{
			Addr:    addr,
			Handler: handler,
			TLSConfig: &tls.Config{
				Certificates: []tls.Certificate{tlsCert},
			},
		}
		log.Printf("Listening on https://0.0.0.0%s%s", addr, srv.basePath)
		if err := hs.ListenAndServeTLS("", ""); err != nil {
			log.Println("Failed to start server", err)
			os.Exit(1)
		}
	} else {
		log.Printf("Listening on http://0.0.0.0%s%s", addr, srv.basePath)
		if err := http.ListenAndServe(addr, handler); err != nil {
			log.Println("Failed to start server", err)
			os.Exit(1)
		}
	}
}
