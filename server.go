package main

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hulkholden/stereoweb/client/shaders"
	"github.com/hulkholden/stereoweb/static"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

var (
	//go:embed templates/*
	templatesFS embed.FS
	indexTmpl   = template.Must(template.ParseFS(templatesFS, "templates/index.html"))
)

type config struct {
	BasePath  string
	DistDir   string
	ShaderDir string
	Minify    bool
}

type server struct {
	basePath  string
	distDir   string
	shaderDir string
	minifier  *minify.M
}

func newServer(cfg config) (*server, error) {
	for _, dir := range []string{cfg.DistDir, cfg.ShaderDir} {
		if fi, err := os.Stat(dir); err != nil {
			log.Printf("warning: %v", err)
		} else if !fi.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", dir)
		}
	}
	s := &server{
		basePath:  canonicalizeBasePath(cfg.BasePath),
		distDir:   cfg.DistDir,
		shaderDir: cfg.ShaderDir,
	}
	if cfg.Minify {
		s.minifier = newMinifier()
	}
	return s, nil
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.basePath, s.index)

	var staticHandler http.Handler = http.FileServer(http.FS(static.FS))
	if s.minifier != nil {
		staticHandler = s.minifier.Middleware(staticHandler)
	}
	mux.Handle(s.basePath+"static/", http.StripPrefix(s.basePath+"static/", staticHandler))

	distHandler := http.FileServer(http.Dir(s.distDir))
	mux.Handle(s.basePath+"dist/", http.StripPrefix(s.basePath+"dist/", distHandler))
	// If client.wasm is requested, serve a gzipped version when one was built.
	mux.Handle(s.basePath+"dist/client.wasm", http.StripPrefix(s.basePath+"dist/", makeGzipHandler(s.distDir, distHandler)))

	for _, name := range []string{shaders.DefaultVertexPath, shaders.DefaultFragmentPath} {
		mux.HandleFunc(s.basePath+name, s.shader(name))
	}
	return mux
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	// "/" patterns match any path under them.
	if r.URL.Path != s.basePath {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	data := map[string]any{
		"BasePath": s.basePath,
		"CanvasID": "canvas",
	}
	if err := indexTmpl.Execute(&buf, data); err != nil {
		log.Printf("executing index template: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.minifier == nil {
		w.Write(buf.Bytes())
		return
	}
	if err := s.minifier.Minify("text/html", w, &buf); err != nil {
		log.Printf("minifying index: %v", err)
	}
}

// shader serves a shader source from disk so edits are picked up on reload.
func (s *server) shader(name string) http.HandlerFunc {
	path := filepath.Join(s.shaderDir, name)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}

// makeGzipHandler returns a HTTP HandlerFunc which serves a gzipped version of
// the requested file from dir if the client accepts it and one exists.
func makeGzipHandler(dir string, h http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(w, r)
			return
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(r.URL.Path)+".gz")); err != nil {
			h.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/wasm")
		r.URL.Path += ".gz"
		r.URL.RawPath += ".gz"
		h.ServeHTTP(w, r)
	}
}

func logRequest(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sr := &statusRecorder{
			ResponseWriter: w,
			Status:         200,
		}
		handler.ServeHTTP(sr, r)
		log.Printf("%s %s %d %s\n", r.RemoteAddr, r.Method, sr.Status, r.URL)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

func canonicalizeBasePath(s string) string {
	bp := s
	if !strings.HasSuffix(bp, "/") {
		bp = bp + "/"
	}
	if !strings.HasPrefix(bp, "/") {
		bp = "/" + bp
	}
	return bp
}
