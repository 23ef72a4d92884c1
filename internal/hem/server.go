package hem

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"hem/internal/compiler"
	herrors "hem/internal/errors"
	"hem/util"
)

// MetricsPath serves the metrics snapshot in server mode.
const MetricsPath = "/__hem/metrics"

// serve runs the dev server until ctx is cancelled.
func (h *Hem) serve(ctx context.Context) error {
	addr := util.FormatAddr(h.Config.Host, h.Config.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return h.Serve(ctx, ln)
}

// Serve runs the dev server on ln until ctx is cancelled.  Package
// requests compile on demand; a file watcher keeps compiled packages
// cached until their sources change.
func (h *Hem) Serve(ctx context.Context, ln net.Listener) error {
	if err := h.Manifest.Validate(); err != nil {
		ln.Close()
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := NewWatcher(h.Config.Debounce, h.Logger)
	if err != nil {
		h.Logger.Warn("file watching unavailable, compiling on every request: %v", err)
	} else {
		defer w.Close()
		if err := w.Add(h.Manifest.WatchDirs()...); err != nil {
			h.Logger.Warn("watch: %v", err)
		}
		h.cache.setEnabled(true)
		go w.Run(ctx, func(paths []string) {
			h.Logger.Verbose("changed: %v", paths)
			h.cache.invalidate()
		})
	}

	srv := &http.Server{
		Handler:           h.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		h.Logger.Info("serving on %s", util.DisplayURL(h.Config.Host, tcp.Port))
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.Logger.Verbose("shutting down")
	sctx, scancel := context.WithTimeout(context.Background(), h.Config.ShutdownGrace)
	defer scancel()

	var shutdownErr error
	if err := srv.Shutdown(sctx); err != nil {
		shutdownErr = fmt.Errorf("shutdown: %w", err)
	}
	serveErr := <-errCh
	if errors.Is(serveErr, http.ErrServerClosed) {
		serveErr = nil
	}
	return herrors.Join(shutdownErr, serveErr)
}

// Handler routes package paths to the compilers, the metrics path to
// the collector and everything else to the public directory.  The
// manifest must pass Validate; LoadManifest and Serve check it.
func (h *Hem) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(h.Manifest.CSSPath, h.packageHandler(compiler.KindCSS))
	mux.HandleFunc(h.Manifest.JSPath, h.packageHandler(compiler.KindJS))
	mux.HandleFunc(MetricsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintln(w, h.Metrics.JSON())
	})
	mux.Handle("/", http.FileServer(http.Dir(h.Manifest.PublicDir())))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Metrics.RequestServed()
		h.Logger.Debug("%s %s", r.Method, r.URL.Path)
		mux.ServeHTTP(w, r)
	})
}

func (h *Hem) packageHandler(kind compiler.Kind) http.HandlerFunc {
	contentType := "text/css; charset=utf-8"
	if kind == compiler.KindJS {
		contentType = "application/javascript; charset=utf-8"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		a, err := h.packageAsset(r.Context(), kind)
		switch {
		case herrors.Is(err, herrors.ErrNoEntry):
			http.NotFound(w, r)
			return
		case err != nil:
			h.Logger.Error("%v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("ETag", a.etag)
		w.Header().Set("Cache-Control", "no-cache")
		if r.Header.Get("If-None-Match") == a.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(a.body) //nolint:errcheck
	}
}

func (h *Hem) packageAsset(ctx context.Context, kind compiler.Kind) (asset, error) {
	key := kind.String()
	if a, ok := h.cache.get(key); ok {
		return a, nil
	}
	gen := h.cache.generation()

	var body []byte
	var err error
	if kind == compiler.KindCSS {
		body, err = h.CompileCSS(ctx)
	} else {
		body, err = h.CompileJS(ctx)
	}
	if err != nil {
		return asset{}, err
	}

	a := newAsset(body)
	h.cache.put(key, a, gen)
	return a, nil
}
