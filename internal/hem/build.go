package hem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	herrors "hem/internal/errors"
)

// build compiles both packages into the public directory.
func (h *Hem) build(ctx context.Context) error {
	start := time.Now()
	if err := h.Build(ctx); err != nil {
		return err
	}
	h.Logger.Info("built %s in %s", h.Manifest.Public, time.Since(start).Round(time.Millisecond))
	return nil
}

// Build writes the CSS and JS packages.  A missing stylesheet entry
// only skips the CSS package.
func (h *Hem) Build(ctx context.Context) error {
	public := h.Manifest.PublicDir()
	if err := os.MkdirAll(public, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", public, err)
	}

	css, err := h.CompileCSS(ctx)
	switch {
	case herrors.Is(err, herrors.ErrNoEntry):
		h.Logger.Warn("%v; skipping %s", err, h.Manifest.CSSPath)
	case err != nil:
		return err
	default:
		if err := h.writeAsset(h.Manifest.CSSPath, css); err != nil {
			return err
		}
	}

	js, err := h.CompileJS(ctx)
	if err != nil {
		return err
	}
	if err := h.writeAsset(h.Manifest.JSPath, js); err != nil {
		return err
	}

	h.Metrics.Rebuilt()
	return nil
}

func (h *Hem) writeAsset(urlPath string, data []byte) error {
	dst := filepath.Join(h.Manifest.PublicDir(), filepath.FromSlash(strings.TrimPrefix(urlPath, "/")))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	h.Logger.Verbose("wrote %s (%d bytes)", dst, len(data))
	return nil
}
