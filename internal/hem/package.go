package hem

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"hem/internal/compiler"
	herrors "hem/internal/errors"
	"hem/util"
)

// moduleRuntime defines a global require() once per page and exposes
// require.define for registering module factories.  Relative names
// resolve against the requiring module.
const moduleRuntime = `(function(global) {
  if (global.require) return;
  var modules = {}, cache = {};
  function expand(root, name) {
    if (name.charAt(0) !== ".") return name;
    var parts = root.split("/"), segs = name.split("/");
    parts.pop();
    for (var i = 0; i < segs.length; i++) {
      if (segs[i] === "..") parts.pop();
      else if (segs[i] !== ".") parts.push(segs[i]);
    }
    return parts.join("/");
  }
  function resolve(name) {
    if (modules[name]) return name;
    if (modules[name + "/index"]) return name + "/index";
    return null;
  }
  function require(name, root) {
    var path = resolve(expand(root || "", name));
    if (path === null) throw new Error("Cannot find module '" + name + "'");
    if (cache[path]) return cache[path].exports;
    var module = cache[path] = {id: path, exports: {}};
    modules[path].call(module.exports, module.exports, function(n) { return require(n, path); }, module);
    return module.exports;
  }
  require.define = function(defs) {
    for (var key in defs) modules[key] = defs[key];
  };
  global.require = function(name) { return require(name); };
  global.require.define = require.define;
})(this);
`

// CSSEntry resolves the manifest's stylesheet entry to a file some
// registered CSS compiler handles.  "css" matches css.less, css.css,
// css/index.less and so on.
func (h *Hem) CSSEntry() (string, error) {
	entry := h.Manifest.Abs(h.Manifest.CSS)
	if fi, err := os.Stat(entry); err == nil && !fi.IsDir() {
		return entry, nil
	}

	var candidates []string
	for _, slot := range h.Compilers.Names() {
		if !h.Compilers.Handles("x."+slot, compiler.KindCSS) {
			continue
		}
		candidates = append(candidates,
			entry+"."+slot,
			filepath.Join(entry, "index."+slot))
	}
	for _, c := range candidates {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", herrors.ErrNoEntry, h.Manifest.CSS)
}

// CompileCSS builds the stylesheet package.
func (h *Hem) CompileCSS(ctx context.Context) ([]byte, error) {
	entry, err := h.CSSEntry()
	if err != nil {
		return nil, err
	}
	return h.compile(ctx, entry)
}

// CompileJS builds the script package: libs verbatim, then the module
// runtime, then every module under the manifest's paths.
func (h *Hem) CompileJS(ctx context.Context) ([]byte, error) {
	buf := util.GetBuf()
	defer util.PutBuf(buf)

	for _, lib := range h.Manifest.Libs {
		out, err := h.compile(ctx, h.Manifest.Abs(lib))
		if err != nil {
			return nil, err
		}
		buf.Write(out)
		buf.WriteString("\n;\n")
	}

	modules, err := h.modules()
	if err != nil {
		return nil, err
	}

	buf.WriteString(moduleRuntime)
	buf.WriteString("require.define({\n")
	for _, mod := range modules {
		out, err := h.compile(ctx, mod.path)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(buf, "%s: function(exports, require, module) {\n", strconv.Quote(mod.name))
		buf.Write(out)
		if !bytes.HasSuffix(out, []byte("\n")) {
			buf.WriteByte('\n')
		}
		buf.WriteString("},\n")
	}
	buf.WriteString("});\n")

	return bytes.Clone(buf.Bytes()), nil
}

type module struct {
	name string // require() name: path relative to its root, no extension
	path string
}

// modules lists every file under the manifest paths that a JS compiler
// handles, sorted by module name.  A later path wins on name clashes.
func (h *Hem) modules() ([]module, error) {
	byName := make(map[string]module)
	for _, p := range h.Manifest.Paths {
		root := h.Manifest.Abs(p)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !h.Compilers.Handles(path, compiler.KindJS) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			name := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
			byName[name] = module{name: name, path: path}
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				h.Logger.Warn("module path %s does not exist, skipping", p)
				continue
			}
			return nil, fmt.Errorf("scanning %s: %w", p, err)
		}
	}

	mods := make([]module, 0, len(byName))
	for _, m := range byName {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].name < mods[j].name })
	return mods, nil
}

func (h *Hem) compile(ctx context.Context, path string) ([]byte, error) {
	out, err := h.Compilers.CompileFile(ctx, path)
	if err != nil {
		h.Metrics.RecordError(err.Error())
		return nil, err
	}
	h.Metrics.FileCompiled(int64(len(out)))
	h.Logger.Debug("compiled %s (%d bytes)", path, len(out))
	return out, nil
}
