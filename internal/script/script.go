//go:build !no_lua

// Package script loads device templates and custom clusters declared in Lua.
package script

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	lua "github.com/yuin/gopher-lua"

	"zigbee-ha-profile/internal/devicedb"
	"zigbee-ha-profile/internal/zcl"
)

const defaultTimeout = 5 * time.Second

// Loader evaluates Lua template files in a sandboxed state.
type Loader struct {
	logger  *slog.Logger
	timeout time.Duration
}

// NewLoader creates a loader.
func NewLoader(logger *slog.Logger) *Loader {
	return &Loader{logger: logger.With("component", "script"), timeout: defaultTimeout}
}

// Eval runs code and returns what it declared.
func (l *Loader) Eval(ctx context.Context, name, code string) (*devicedb.File, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	// no file access from template scripts
	for _, g := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(g, lua.LNil)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	L.SetContext(ctx)

	f := &devicedb.File{}
	registerZCLModule(L, f)
	registerHAModule(L, f)

	if err := L.DoString(code); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// LoadDir evaluates every *.lua file in dir, registers the declared
// clusters into registry and adds the templates to lib. A missing or empty
// directory is not an error.
func (l *Loader) LoadDir(ctx context.Context, dir string, lib *devicedb.Library, registry *zcl.Registry) (int, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return 0, fmt.Errorf("glob scripts dir: %w", err)
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return 0, nil
	}

	files := make([]*devicedb.File, 0, len(matches))
	for _, path := range matches {
		code, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", path, err)
		}
		f, err := l.Eval(ctx, filepath.Base(path), string(code))
		if err != nil {
			return 0, err
		}
		for _, c := range f.Clusters {
			registry.Register(c)
		}
		files = append(files, f)
	}

	added := 0
	for i, f := range files {
		for _, d := range f.Templates {
			if err := lib.AddDefinition(d, registry); err != nil {
				return added, fmt.Errorf("%s: %w", filepath.Base(matches[i]), err)
			}
			added++
		}
		l.logger.Info("loaded template script", "path", filepath.Base(matches[i]),
			"clusters", len(f.Clusters), "templates", len(f.Templates))
	}
	return added, nil
}
