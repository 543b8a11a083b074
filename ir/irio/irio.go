// Package irio provides filesystem-facing helpers around package
// parser: loading one or many modules from disk, and dumping a parsed
// module's structure for debugging.
package irio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/rxwei/dlvm-core/ir"
	"github.com/rxwei/dlvm-core/parser"
	"go.uber.org/multierr"
)

// Load reads and parses a single module file.
func Load(path string) (*ir.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "irio: reading %s", path)
	}
	p, err := parser.NewFromSource(src)
	if err != nil {
		return nil, errors.Wrapf(err, "irio: lexing %s", path)
	}
	mod, err := p.ParseModule()
	if err != nil {
		return nil, errors.Wrapf(err, "irio: parsing %s", path)
	}
	return mod, nil
}

// LoadDir parses every ".dlvm" file directly under dir, returning the
// modules that parsed successfully alongside every accumulated error
// (spec's batch-loading surface — not present in a single-file parse).
func LoadDir(dir string) ([]*ir.Module, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "irio: reading directory %s", dir)
	}
	var (
		mods []*ir.Module
		errs error
	)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".dlvm") {
			continue
		}
		mod, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		mods = append(mods, mod)
	}
	return mods, errs
}

// Dump renders a module's structure for debugging, using the same
// reflective dumper the teacher's own tooling reaches for when a
// String() method would be too lossy to debug against.
func Dump(mod *ir.Module) string {
	return spew.Sdump(mod)
}
