package irio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validModule = `module "t"
stage raw

func @id : (i32) -> i32 {
'entry(%x : i32):
return %x : i32
}
`

const invalidModule = `module "t"
stage raw

func @id : (i32) -> i32 {
'entry(%x : i32):
return %x : f32
}
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.dlvm")
	if err := os.WriteFile(path, []byte(validModule), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	mod, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if mod.Name != "t" {
		t.Errorf("mod.Name = %q, want %q", mod.Name, "t")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.dlvm")); err == nil {
		t.Fatal("Load() succeeded, want an error for a missing file")
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.dlvm")
	if err := os.WriteFile(path, []byte(invalidModule), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() succeeded, want a parse error")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", name, err)
		}
	}
	write("a.dlvm", validModule)
	write("b.dlvm", invalidModule)
	write("ignored.txt", "not a module")

	mods, err := LoadDir(dir)
	if len(mods) != 1 {
		t.Fatalf("len(mods) = %d, want 1", len(mods))
	}
	if err == nil {
		t.Fatal("LoadDir() err = nil, want an aggregated error for b.dlvm")
	}
	if !strings.Contains(err.Error(), "b.dlvm") {
		t.Errorf("err = %v, want it to mention b.dlvm", err)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("LoadDir() succeeded, want an error for a missing directory")
	}
}

func TestDump(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.dlvm")
	if err := os.WriteFile(path, []byte(validModule), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	mod, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	out := Dump(mod)
	if !strings.Contains(out, "id") {
		t.Errorf("Dump() = %q, want it to mention the function name", out)
	}
}
