package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

// buildTree creates files under root; entries ending in "/" become
// directories, the rest empty files.
func buildTree(t *testing.T, root string, entries []string) {
	t.Helper()
	for _, e := range entries {
		full := filepath.Join(root, filepath.FromSlash(e))
		if e[len(e)-1] == '/' {
			if err := os.MkdirAll(full, 0755); err != nil {
				t.Fatalf("mkdir %s: %v", e, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatalf("mkdir for %s: %v", e, err)
		}
		if err := os.WriteFile(full, nil, 0644); err != nil {
			t.Fatalf("write %s: %v", e, err)
		}
	}
}

func candidateByKey(rep *Report, key string) registry.Entry {
	for _, c := range rep.Candidates {
		if c.Key() == key {
			return c
		}
	}
	return nil
}

func TestScanManagedClassification(t *testing.T) {
	managed := t.TempDir()
	buildTree(t, managed, []string{
		"AssetOverhaul/msg/",
		"AssetOverhaul/param/",
		"RegBinMod/regulation.bin",
		"MarkerMod/settings.ini",
		"LibDrop/hook.dll",
		"LibDrop/libzstd.dll",
		"Combined/regulation.bin",
		"Combined/bin/combined.dll",
		"PlainDir/readme.txt",
		"loose.dll",
		"oo2core_9_win64.dll",
		"notes.txt",
		".hidden/msg/",
		"_disabled/regulation.bin",
	})

	rep, err := Scan(managed, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	packages := []string{"AssetOverhaul", "RegBinMod", "MarkerMod", "Combined", "PlainDir"}
	for _, id := range packages {
		e := candidateByKey(rep, id)
		if e == nil {
			t.Errorf("package %q not discovered", id)
			continue
		}
		if e.Kind() != registry.KindPackage {
			t.Errorf("%q classified as %q, want package", id, e.Kind())
		}
	}

	natives := []string{"hook.dll", "combined.dll", "loose.dll"}
	for _, key := range natives {
		e := candidateByKey(rep, key)
		if e == nil {
			t.Errorf("native %q not discovered", key)
			continue
		}
		if e.Kind() != registry.KindNative {
			t.Errorf("%q classified as %q, want native", key, e.Kind())
		}
	}

	// Library-only directory must not also become a package.
	if e := candidateByKey(rep, "LibDrop"); e != nil {
		t.Error("library-only directory registered as a package")
	}

	for _, key := range []string{"libzstd.dll", "oo2core_9_win64.dll", "notes.txt", ".hidden", "_disabled"} {
		if e := candidateByKey(rep, key); e != nil {
			t.Errorf("%q discovered, want skipped", key)
		}
	}
}

func TestScanNativePathsRelativeToManagedDir(t *testing.T) {
	managed := t.TempDir()
	buildTree(t, managed, []string{
		"LibDrop/hook.dll",
		"LibDrop/bin/nested.dll",
	})

	rep, err := Scan(managed, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	tests := []struct {
		key  string
		path string
	}{
		{"hook.dll", "LibDrop/hook.dll"},
		{"nested.dll", "LibDrop/bin/nested.dll"},
	}
	for _, tt := range tests {
		e := candidateByKey(rep, tt.key)
		if e == nil {
			t.Fatalf("native %q not discovered", tt.key)
		}
		if got := e.(*registry.Native).Path; got != tt.path {
			t.Errorf("Path = %q, want %q", got, tt.path)
		}
	}
}

func TestScanMissingManagedDir(t *testing.T) {
	rep, err := Scan(filepath.Join(t.TempDir(), "nope"), nil)
	if err != nil {
		t.Fatalf("Scan on missing dir: %v", err)
	}
	if len(rep.Candidates) != 0 {
		t.Errorf("candidates = %d, want none", len(rep.Candidates))
	}
}

func TestScanExternal(t *testing.T) {
	base := t.TempDir()
	buildTree(t, base, []string{
		"ExtMod/regulation.bin",
		"ext.dll",
		"readme.txt",
	})

	externals := []string{
		filepath.Join(base, "ExtMod"),
		filepath.Join(base, "ext.dll"),
		filepath.Join(base, "readme.txt"),
		filepath.Join(base, "vanished.dll"),
	}
	rep, err := Scan(filepath.Join(base, "no-managed"), externals)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	dir := candidateByKey(rep, "ExtMod")
	if dir == nil || dir.Kind() != registry.KindPackage || !dir.IsExternal() {
		t.Errorf("external directory candidate = %#v, want external package", dir)
	}

	lib := candidateByKey(rep, "ext.dll")
	if lib == nil || lib.Kind() != registry.KindNative || !lib.IsExternal() {
		t.Errorf("external library candidate = %#v, want external native", lib)
	}
	if !lib.IsValid() {
		t.Error("existing external library flagged invalid")
	}

	txt := candidateByKey(rep, "readme.txt")
	if txt == nil || txt.IsValid() {
		t.Error("non-library external file not flagged invalid")
	}

	gone := candidateByKey(rep, "vanished.dll")
	if gone == nil || gone.IsValid() {
		t.Error("missing external path not flagged invalid")
	}

	if len(rep.Warnings) != 2 {
		t.Errorf("warnings = %d, want 2 (bad extension + missing path)", len(rep.Warnings))
	}
}

func TestScanDuplicateIdentity(t *testing.T) {
	managed := t.TempDir()
	buildTree(t, managed, []string{
		"clash.dll",
		"LibDrop/clash.dll",
	})

	rep, err := Scan(managed, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	count := 0
	for _, c := range rep.Candidates {
		if c.Key() == "clash.dll" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate identity produced %d candidates, want 1", count)
	}
	if len(rep.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1", len(rep.Warnings))
	}
}

func TestScanIsIdempotent(t *testing.T) {
	managed := t.TempDir()
	buildTree(t, managed, []string{
		"AssetOverhaul/msg/",
		"LibDrop/hook.dll",
		"loose.dll",
	})

	first, err := Scan(managed, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	second, err := Scan(managed, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("candidate count changed between scans: %d vs %d", len(first.Candidates), len(second.Candidates))
	}
	for i := range first.Candidates {
		if first.Candidates[i].Key() != second.Candidates[i].Key() {
			t.Errorf("candidate %d key changed: %q vs %q", i, first.Candidates[i].Key(), second.Candidates[i].Key())
		}
	}
}
