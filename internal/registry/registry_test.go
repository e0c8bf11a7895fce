package registry

import (
	"testing"
)

func TestNativeKey(t *testing.T) {
	tests := []struct {
		ref      string
		expected string
	}{
		{"nrsc.dll", "nrsc.dll"},
		{"NRSC.DLL", "nrsc.dll"},
		{"SomeMod/bin/Hook.dll", "hook.dll"},
		{`SomeMod\bin\Hook.dll`, "hook.dll"},
		{"/abs/path/to/Mod.DLL", "mod.dll"},
	}

	for _, tt := range tests {
		if got := NativeKey(tt.ref); got != tt.expected {
			t.Errorf("NativeKey(%q) = %q, want %q", tt.ref, got, tt.expected)
		}
	}
}

func TestGetByReference(t *testing.T) {
	r := New()
	if err := r.Upsert(&Package{ID: "SeamlessCoop", Enabled: true}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := r.Upsert(&Native{Path: "SomeMod/bin/nrsc.dll", Enabled: true}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	tests := []struct {
		name string
		ref  string
		key  string
	}{
		{"package by id", "SeamlessCoop", "SeamlessCoop"},
		{"native by key", "nrsc.dll", "nrsc.dll"},
		{"native by uppercase base", "NRSC.DLL", "nrsc.dll"},
		{"native by full path", "SomeMod/bin/nrsc.dll", "nrsc.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := r.Get(tt.ref)
			if !ok {
				t.Fatalf("Get(%q) not found", tt.ref)
			}
			if e.Key() != tt.key {
				t.Errorf("Get(%q).Key() = %q, want %q", tt.ref, e.Key(), tt.key)
			}
		})
	}

	if _, ok := r.Get("nonexistent"); ok {
		t.Error("Get(nonexistent) found an entry")
	}
}

func TestUpsertKeepsPosition(t *testing.T) {
	r := New()
	r.Upsert(&Package{ID: "A", Enabled: true})
	r.Upsert(&Package{ID: "B", Enabled: true})
	r.Upsert(&Package{ID: "A", Enabled: true, Comment: "replaced"})

	entries := r.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len = %d, want 2", len(entries))
	}
	if entries[0].Key() != "A" || entries[1].Key() != "B" {
		t.Errorf("order = [%s, %s], want [A, B]", entries[0].Key(), entries[1].Key())
	}
	if entries[0].(*Package).Comment != "replaced" {
		t.Error("upsert did not replace metadata")
	}
}

func TestRemoveReindexes(t *testing.T) {
	r := New()
	r.Upsert(&Package{ID: "A", Enabled: true})
	r.Upsert(&Package{ID: "B", Enabled: true})
	r.Upsert(&Package{ID: "C", Enabled: true})

	removed, err := r.Remove("B")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("Remove(B) = false, want true")
	}

	if _, ok := r.Get("B"); ok {
		t.Error("B still resolvable after removal")
	}
	e, ok := r.Get("C")
	if !ok || e.Key() != "C" {
		t.Error("C not resolvable after reindex")
	}

	removed, err = r.Remove("B")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed {
		t.Error("second Remove(B) = true, want false")
	}
}

func TestLoadableFiltersDisabledAndInvalid(t *testing.T) {
	r := New()
	r.Upsert(&Package{ID: "on", Enabled: true})
	r.Upsert(&Package{ID: "off", Enabled: false})
	r.Upsert(&Package{ID: "broken", Enabled: true, Invalid: true})

	loadable := r.Loadable()
	if len(loadable) != 1 {
		t.Fatalf("Loadable returned %d entries, want 1", len(loadable))
	}
	if loadable[0].Key() != "on" {
		t.Errorf("Loadable[0] = %q, want %q", loadable[0].Key(), "on")
	}
}

func TestSetPreloadRejectsPackages(t *testing.T) {
	r := New()
	r.Upsert(&Package{ID: "SeamlessCoop", Enabled: true})
	r.Upsert(&Native{Path: "nrsc.dll", Enabled: true})

	if err := r.SetPreload("SeamlessCoop", true); err == nil {
		t.Error("SetPreload on a package succeeded, want error")
	}
	if err := r.SetPreload("nrsc.dll", true); err != nil {
		t.Fatalf("SetPreload on native: %v", err)
	}
	n, _ := r.Get("nrsc.dll")
	if !n.(*Native).Preload {
		t.Error("Preload flag not set")
	}
}

func TestSetLoadLast(t *testing.T) {
	r := New()
	r.Upsert(&Package{ID: "A", Enabled: true})
	r.Upsert(&Package{ID: "B", Enabled: true})
	r.Upsert(&Package{ID: "off", Enabled: false})
	r.Upsert(&Native{Path: "n.dll", Enabled: true})
	r.Upsert(&Package{ID: "last", Enabled: true})

	if err := r.SetLoadLast("last"); err != nil {
		t.Fatalf("SetLoadLast: %v", err)
	}

	e, _ := r.Get("last")
	after, _ := e.Ordering()
	if len(after) != 2 {
		t.Fatalf("load_after has %d refs, want 2 (enabled packages only): %v", len(after), after)
	}
	for _, d := range after {
		if !d.Optional {
			t.Errorf("ref %q is required, want optional", d.ID)
		}
	}

	if !r.IsLoadLast("last") {
		t.Error("IsLoadLast(last) = false after pinning")
	}
	if r.IsLoadLast("A") {
		t.Error("IsLoadLast(A) = true, want false")
	}

	if err := r.SetLoadLast("n.dll"); err == nil {
		t.Error("SetLoadLast on a native succeeded, want error")
	}
}

func TestApplyAddAndRemove(t *testing.T) {
	r := New()
	cs, err := r.Apply([]Entry{
		&Package{ID: "A", Source: "A", Enabled: true},
		&Native{Path: "n.dll", Enabled: true},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Added) != 2 {
		t.Fatalf("Added = %v, want 2 entries", cs.Added)
	}

	// Rescan of the same tree is a no-op.
	cs, err = r.Apply([]Entry{
		&Package{ID: "A", Source: "A", Enabled: true},
		&Native{Path: "n.dll", Enabled: true},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !cs.Empty() {
		t.Errorf("rescan changed registry: added=%v updated=%v removed=%v", cs.Added, cs.Updated, cs.Removed)
	}

	// Dropping a source removes the entry.
	cs, err = r.Apply([]Entry{
		&Package{ID: "A", Source: "A", Enabled: true},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Removed) != 1 || cs.Removed[0] != "n.dll" {
		t.Errorf("Removed = %v, want [n.dll]", cs.Removed)
	}
}

func TestApplyPreservesUserMetadata(t *testing.T) {
	r := New()
	r.Apply([]Entry{&Package{ID: "A", Source: "A", Enabled: true}})

	r.SetEnabled("A", false)
	r.SetComment("A", "keep me")
	r.SetOrdering("A", []Dependency{{ID: "B"}}, nil)

	cs, err := r.Apply([]Entry{&Package{ID: "A", Source: "moved/A", Enabled: true}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Updated) != 1 {
		t.Fatalf("Updated = %v, want [A]", cs.Updated)
	}

	e, _ := r.Get("A")
	p := e.(*Package)
	if p.Source != "moved/A" {
		t.Errorf("Source = %q, want source-owned field updated", p.Source)
	}
	if p.Enabled {
		t.Error("Enabled reset by rescan, want user state preserved")
	}
	if p.Comment != "keep me" {
		t.Errorf("Comment = %q, want preserved", p.Comment)
	}
	if len(p.LoadAfter) != 1 {
		t.Error("ordering hints lost on rescan")
	}
}

func TestApplyKeepsExternals(t *testing.T) {
	r := New()
	r.Apply([]Entry{
		&Package{ID: "managed", Source: "managed", Enabled: true},
		&Native{Path: "/elsewhere/ext.dll", External: true, Enabled: true},
	})

	// A managed-only rescan must not remove the external registration.
	cs, err := r.Apply([]Entry{
		&Package{ID: "managed", Source: "managed", Enabled: true},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Removed) != 0 {
		t.Errorf("Removed = %v, want externals kept", cs.Removed)
	}
	if _, ok := r.Get("ext.dll"); !ok {
		t.Error("external entry gone after managed rescan")
	}
}

func TestApplyKindClash(t *testing.T) {
	r := New()
	r.Apply([]Entry{&Package{ID: "thing.dll", Source: "thing.dll", Enabled: true}})
	r.SetComment("thing.dll", "stale")

	// The directory was replaced by a loose file of the same name.
	cs, err := r.Apply([]Entry{&Native{Path: "thing.dll", Enabled: true}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Updated) != 1 {
		t.Fatalf("Updated = %v, want [thing.dll]", cs.Updated)
	}
	e, _ := r.Get("thing.dll")
	if e.Kind() != KindNative {
		t.Errorf("Kind = %q, want candidate taken wholesale on clash", e.Kind())
	}
}

func TestApplyReportsInvalidated(t *testing.T) {
	r := New()
	r.Apply([]Entry{&Native{Path: "/ext/gone.dll", External: true, Enabled: true}})

	cs, err := r.Apply([]Entry{&Native{
		Path: "/ext/gone.dll", External: true, Enabled: true,
		Invalid: true, InvalidReason: "path does not exist",
	}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(cs.Invalidated) != 1 || cs.Invalidated[0] != "gone.dll" {
		t.Errorf("Invalidated = %v, want [gone.dll]", cs.Invalidated)
	}
}
