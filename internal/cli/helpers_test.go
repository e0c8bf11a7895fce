package cli

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/moddeck-labs/moddeck/internal/registry"
)

func TestParseDeps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []registry.Dependency
	}{
		{"empty", "", nil},
		{"single required", "SeamlessCoop", []registry.Dependency{{ID: "SeamlessCoop"}}},
		{"single optional", "nrsc.dll?", []registry.Dependency{{ID: "nrsc.dll", Optional: true}}},
		{
			"mixed with spaces",
			"SeamlessCoop, nrsc.dll?",
			[]registry.Dependency{{ID: "SeamlessCoop"}, {ID: "nrsc.dll", Optional: true}},
		},
		{"trailing comma", "A,", []registry.Dependency{{ID: "A"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDeps(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseDeps(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestInsideDir(t *testing.T) {
	base := filepath.Join("home", "user", "Mods")
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"the dir itself", base, true},
		{"direct child", filepath.Join(base, "SeamlessCoop"), true},
		{"nested child", filepath.Join(base, "a", "b.dll"), true},
		{"sibling", filepath.Join("home", "user", "Other"), false},
		{"parent", filepath.Join("home", "user"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := insideDir(tt.path, base); got != tt.expected {
				t.Errorf("insideDir(%q, %q) = %v, want %v", tt.path, base, got, tt.expected)
			}
		})
	}
}
