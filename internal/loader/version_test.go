package loader

import (
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"0.6.0", "0.6.0", 0},
		{"0.5.9", "0.6.0", -1},
		{"0.8.1", "0.6.0", 1},
		{"v0.6.0", "0.6.0", 0},
		{"1.0.0", "0.9.9", 1},
	}

	for _, tt := range tests {
		got, err := CompareVersions(tt.a, tt.b)
		if err != nil {
			t.Errorf("CompareVersions(%q, %q) error: %v", tt.a, tt.b, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestCompareVersionsInvalid(t *testing.T) {
	if _, err := CompareVersions("not-a-version", "0.6.0"); err == nil {
		t.Error("expected error for unparseable version")
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		version  string
		expected bool
	}{
		{"0.6.0", true},
		{"0.8.1", true},
		{"v1.2.3", true},
		{"0.5.9", false},
		{"0.1.0", false},
	}

	for _, tt := range tests {
		got, err := IsSupported(tt.version)
		if err != nil {
			t.Errorf("IsSupported(%q) error: %v", tt.version, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.version, got, tt.expected)
		}
	}
}

func TestParseVersionOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{"plain", "0.8.1", "0.8.1"},
		{"with binary name", "me3 0.8.1 (windows)", "0.8.1"},
		{"v prefix", "me3 v0.8.1", "0.8.1"},
		{"prerelease", "me3 1.0.0-rc.1", "1.0.0-rc.1"},
		{"trailing newline", "me3 0.6.0\n", "0.6.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersionOutput(tt.output)
			if err != nil {
				t.Fatalf("ParseVersionOutput(%q) error: %v", tt.output, err)
			}
			if got != tt.expected {
				t.Errorf("ParseVersionOutput(%q) = %q, want %q", tt.output, got, tt.expected)
			}
		})
	}
}

func TestParseVersionOutputNoVersion(t *testing.T) {
	if _, err := ParseVersionOutput("usage: me3 [command]"); err == nil {
		t.Error("expected error for output without a version")
	}
}

func TestLaunchCommand(t *testing.T) {
	cmd := LaunchCommand("/opt/me3p/bin/me3", "/mods/current.me3", "eldenring")
	want := []string{"/opt/me3p/bin/me3", "launch", "--profile", "/mods/current.me3", "--game", "eldenring"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}

	cmd = LaunchCommand("me3", "p.me3", "")
	for _, arg := range cmd.Args {
		if arg == "--game" {
			t.Error("--game passed without a configured game")
		}
	}
}
