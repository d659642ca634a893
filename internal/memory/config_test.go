package memory

import (
	"math"
	"runtime/debug"
	"testing"
)

func TestGoMemLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int64
		ratio float64
		want  int64
	}{
		{"Default ratio", 1000, 0.85, 850},
		{"Half", 2 << 30, 0.5, 1 << 30},
		{"Full", 4096, 1, 4096},
		{"Zero ratio treated as full", 4096, 0, 4096},
		{"Ratio above one treated as full", 4096, 1.5, 4096},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GoMemLimit(tt.limit, tt.ratio); got != tt.want {
				t.Errorf("GoMemLimit(%d, %v) = %d, want %d", tt.limit, tt.ratio, got, tt.want)
			}
		})
	}
}

func TestSubsystemAppliesAndRestoresLimit(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	original := debug.SetMemoryLimit(-1)
	t.Cleanup(func() { debug.SetMemoryLimit(original) })

	s := NewSubsystem(Settings{ContainerLimit: 8 << 30, Ratio: 0.5})
	if s.Name() != "runtime" {
		t.Errorf("Name() = %q", s.Name())
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.Applied() {
		t.Fatal("expected limit to be applied")
	}
	if got := debug.SetMemoryLimit(-1); got != 4<<30 {
		t.Errorf("memory limit = %d, want %d", got, int64(4<<30))
	}

	s.Stop()
	if got := debug.SetMemoryLimit(-1); got != original {
		t.Errorf("memory limit after Stop = %d, want %d", got, original)
	}
	if s.Applied() {
		t.Error("Applied() should be false after Stop")
	}
}

func TestSubsystemWithoutContainerLimit(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "")
	before := debug.SetMemoryLimit(-1)

	s := NewSubsystem(Settings{})
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Applied() {
		t.Error("no limit should be applied without MEMORY_LIMIT")
	}
	if got := debug.SetMemoryLimit(-1); got != before {
		t.Errorf("memory limit changed to %d", got)
	}
	s.Stop()
}

func TestSubsystemRespectsGOMEMLIMIT(t *testing.T) {
	t.Setenv("GOMEMLIMIT", "1GiB")

	s := NewSubsystem(Settings{ContainerLimit: 8 << 30, Ratio: 0.5})
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.Applied() {
		t.Error("explicit GOMEMLIMIT must take precedence")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 30, "1.0 GiB"},
		{math.MaxInt64, "8.0 EiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
