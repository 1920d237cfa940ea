package main

import (
	"path/filepath"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"playouts", []string{"--size", "5", "--playouts", "4", "--workers", "2", "--seed", "1"}, 0},
		{"bad flag", []string{"--no-such-flag"}, 2},
		{"bad size", []string{"--size", "1"}, 2},
		{"missing position", []string{"--position", missing}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
