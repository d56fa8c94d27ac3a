package utils

import (
	"strings"
	"testing"
)

func TestNodeNameGenerator(t *testing.T) {
	first := NewNodeNameGenerator(42)
	names := make([]string, 16)
	for i := range names {
		names[i] = first.Name("Bone")
		if !strings.HasPrefix(names[i], "Bone_") {
			t.Errorf("Name(\"Bone\")=%q", names[i])
		}
	}

	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("name %q generated twice", n)
		}
		seen[n] = true
	}

	second := NewNodeNameGenerator(42)
	for i := range names {
		if n := second.Name("Bone"); n != names[i] {
			t.Errorf("same seed gave %q; expected %q", n, names[i])
		}
	}
}
