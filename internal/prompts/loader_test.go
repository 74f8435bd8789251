package prompts

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPresets_Embedded(t *testing.T) {
	l := NewLoader("")
	presets, err := l.Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	if len(presets) == 0 {
		t.Fatal("no embedded presets")
	}

	for _, p := range presets {
		if p.ID == "" || p.Name == "" || p.Prompt == "" {
			t.Errorf("incomplete preset: %+v", p)
		}
	}
}

func TestGet(t *testing.T) {
	l := NewLoader("")

	p, err := l.Get("en-to-zh")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Name != "English to Chinese" {
		t.Errorf("Name = %q", p.Name)
	}

	if _, err := l.Get("no-such-preset"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresets_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	content := `presets:
  - id: custom
    name: Custom
    prompt: Translate it my way.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path)
	presets, err := l.Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	if len(presets) != 1 || presets[0].ID != "custom" {
		t.Errorf("presets = %+v, want the override file only", presets)
	}
}

func TestPresets_MissingOverrideFallsBack(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))
	presets, err := l.Presets()
	if err != nil {
		t.Fatalf("Presets: %v", err)
	}
	if len(presets) == 0 {
		t.Error("embedded fallback not used")
	}
}
