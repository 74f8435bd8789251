package prompts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Preset is one reusable translation prompt
type Preset struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Prompt string `yaml:"prompt" json:"prompt"`
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// Loader loads prompt presets, preferring an override file over the
// embedded defaults.
type Loader struct {
	overridePath string

	mu    sync.Mutex
	cache []Preset
}

// NewLoader creates a loader. overridePath may be empty, in which case
// only the embedded presets are served.
func NewLoader(overridePath string) *Loader {
	return &Loader{overridePath: overridePath}
}

// DefaultLoader looks for overrides in the user config directory
func DefaultLoader() *Loader {
	home, _ := os.UserHomeDir()
	return NewLoader(filepath.Join(home, ".config", "textproc", "prompts.yaml"))
}

// Presets returns all presets, loading them on first use
func (l *Loader) Presets() ([]Preset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cache != nil {
		return l.cache, nil
	}

	data, err := l.loadContent()
	if err != nil {
		return nil, err
	}

	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing prompt presets: %w", err)
	}

	l.cache = file.Presets
	return l.cache, nil
}

// Get returns the preset with the given ID
func (l *Loader) Get(id string) (Preset, error) {
	presets, err := l.Presets()
	if err != nil {
		return Preset{}, err
	}
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown prompt preset: %s", id)
}

func (l *Loader) loadContent() ([]byte, error) {
	if l.overridePath != "" {
		if data, err := os.ReadFile(l.overridePath); err == nil {
			return data, nil
		}
	}
	return fs.ReadFile(embeddedFS, "presets.yaml")
}
