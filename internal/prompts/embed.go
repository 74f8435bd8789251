// Package prompts provides translation prompt presets with override support.
package prompts

import "embed"

//go:embed presets.yaml
var embeddedFS embed.FS
