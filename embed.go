// Package tably embeds the default preset definitions shipped with the
// binary.
package tably

import "embed"

//go:embed presets/*.yaml
var EmbeddedPresets embed.FS
