package theme

import "embed"

//go:embed defaults/*.theme
var embeddedThemes embed.FS
