package rule

import "embed"

// builtinSwitchesFS embeds the built-in switch definitions.
//
//go:embed switches/*.yml
var builtinSwitchesFS embed.FS
