// Package modules embeds the calculator's standard library. "use prelude"
// loads prelude.nbt, which in turn loads the unit and math definitions.
package modules

import "embed"

// FS holds every shipped module.
//
//go:embed *.nbt
var FS embed.FS
