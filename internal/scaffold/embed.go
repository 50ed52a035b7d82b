package scaffold

import "embed"

//go:embed examples
var scaffoldFS embed.FS
