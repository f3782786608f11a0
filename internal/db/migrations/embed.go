// Package migrations embeds the goose SQL migrations so the server binary
// can migrate without the source tree on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Dir is the goose directory inside FS
const Dir = "."
