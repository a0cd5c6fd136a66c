// Package schemas встраивает JSON Schema для входящих форм.
package schemas

import "embed"

//go:embed forms
var SchemasFS embed.FS
