// Package migrations embeds the SQL schema applied by the server at
// startup when migrations are enabled.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
