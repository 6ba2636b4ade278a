// Package migrations embeds the route cache schema so the server and dbtool
// can apply it with goose without a migrations directory on disk.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
