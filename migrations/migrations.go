// Package migrations embeds the goose SQL migrations for the used-content
// ledger schema.
//
// Files are named YYYYMMDDHHMMSS_description.sql and run in timestamp order
// at startup, serialized across instances by an advisory lock (see the
// storage package's Migrate).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
