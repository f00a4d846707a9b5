package migrations

import "embed"

// FS holds the schema. 000001 creates the zone, campaign and creative
// tables; 000002 adds payments and disputes on top of them.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the server expects.
const Version = 2
