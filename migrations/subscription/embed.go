// Package subscription embeds the goose migrations for the subscription context.
package subscription

import "embed"

// MigrationsFS holds the SQL migrations, applied in version order.
//
//go:embed *.sql
var MigrationsFS embed.FS
