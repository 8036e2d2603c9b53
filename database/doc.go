// Package database opens connections to postgres, mysql and sqlite through
// Bun, and provides the supporting pieces used around them: configuration,
// query hooks, table bootstrap for registered models, SQL seed scripts and
// logging.
package database
