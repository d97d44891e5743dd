// Package config assembles the application configuration.
//
// Configuration comes from environment variables, optionally overloaded from
// a .env file, with defaults declared as struct tags on each section's
// Config type. Nested keys map to underscored environment names, e.g.
// DATABASE_HOST -> database.host.
package config
