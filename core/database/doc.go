// Package database manages the hosted relational database connection.
//
// It wraps GORM with a MySQL driver, pooled connections and strict
// connection, read and write timeouts. The connection is treated as optional
// at startup so the service can run against the in-memory store when no
// database is reachable.
package database
