// Package metadata is a small key/value store kept in the local SQLite
// database. It persists client state such as the current user id.
package metadata
