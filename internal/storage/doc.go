// Package storage implements the local key-value persistence the API client reads
// its credentials from.
//
// Two backends are provided: a YAML file that survives between processes and is
// re-read on every lookup, and a bounded in-memory store for ephemeral values.
package storage
