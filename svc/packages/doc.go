// Package packages serves the catalog: the latest releases, site
// statistics, project details and name prefix search.
//
// Postgres is the primary store. When an OpenSearchIndex is configured
// search goes to it first and falls back to Postgres on failure.
package packages
