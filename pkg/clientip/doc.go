// Package clientip resolves the client address behind reverse proxies and
// makes it available to request-scoped log records.
package clientip
