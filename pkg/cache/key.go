package cache

import "strings"

// Key kinds used by the page handlers.
const (
	KindPackage = "package"
	KindSearch  = "search"
)

// Key builds the cache key kind + "_" + raw with surrounding whitespace
// trimmed from raw. Reads and writes must both go through Key.
func Key(kind, raw string) string {
	return kind + "_" + strings.TrimSpace(raw)
}
