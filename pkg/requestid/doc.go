// Package requestid tags every request with a correlation id that is echoed
// in the X-Request-ID response header and attached to log records through
// LoggerExtractor. Client supplied ids are reused only when they are at most
// 128 characters of [a-zA-Z0-9_-].
package requestid
