// Package httpserver runs the HTTP listener with graceful shutdown and
// provides the liveness and readiness handlers.
package httpserver
