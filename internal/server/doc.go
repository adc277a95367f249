// Package server runs the HTTP transport of the development sync server.
//
// It provides startup, signal handling, and graceful shutdown around a
// caller-supplied handler.
package server
