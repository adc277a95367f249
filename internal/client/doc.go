// Package client implements the client application runtime.
//
// It wires the local cache, the server adapter, the connectivity observer,
// and the background sync engine into a single process lifecycle.
package client
