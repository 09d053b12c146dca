// Package audiosdk provides the shared request/response types for the
// audio delivery API plus a small Go client for other services and tools
// that talk to it.
package audiosdk
