// Package fake provides in-memory implementations of the application adapters
// for use case tests.
package fake
