// Package tokens provides a bounded, thread-safe token counter shared by
// producer and consumer goroutines. Consumption can be non-blocking,
// blocking, or blocking-with-cancellation; all forms preserve the
// 0 <= count <= capacity invariant under concurrent access.
package tokens
