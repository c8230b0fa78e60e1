// Package worker provides background producer and consumer loops over a
// tokens.Counter. Workers own their goroutine: Start launches it, Stop
// requests a cooperative halt and joins it, and both are safe to call more
// than once.
package worker
