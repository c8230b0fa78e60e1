// Package otel provides an OpenTelemetry observer plugin for the token
// counter. It emits counter events (add, reject, consume, cancel) with low
// overhead.
package otel
