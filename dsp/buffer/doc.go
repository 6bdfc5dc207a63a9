// Package buffer provides render-quantum buffers and a pool for reusing them
// while rendering automation offline. All rendering functions accept raw
// []float64 slices; Buffer only helps callers manage allocation in loops.
package buffer
