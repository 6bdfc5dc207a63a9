// Package bindings exposes automation parameters to JavaScript running in a
// goja runtime, using the AudioParam interface names and DOMException error
// reporting a browser would use.
package bindings
