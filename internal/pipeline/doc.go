// Package pipeline pushes a stream of boulder records through a Designer
// on a pool of workers and hands results back in input order.
//
// Anything with a Design method can be plugged in; engine.SubprocessDesigner
// and engine.CachedDesigner are the production ones.
package pipeline
