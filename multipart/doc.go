// Package multipart implements an incremental decoder for
// multipart/form-data bodies.
//
// A Parser is constructed once per body from the body's content type, which
// must carry the boundary parameter. Bytes are then fed to the parser's Write
// method in chunks of any size and in any fragmentation; the parser buffers
// whatever partial lines or partial boundary material it needs and emits
// boundary, header, and body events to its Emitter as sections of the stream
// are recognized. Events are delivered synchronously, in stream order, during
// the Write call that completes them, and an error returned by the Emitter
// propagates out of that Write call unchanged.
//
// The parser never requires the full body of a part to be in memory: once the
// buffered body material grows past a small threshold, everything that cannot
// still be part of a boundary delimiter is flushed to the Emitter, so a
// single part body may arrive across several body events.
package multipart
