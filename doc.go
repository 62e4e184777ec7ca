// Package undici is the payload-handling core of a standards-compliant HTTP
// client. It provides the two pieces of the client that carry real parsing
// and state-machine complexity and leaves transport, connection management,
// and cookie handling to the layers around it.
//
// The header package implements the header list algorithms: an ordered,
// multi-valued collection of name/value pairs with case-insensitive name
// matching (header.List), and a guarded view over it (header.Headers) that
// validates field names and values and enforces a mutability policy.
//
// The multipart package implements an incremental decoder for
// multipart/form-data bodies. Bytes are fed to a multipart.Parser in chunks
// of any size and in any fragmentation, and the parser emits boundary, header,
// and body events as sections of the stream are recognized. The full body is
// never required to be in memory at once.
//
// The formdata package ties the two together: a formdata.Decoder subscribes
// to parser events, collects each part's header lines into a header.List, and
// assembles the parts into form entries with a name, an optional filename, a
// content type, and a value.
//
// The mediatype package holds the small content-type parser the other
// packages share.
package undici
