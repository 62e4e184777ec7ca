// Package header implements the header list algorithms used by the client's
// request and response payloads. The low-level interface is List, an ordered,
// multi-valued collection of name/value pairs that matches names
// case-insensitively but stores them exactly as given. The high-level
// interface is Headers, a view over a List that validates field names and
// values against the field grammar and enforces a mutability Guard.
//
// Most users want Headers. List is exposed for layers that assemble headers
// from already-validated input, such as the multipart event consumer in the
// formdata package.
package header
