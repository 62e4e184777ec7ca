// Package formdata assembles the events emitted by a multipart.Parser into
// form entries. It is the layer that turns a decoded multipart/form-data
// stream into the (name, filename, type, value) records the rest of the
// client consumes.
package formdata

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jodevsa/undici/header"
	"github.com/jodevsa/undici/mediatype"
	"github.com/jodevsa/undici/multipart"
)

// Header field names looked up on each part.
const (
	contentDisposition = "Content-Disposition"
	contentType        = "Content-Type"
)

var (
	// ErrMalformedPartHeader is returned by Write when a part header line
	// has no colon separating its name from its value.
	ErrMalformedPartHeader = errors.New("malformed part header line")
)

// Entry is one decoded form entry: a field name, the filename and content
// type when the entry carries a file, and the entry's body bytes.
type Entry struct {
	Name     string
	Filename string
	Type     string
	Body     []byte
}

// Decoder subscribes to a multipart.Parser and assembles its boundary,
// header, and body events into entries. Feed it the body bytes with Write in
// chunks of any size, then call Close and read the result from Entries.
//
// Each part's header lines are collected into a header.List, so duplicate
// part headers combine the same way they do anywhere else in the client.
type Decoder struct {
	parser *multipart.Parser

	entries []Entry
	fields  *header.List
	body    bytes.Buffer
	inPart  bool
}

// NewDecoder builds a Decoder for a body tagged with the given content type.
// Construction fails exactly when multipart.NewParser does: the content type
// must be multipart/form-data with a boundary parameter.
func NewDecoder(contentTypeValue string, opts ...multipart.Option) (*Decoder, error) {
	d := &Decoder{fields: header.NewList()}
	p, err := multipart.NewParser(contentTypeValue, d, opts...)
	if err != nil {
		return nil, err
	}
	d.parser = p
	return d, nil
}

// Write feeds the next chunk of the body to the decoder.
func (d *Decoder) Write(p []byte) (int, error) {
	return d.parser.Write(p)
}

// Close finalizes the entry in progress, if any. A well-formed stream ends
// with a terminating boundary line, which finalizes the last entry on its
// own; Close also recovers the last entry of a stream whose final boundary
// line was never terminated.
func (d *Decoder) Close() error {
	d.finish()
	return nil
}

// Done reports whether the terminating boundary has been seen.
func (d *Decoder) Done() bool {
	return d.parser.Done()
}

// Entries returns the entries decoded so far, in stream order.
func (d *Decoder) Entries() []Entry {
	return d.entries
}

// OnBoundary implements multipart.Emitter. A boundary closes the part in
// front of it.
func (d *Decoder) OnBoundary(trailer []byte) error {
	d.finish()
	return nil
}

// OnHeader implements multipart.Emitter. The raw line is split on the first
// colon and recorded in the part's header list.
func (d *Decoder) OnHeader(line []byte) error {
	name, value, ok := strings.Cut(string(line), ":")
	if !ok {
		return fmt.Errorf("%w: %q", ErrMalformedPartHeader, line)
	}
	d.fields.Add(name, strings.TrimSpace(value))
	d.inPart = true
	return nil
}

// OnBody implements multipart.Emitter. A part body may arrive across several
// events; they are concatenated here.
func (d *Decoder) OnBody(data []byte) error {
	d.body.Write(data)
	d.inPart = true
	return nil
}

// finish converts the accumulated part state into an Entry. The first
// boundary of the stream has no part in front of it and finishes nothing.
func (d *Decoder) finish() {
	if !d.inPart {
		return
	}

	e := Entry{Body: make([]byte, d.body.Len())}
	copy(e.Body, d.body.Bytes())

	if cd, ok := d.fields.Get(contentDisposition); ok {
		if v, err := mediatype.Parse(cd); err == nil && v.Essence() == "form-data" {
			e.Name = v.Parameter(mediatype.Name)
			e.Filename = v.Parameter(mediatype.Filename)
		}
	}
	if ct, ok := d.fields.Get(contentType); ok {
		e.Type = ct
	}

	d.entries = append(d.entries, e)
	d.fields = header.NewList()
	d.body.Reset()
	d.inPart = false
}
