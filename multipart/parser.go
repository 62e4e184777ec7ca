package multipart

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"

	"github.com/jodevsa/undici/mediatype"
)

// Constants related to Parser options.
const (
	// DefaultMaxBufferLength is the default maximum number of bytes the
	// parser will buffer while waiting for a line or boundary to complete.
	DefaultMaxBufferLength = bufio.MaxScanTokenSize

	// bodyFlushThreshold is the buffered body size above which the parser
	// stops waiting for the boundary delimiter and flushes the bytes that
	// cannot be part of it. Keeping the threshold above typical small
	// bodies means they arrive in a single body event; the flush bounds
	// both memory held and the re-scanning done per Write.
	bodyFlushThreshold = 1024
)

// Errors returned by NewParser and Parser.Write.
var (
	// ErrNotFormData is returned by NewParser when the content type parses
	// but is not multipart/form-data.
	ErrNotFormData = errors.New("content type is not multipart/form-data")

	// ErrNoBoundary is returned by NewParser when the boundary parameter is
	// missing from the content type.
	ErrNoBoundary = errors.New("the boundary parameter is missing from the content type")

	// ErrBufferTooLong is returned by Write when the input makes no parsing
	// progress within the configured maximum buffer length. A stream that
	// never terminates a boundary or header line would otherwise buffer
	// without bound.
	ErrBufferTooLong = errors.New("multipart line exceeds maximum buffer length")
)

var crlf = []byte("\r\n")

// Emitter receives the events produced while a body is parsed. All three
// methods are called synchronously from inside Parser.Write, in stream order.
// An error returned from any of them aborts the Write that triggered it and
// is returned to its caller unchanged.
type Emitter interface {
	// OnBoundary is called once per boundary line with the bytes following
	// the boundary marker on that line: empty for an interior boundary,
	// "--" for the terminating one.
	OnBoundary(trailer []byte) error

	// OnHeader is called once per part header line with the raw line bytes,
	// line terminator excluded.
	OnHeader(line []byte) error

	// OnBody is called with a run of part body bytes. A part's body is the
	// concatenation of the OnBody payloads delivered between its last
	// OnHeader call and the next OnBoundary call; small bodies arrive in a
	// single call.
	OnBody(data []byte) error
}

// state identifies the parser's position in the multipart stream.
type state int

const (
	// stateBeginning consumes the first boundary line of the stream.
	stateBeginning state = iota

	// stateHeaders consumes one part header line at a time until the blank
	// line that separates headers from the body.
	stateHeaders

	// stateBody consumes body bytes until a boundary delimiter preceded by
	// CRLF is found.
	stateBody

	// stateBoundary consumes the boundary line that terminated a body,
	// including the CRLF left in front of it by the body split.
	stateBoundary
)

// Parser is the incremental multipart/form-data decoder. It owns all of its
// buffers; nothing external may mutate them. A Parser is single-threaded:
// Write must not be called concurrently.
type Parser struct {
	emitter Emitter

	// marker is "--" plus the boundary parameter; delimiter is the marker
	// with the CRLF that must precede it inside a body. Both are fixed at
	// construction.
	marker    []byte
	delimiter []byte

	maxBufferLen int

	state   state
	toSkip  int          // CRLF bytes still to drop in stateBoundary
	line    bytes.Buffer // partial line for the line-oriented states
	tail    bytes.Buffer // rolling tail while scanning a body
	scanned int          // tail bytes already searched for the delimiter
	done    bool
	err     error // first Write failure; latched, later Writes repeat it
}

// Option is a constructor option that adjusts how a Parser works.
type Option func(*Parser)

// WithMaxBufferLength is an Option that sets the maximum number of bytes the
// parser will buffer without completing a line or boundary before Write fails
// with ErrBufferTooLong. The default is DefaultMaxBufferLength. Values less
// than or equal to 0 disable the limit.
func WithMaxBufferLength(n int) Option {
	return func(p *Parser) { p.maxBufferLen = n }
}

// NewParser builds a Parser for a body tagged with the given content type and
// wires it to the given emitter. The content type must parse, must have the
// essence multipart/form-data, and must carry a non-empty boundary parameter;
// otherwise construction fails and no usable parser is returned.
func NewParser(contentType string, emitter Emitter, opts ...Option) (*Parser, error) {
	mt, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, fmt.Errorf("parsing content type: %w", err)
	}
	if mt.Essence() != "multipart/form-data" {
		return nil, ErrNotFormData
	}
	boundary := mt.Parameter(mediatype.Boundary)
	if boundary == "" {
		return nil, ErrNoBoundary
	}

	p := &Parser{
		emitter:      emitter,
		marker:       []byte("--" + boundary),
		delimiter:    []byte("\r\n--" + boundary),
		maxBufferLen: DefaultMaxBufferLength,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Done reports whether the terminating boundary has been seen. The
// terminating boundary still emits an OnBoundary event and re-enters header
// parsing like an interior one; Done is the signal callers use to stop
// writing.
func (p *Parser) Done() bool {
	return p.done
}

// Write feeds the next chunk of the body to the parser. Chunks may be split
// anywhere, including inside boundary markers and line terminators. Events
// completed by the chunk are delivered to the Emitter before Write returns.
//
// On success Write returns len(chunk). It returns an error when the Emitter
// does, or when buffering would exceed the configured maximum. A failed
// Write leaves the parser unusable: the chunk may have been partially
// processed and its events partially delivered, so there is no byte count a
// caller could resume from, and every later Write fails with the same error.
func (p *Parser) Write(chunk []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}

	// Splitting a chunk at a line terminator or boundary leaves a remainder
	// that must be processed as if it were newly written. An explicit work
	// queue keeps that re-processing off the call stack no matter how many
	// boundaries one chunk contains.
	pending := chunk
	for len(pending) > 0 {
		rest, err := p.step(pending)
		if err != nil {
			p.err = err
			return 0, err
		}
		pending = rest
	}
	return len(chunk), nil
}

// step consumes data according to the current state and returns any remainder
// that still needs processing.
func (p *Parser) step(data []byte) ([]byte, error) {
	switch p.state {
	case stateBeginning, stateHeaders, stateBoundary:
		return p.stepLine(data)
	case stateBody:
		return p.stepBody(data)
	}
	panic("unexpected parser state")
}

// stepLine runs the line-oriented states. It buffers data until a CRLF is
// seen, hands the completed line to parseLine, and returns everything after
// the CRLF for re-processing.
func (p *Parser) stepLine(data []byte) ([]byte, error) {
	// The remainder produced by a body split starts with the CRLF that
	// separated the body from the boundary line. Drop it before scanning.
	if p.toSkip > 0 {
		n := p.toSkip
		if n > len(data) {
			n = len(data)
		}
		data = data[n:]
		p.toSkip -= n
		if len(data) == 0 {
			return nil, nil
		}
	}

	// Search the accumulated line, not just the new data: the CRLF may be
	// split across two writes.
	p.line.Write(data)
	buffered := p.line.Bytes()

	i := bytes.Index(buffered, crlf)
	if i < 0 {
		if p.maxBufferLen > 0 && p.line.Len() > p.maxBufferLen {
			return nil, ErrBufferTooLong
		}
		return nil, nil
	}

	line := copyBytes(buffered[:i])
	rest := copyBytes(buffered[i+len(crlf):])
	p.line.Reset()

	if err := p.parseLine(line); err != nil {
		return nil, err
	}
	return rest, nil
}

// parseLine handles one completed line in a line-oriented state and performs
// the state transition it implies.
func (p *Parser) parseLine(line []byte) error {
	switch p.state {
	case stateBeginning, stateBoundary:
		i := bytes.Index(line, p.marker)
		if i < 0 {
			// The body split only ever leaves a boundary line here, so a
			// missing marker means the state machine itself went wrong.
			panic(fmt.Sprintf("multipart: boundary line %q does not contain marker %q", line, p.marker))
		}
		trailer := line[i+len(p.marker):]
		if bytes.Equal(trailer, []byte("--")) {
			p.done = true
		}
		p.state = stateHeaders
		return p.emitter.OnBoundary(trailer)

	case stateHeaders:
		if len(line) == 0 {
			p.state = stateBody
			p.tail.Reset()
			p.scanned = 0
			return nil
		}
		return p.emitter.OnHeader(line)
	}
	panic("unexpected parser state")
}

// stepBody runs the byte-oriented body state. Body content must not be
// treated as line-structured, so it scans for the CRLF-prefixed boundary
// delimiter instead of line terminators.
func (p *Parser) stepBody(data []byte) ([]byte, error) {
	p.tail.Write(data)
	t := p.tail.Bytes()

	// Resume the delimiter search where the previous Write left off,
	// backing up just far enough to catch a delimiter split across the
	// chunk edge. Without this, a body that never contains the delimiter
	// would force a full re-scan of the tail on every Write.
	from := p.scanned - len(p.delimiter) + 1
	if from < 0 {
		from = 0
	}
	i := bytes.Index(t[from:], p.delimiter)
	if i >= 0 {
		i += from
	}

	if i < 0 {
		p.scanned = len(t)
		if len(t) < bodyFlushThreshold {
			return nil, nil
		}
		// Flush everything that cannot still be the start of the
		// delimiter, keeping only the possible-delimiter suffix. This
		// bounds the tail so a part body is never held in memory whole.
		// A delimiter longer than the threshold leaves nothing safe to
		// flush yet; hold the tail until it outgrows the delimiter.
		safe := len(t) - len(p.delimiter) + 1
		if safe <= 0 {
			return nil, nil
		}
		flush := copyBytes(t[:safe])
		keep := copyBytes(t[safe:])
		p.tail.Reset()
		p.tail.Write(keep)
		p.scanned = p.tail.Len()
		return nil, p.emitter.OnBody(flush)
	}

	// The delimiter's CRLF ends the body. The remainder starts at that
	// CRLF; the boundary state strips it before parsing the line.
	body := copyBytes(t[:i])
	rest := copyBytes(t[i:])
	p.tail.Reset()
	p.scanned = 0
	p.state = stateBoundary
	p.toSkip = len(crlf)

	if err := p.emitter.OnBody(body); err != nil {
		return nil, err
	}
	return rest, nil
}

// copyBytes returns a copy of b that is safe to hand to the emitter or keep
// across buffer resets.
func copyBytes(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
