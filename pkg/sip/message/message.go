package message

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/emiago/sipgo/sip"
)

// Message is a parsed, zero-copy view of one SIP message.
//
// All spans point into Buf, which the caller owns and must not modify while
// the Message is in use. A Message is safe for concurrent reads.
type Message struct {
	Buf []byte

	startLine Span
	request   bool
	method    Span
	headers   []HeaderField

	body          int // -1 when the header block is not terminated
	contentLength int
	hasLength     bool
	contentType   int // index into headers, -1 when absent

	sipOnce sync.Once
	sipMsg  sip.Message
	sipErr  error
}

// StartLine returns the request or status line without its CRLF
func (m *Message) StartLine() []byte {
	return m.startLine.Bytes(m.Buf)
}

// IsRequest returns true if this is a request
func (m *Message) IsRequest() bool {
	return m.request
}

// IsResponse returns true if this is a response
func (m *Message) IsResponse() bool {
	return !m.request
}

// Method returns the request method, or nil for responses
func (m *Message) Method() []byte {
	if !m.request {
		return nil
	}
	return m.method.Bytes(m.Buf)
}

// Body returns the offset of the first byte after the blank line that ends
// the header block. ok is false when the message has no such line.
func (m *Message) Body() (Span, bool) {
	if m.body < 0 {
		return Span{}, false
	}
	return SpanOf(m.body, len(m.Buf)), true
}

// ContentLength returns the parsed Content-Length value and whether the
// header was present.
func (m *Message) ContentLength() (int, bool) {
	return m.contentLength, m.hasLength
}

// ContentType returns the first Content-Type header.
func (m *Message) ContentType() (HeaderField, bool) {
	if m.contentType < 0 {
		return HeaderField{}, false
	}
	return m.headers[m.contentType], true
}

// Fields returns every header in message order
func (m *Message) Fields() []HeaderField {
	return m.headers
}

// Header returns the first header with the given name. Long and compact
// forms are equivalent and names are case-insensitive.
func (m *Message) Header(name string) (HeaderField, bool) {
	want := headerKind([]byte(name))
	for _, h := range m.headers {
		if m.headerMatches(h, want, name) {
			return h, true
		}
	}
	return HeaderField{}, false
}

// Headers returns all headers with the given name
func (m *Message) Headers(name string) []HeaderField {
	want := headerKind([]byte(name))
	var out []HeaderField
	for _, h := range m.headers {
		if m.headerMatches(h, want, name) {
			out = append(out, h)
		}
	}
	return out
}

// HeaderValue returns the body of the first header with the given name
func (m *Message) HeaderValue(name string) []byte {
	h, ok := m.Header(name)
	if !ok {
		return nil
	}
	return h.Body.Bytes(m.Buf)
}

func (m *Message) headerMatches(h HeaderField, want HeaderKind, name string) bool {
	if want != HeaderOther {
		return h.Kind == want
	}
	return h.Kind == HeaderOther && bytes.EqualFold(h.Name.Bytes(m.Buf), []byte(name))
}

// SIP decodes the message with sipgo for the header accessors that need
// structured values (tags, Via parameters, Contact URI). The result is
// computed once per Message.
func (m *Message) SIP() (sip.Message, error) {
	m.sipOnce.Do(func() {
		m.sipMsg, m.sipErr = sip.NewParser().ParseSIP(m.Buf)
		if m.sipErr != nil {
			m.sipErr = fmt.Errorf("%w: %v", ErrInvalidMessage, m.sipErr)
		}
	})
	return m.sipMsg, m.sipErr
}
