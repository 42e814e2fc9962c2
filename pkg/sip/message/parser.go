package message

import (
	"bytes"
	"fmt"
)

const (
	// Maximum sizes for security
	defaultMaxMessageSize = 65536 // 64KB
	maxHeaderSize         = 8192  // 8KB
	defaultMaxHeaders     = 100   // Maximum number of headers

	// Content-Length values longer than this many digits are rejected
	maxContentLengthDigits = 9
)

// Parser parses SIP messages into zero-copy Message views
type Parser struct {
	strict         bool // RFC compliance mode
	maxHeaders     int
	maxMessageSize int
}

// ParserOption configures a Parser
type ParserOption func(*Parser)

// WithStrict rejects malformed header lines instead of skipping them
func WithStrict(strict bool) ParserOption {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithMaxHeaders limits the number of header lines
func WithMaxHeaders(count int) ParserOption {
	return func(p *Parser) {
		if count > 0 {
			p.maxHeaders = count
		}
	}
}

// WithMaxMessageSize limits the size of the whole message
func WithMaxMessageSize(size int) ParserOption {
	return func(p *Parser) {
		if size > 0 {
			p.maxMessageSize = size
		}
	}
}

// NewParser creates a new parser
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		maxHeaders:     defaultMaxHeaders,
		maxMessageSize: defaultMaxMessageSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse parses data with a lenient default parser
func Parse(data []byte) (*Message, error) {
	return defaultParser.Parse(data)
}

// Parse builds a Message over data without copying it.
//
// Content-Length is parsed but not checked against the buffer, and a
// message without the blank line ending the header block parses
// successfully with no body. Both conditions are for the caller to judge.
func (p *Parser) Parse(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, ErrInvalidMessage
	}
	if len(data) > p.maxMessageSize {
		return nil, ErrMessageTooLarge
	}

	m := &Message{
		Buf:         data,
		body:        -1,
		contentType: -1,
	}

	lineEnd := 0
	for lineEnd < len(data) && !isCRLF(data[lineEnd]) {
		lineEnd++
	}
	m.startLine = SpanOf(0, lineEnd)
	if err := p.parseStartLine(m); err != nil {
		return nil, err
	}

	i := skipCRLF(data, lineEnd, len(data))
	if i == lineEnd {
		// start line only, no header block
		return m, nil
	}

	for i < len(data) {
		hf, next := ReadHeaderField(data, i, len(data))
		switch hf.Kind {
		case HeaderEOH:
			m.body = skipCRLF(data, next, len(data))
			return m, nil
		case HeaderMalformed:
			if p.strict {
				return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, data[i:next])
			}
			i = next
			continue
		}

		if next-i > maxHeaderSize {
			return nil, ErrHeaderTooLarge
		}
		if len(m.headers) >= p.maxHeaders {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyHeaders, p.maxHeaders)
		}

		switch hf.Kind {
		case HeaderContentType:
			if m.contentType < 0 {
				m.contentType = len(m.headers)
			}
		case HeaderContentLength:
			if !m.hasLength {
				n, err := parseContentLength(hf.Body.Bytes(data))
				if err != nil {
					return nil, err
				}
				m.contentLength = n
				m.hasLength = true
			}
		}
		m.headers = append(m.headers, hf)
		i = next
	}

	// header block ran into the end of the buffer
	return m, nil
}

// parseStartLine validates the request or status line
func (p *Parser) parseStartLine(m *Message) error {
	line := m.startLine.Bytes(m.Buf)
	if len(bytes.TrimSpace(line)) == 0 {
		return ErrInvalidStartLine
	}

	if bytes.HasPrefix(line, []byte("SIP/")) {
		// SIP-VERSION STATUS-CODE REASON-PHRASE
		parts := bytes.SplitN(line, []byte(" "), 3)
		if len(parts) < 2 || len(parts[1]) != 3 {
			return fmt.Errorf("%w: %q", ErrInvalidStartLine, line)
		}
		for _, c := range parts[1] {
			if c < '0' || c > '9' {
				return fmt.Errorf("%w: %q", ErrInvalidStartLine, line)
			}
		}
		return nil
	}

	// METHOD REQUEST-URI SIP-VERSION
	parts := bytes.Fields(line)
	if len(parts) != 3 || !bytes.HasPrefix(parts[2], []byte("SIP/2.0")) {
		return fmt.Errorf("%w: %q", ErrInvalidStartLine, line)
	}
	if p.strict {
		for _, c := range parts[0] {
			if c < 'A' || c > 'Z' {
				return fmt.Errorf("%w: bad method %q", ErrInvalidStartLine, parts[0])
			}
		}
	}

	m.request = true
	start := bytes.Index(line, parts[0])
	m.method = SpanOf(m.startLine.Offs+start, m.startLine.Offs+start+len(parts[0]))
	return nil
}

// parseContentLength parses a decimal Content-Length value
func parseContentLength(b []byte) (int, error) {
	if len(b) == 0 || len(b) > maxContentLengthDigits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, b)
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, b)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
