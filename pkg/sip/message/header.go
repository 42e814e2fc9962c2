package message

import "bytes"

// HeaderKind identifies the header fields the body extractor cares about.
// HeaderEOH and HeaderMalformed are terminal states of ReadHeaderField.
type HeaderKind uint8

const (
	HeaderOther HeaderKind = iota
	HeaderContentType
	HeaderContentLength
	HeaderCallID
	HeaderFrom
	HeaderTo
	HeaderVia
	HeaderContact
	HeaderEOH
	HeaderMalformed
)

// String returns a readable name for the kind
func (k HeaderKind) String() string {
	switch k {
	case HeaderContentType:
		return "Content-Type"
	case HeaderContentLength:
		return "Content-Length"
	case HeaderCallID:
		return "Call-ID"
	case HeaderFrom:
		return "From"
	case HeaderTo:
		return "To"
	case HeaderVia:
		return "Via"
	case HeaderContact:
		return "Contact"
	case HeaderEOH:
		return "end-of-headers"
	case HeaderMalformed:
		return "malformed"
	default:
		return "other"
	}
}

// HeaderField is one header line located inside a buffer.
type HeaderField struct {
	Kind HeaderKind
	Name Span
	Body Span
}

// headerKind maps a header name (long or compact form) to its kind.
// Matching is case-insensitive and does not allocate.
func headerKind(name []byte) HeaderKind {
	if len(name) == 1 {
		switch name[0] | 0x20 {
		case 'c':
			return HeaderContentType
		case 'l':
			return HeaderContentLength
		case 'i':
			return HeaderCallID
		case 'f':
			return HeaderFrom
		case 't':
			return HeaderTo
		case 'v':
			return HeaderVia
		case 'm':
			return HeaderContact
		}
		return HeaderOther
	}

	switch {
	case bytes.EqualFold(name, []byte("Content-Type")):
		return HeaderContentType
	case bytes.EqualFold(name, []byte("Content-Length")):
		return HeaderContentLength
	case bytes.EqualFold(name, []byte("Call-ID")):
		return HeaderCallID
	case bytes.EqualFold(name, []byte("From")):
		return HeaderFrom
	case bytes.EqualFold(name, []byte("To")):
		return HeaderTo
	case bytes.EqualFold(name, []byte("Via")):
		return HeaderVia
	case bytes.EqualFold(name, []byte("Contact")):
		return HeaderContact
	}
	return HeaderOther
}

func isLWS(c byte) bool {
	return c == ' ' || c == '\t'
}

func isCRLF(c byte) bool {
	return c == '\r' || c == '\n'
}

// skipCRLF skips one CRLF, CR or LF at buf[i] and returns the offset after it.
func skipCRLF(buf []byte, i, end int) int {
	if i < end && buf[i] == '\r' {
		i++
	}
	if i < end && buf[i] == '\n' {
		i++
	}
	return i
}

// ReadHeaderField reads one header line from buf[start:end].
//
// An empty line (CRLF, LF or CR) yields HeaderEOH and returns start
// unchanged, so the caller can see where the blank line begins. A line
// without a colon, with an empty name, or cut short by end yields
// HeaderMalformed. Folded continuation lines belong to the body, except
// a fold before the first value byte, which is skipped. On success
// next points at the first byte of the following line.
func ReadHeaderField(buf []byte, start, end int) (hf HeaderField, next int) {
	if end > len(buf) {
		end = len(buf)
	}
	if start >= end {
		return HeaderField{Kind: HeaderEOH}, start
	}
	if isCRLF(buf[start]) {
		return HeaderField{Kind: HeaderEOH}, start
	}

	i := start
	for i < end && buf[i] != ':' && !isLWS(buf[i]) && !isCRLF(buf[i]) {
		i++
	}
	nameEnd := i
	for i < end && isLWS(buf[i]) {
		i++
	}
	if nameEnd == start || i >= end || buf[i] != ':' {
		return HeaderField{Kind: HeaderMalformed}, EatLine(buf, start, end)
	}
	i++ // ':'

	i = skipLeadingLWS(buf, i, end)
	bodyStart := i
	bodyEnd := i

	for i < end {
		c := buf[i]
		if !isCRLF(c) {
			if !isLWS(c) {
				bodyEnd = i + 1
			}
			i++
			continue
		}
		n := skipCRLF(buf, i, end)
		if n < end && isLWS(buf[n]) {
			// folded line
			i = n
			continue
		}
		i = n
		break
	}

	name := buf[start:nameEnd]
	return HeaderField{
		Kind: headerKind(name),
		Name: SpanOf(start, nameEnd),
		Body: SpanOf(bodyStart, bodyEnd),
	}, i
}

// skipLeadingLWS skips blanks and folds (a line break followed by a blank)
// that precede a header value.
func skipLeadingLWS(buf []byte, i, end int) int {
	for i < end {
		if isLWS(buf[i]) {
			i++
			continue
		}
		if !isCRLF(buf[i]) {
			break
		}
		n := skipCRLF(buf, i, end)
		if n >= end || !isLWS(buf[n]) {
			break
		}
		i = n
	}
	return i
}

// EatLine returns the offset of the first byte after the line that contains
// buf[start], or end if the line is not terminated.
func EatLine(buf []byte, start, end int) int {
	if end > len(buf) {
		end = len(buf)
	}
	i := start
	for i < end && !isCRLF(buf[i]) {
		i++
	}
	return skipCRLF(buf, i, end)
}
