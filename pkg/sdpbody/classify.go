package sdpbody

import "bytes"

// ContentType is the classification of a Content-Type header value.
type ContentType uint8

const (
	// ContentInvalid is the zero value so an unset result never reads as SDP
	ContentInvalid ContentType = iota
	ContentPlainOrText
	ContentMultipart
	ContentTrickleICE
)

// String returns the label used in logs and metrics
func (c ContentType) String() string {
	switch c {
	case ContentPlainOrText:
		return "plain"
	case ContentMultipart:
		return "multipart"
	case ContentTrickleICE:
		return "trickle-ice"
	default:
		return "invalid"
	}
}

var (
	multipartMixed = []byte("multipart/mixed")
	trickleICE     = []byte("trickle-ice-sdpfrag")
)

// ClassifyContentType classifies a trimmed Content-Type header value.
//
// "multipart/mixed" is recognised on its first 15 bytes. Otherwise the value
// must spell "application" in any letter case, then "/" with optional blanks
// around it, then either "sdp" (any case) followed by one of "; \t\r\n", a NUL
// byte or the end of the value, or "trickle-ice-sdpfrag" (any case). Anything
// else, including a value that ends early, is ContentInvalid.
func ClassifyContentType(v []byte) ContentType {
	if len(v) >= len(multipartMixed) && v[0]|0x20 == 'm' &&
		bytes.EqualFold(v[:len(multipartMixed)], multipartMixed) {
		return ContentMultipart
	}

	x, ok := read4(v, 0)
	if !ok || !matchToken(x, applTable) {
		return ContentInvalid
	}
	x, ok = read4(v, 4)
	if !ok || !matchToken(x, icatTable) {
		return ContentInvalid
	}
	x, ok = read3(v, 8)
	if !ok || !matchToken(x, ionTable) {
		return ContentInvalid
	}

	i := skipBlanks(v, 11)
	if i >= len(v) || v[i] != '/' {
		return ContentInvalid
	}
	i = skipBlanks(v, i+1)

	if x, ok = read3(v, i); ok && matchToken(x, sdpTable) {
		i += 3
		if i == len(v) {
			return ContentPlainOrText
		}
		switch v[i] {
		case ';', ' ', '\t', '\n', '\r', 0:
			return ContentPlainOrText
		}
		return ContentInvalid
	}

	if i+len(trickleICE) <= len(v) && bytes.EqualFold(v[i:i+len(trickleICE)], trickleICE) {
		return ContentTrickleICE
	}
	return ContentInvalid
}

func skipBlanks(v []byte, i int) int {
	for i < len(v) && (v[i] == ' ' || v[i] == '\t') {
		i++
	}
	return i
}
