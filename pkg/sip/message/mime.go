package message

import (
	"bytes"
	"fmt"
)

// MediaType is the top-level part of a MIME type
type MediaType uint8

const (
	TypeOther MediaType = iota
	TypeText
	TypeMessage
	TypeApplication
	TypeMultipart
)

// MediaSubtype is the subtype part of a MIME type
type MediaSubtype uint8

const (
	SubtypeOther MediaSubtype = iota
	SubtypePlain
	SubtypeSDP
	SubtypeSIPFrag
	SubtypeTrickleICESDPFrag
	SubtypeMixed
	SubtypeRelated
	SubtypeAlternative
)

// MimeTypePair is a decoded "type/subtype" header body.
type MimeTypePair struct {
	Type    MediaType
	Subtype MediaSubtype
}

// IsSDP reports whether the pair is application/sdp.
func (p MimeTypePair) IsSDP() bool {
	return p.Type == TypeApplication && p.Subtype == SubtypeSDP
}

var mediaTypes = []struct {
	name string
	t    MediaType
}{
	{"text", TypeText},
	{"message", TypeMessage},
	{"application", TypeApplication},
	{"multipart", TypeMultipart},
}

var mediaSubtypes = []struct {
	name string
	s    MediaSubtype
}{
	{"plain", SubtypePlain},
	{"sdp", SubtypeSDP},
	{"sipfrag", SubtypeSIPFrag},
	{"trickle-ice-sdpfrag", SubtypeTrickleICESDPFrag},
	{"mixed", SubtypeMixed},
	{"related", SubtypeRelated},
	{"alternative", SubtypeAlternative},
}

// isTokenChar reports whether c may appear in an RFC 2045 token.
func isTokenChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
		return true
	}
	return false
}

func scanToken(b []byte, i int) int {
	for i < len(b) && isTokenChar(b[i]) {
		i++
	}
	return i
}

func skipLWS(b []byte, i int) int {
	for i < len(b) && isLWS(b[i]) {
		i++
	}
	return i
}

// DecodeMimeType decodes a Content-Type header body of the form
// type "/" subtype [ ";" params ]. Linear white space is allowed around
// the slash; parameters are not inspected.
func DecodeMimeType(b []byte) (MimeTypePair, error) {
	var pair MimeTypePair

	i := skipLWS(b, 0)
	typeStart := i
	i = scanToken(b, i)
	if i == typeStart {
		return pair, fmt.Errorf("%w: missing type in %q", ErrInvalidMimeType, b)
	}
	typeName := b[typeStart:i]

	i = skipLWS(b, i)
	if i >= len(b) || b[i] != '/' {
		return pair, fmt.Errorf("%w: missing '/' in %q", ErrInvalidMimeType, b)
	}
	i = skipLWS(b, i+1)

	subStart := i
	i = scanToken(b, i)
	if i == subStart {
		return pair, fmt.Errorf("%w: missing subtype in %q", ErrInvalidMimeType, b)
	}
	subName := b[subStart:i]

	i = skipLWS(b, i)
	if i < len(b) && b[i] != ';' && !isCRLF(b[i]) {
		return pair, fmt.Errorf("%w: unexpected %q after subtype", ErrInvalidMimeType, b[i])
	}

	for _, mt := range mediaTypes {
		if bytes.EqualFold(typeName, []byte(mt.name)) {
			pair.Type = mt.t
			break
		}
	}
	for _, st := range mediaSubtypes {
		if bytes.EqualFold(subName, []byte(st.name)) {
			pair.Subtype = st.s
			break
		}
	}
	return pair, nil
}

// MixedPartDelimiter returns the boundary parameter of a multipart
// Content-Type header body. Quoted and token forms are accepted and the
// parameter name is matched case-insensitively. The result aliases ct.
func MixedPartDelimiter(ct []byte) ([]byte, error) {
	i := bytes.IndexByte(ct, ';')
	for i >= 0 && i < len(ct) {
		i = skipLWS(ct, i+1)
		nameStart := i
		i = scanToken(ct, i)
		name := ct[nameStart:i]
		i = skipLWS(ct, i)

		if i >= len(ct) || ct[i] != '=' {
			// flag parameter or garbage, move to the next ';'
			i = nextParam(ct, i)
			continue
		}
		i = skipLWS(ct, i+1)

		var value []byte
		if i < len(ct) && ct[i] == '"' {
			end := bytes.IndexByte(ct[i+1:], '"')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated quoted value", ErrInvalidHeader)
			}
			value = ct[i+1 : i+1+end]
			i = i + 1 + end + 1
		} else {
			valueStart := i
			for i < len(ct) && ct[i] != ';' && !isLWS(ct[i]) && !isCRLF(ct[i]) {
				i++
			}
			value = ct[valueStart:i]
		}

		if bytes.EqualFold(name, []byte("boundary")) {
			if len(value) == 0 {
				return nil, ErrNoBoundary
			}
			return value, nil
		}
		i = nextParam(ct, i)
	}
	return nil, ErrNoBoundary
}

// nextParam returns the offset of the next ';' outside quotes, or -1.
func nextParam(b []byte, i int) int {
	quoted := false
	for ; i < len(b); i++ {
		switch b[i] {
		case '"':
			quoted = !quoted
		case ';':
			if !quoted {
				return i
			}
		}
	}
	return -1
}
