package message

import "bytes"

var delimiterHead = []byte("--")

// FindLineDelimiter returns the offset of the first "--boundary" in
// buf[start:end] that begins a line, or -1 if there is none. The delimiter
// must be followed by at least one byte inside end.
func FindLineDelimiter(buf []byte, start, end int, boundary []byte) int {
	if end > len(buf) {
		end = len(buf)
	}
	if start < 0 || len(boundary) == 0 {
		return -1
	}

	for cp := start; cp < end; {
		i := bytes.Index(buf[cp:end], delimiterHead)
		if i < 0 {
			return -1
		}
		at := cp + i
		if at+2+len(boundary) >= end {
			return -1
		}
		if !bytes.Equal(buf[at+2:at+2+len(boundary)], boundary) {
			cp = at + 1
			continue
		}
		if at == 0 || isCRLF(buf[at-1]) {
			return at
		}
		cp = at + 2 + len(boundary)
	}
	return -1
}

// FindNextLineDelimiter returns the delimiter following the one at p, or
// end when p is the last one.
func FindNextLineDelimiter(buf []byte, p, end int, boundary []byte) int {
	if p >= end || end-p < 3 {
		return end
	}
	if next := FindLineDelimiter(buf, p+2, end, boundary); next >= 0 {
		return next
	}
	return end
}

// IsCloseDelimiter reports whether the delimiter at p is the closing
// "--boundary--" line.
func IsCloseDelimiter(buf []byte, p, end int, boundary []byte) bool {
	i := p + 2 + len(boundary)
	return i+2 <= end && i+2 <= len(buf) && buf[i] == '-' && buf[i+1] == '-'
}
