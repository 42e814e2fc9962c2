package message

// Span is a view into a caller-owned message buffer.
// It never owns memory: Bytes re-slices the buffer it was produced from.
type Span struct {
	Offs int
	Len  int
}

// SpanOf returns the span covering buf[start:end].
func SpanOf(start, end int) Span {
	return Span{Offs: start, Len: end - start}
}

// End returns the offset just past the span.
func (s Span) End() int {
	return s.Offs + s.Len
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.Len == 0
}

// Valid reports whether the span fits inside buf.
func (s Span) Valid(buf []byte) bool {
	return s.Offs >= 0 && s.Len >= 0 && s.Offs+s.Len <= len(buf)
}

// Bytes returns the bytes of buf covered by the span, or nil if the span
// does not fit inside buf.
func (s Span) Bytes(buf []byte) []byte {
	if !s.Valid(buf) {
		return nil
	}
	return buf[s.Offs:s.End():s.End()]
}
