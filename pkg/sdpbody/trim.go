package sdpbody

// TrimFraming drops one leading "\r" then one leading "\n", and one trailing
// "\n" then one trailing "\r". Each check is independent, so a body framed by
// a bare LF or a bare CR is trimmed too. The result aliases b.
func TrimFraming(b []byte) []byte {
	s, e := trimFraming(b, 0, len(b))
	return b[s:e]
}

func trimFraming(buf []byte, s, e int) (int, int) {
	if s < e && buf[s] == '\r' {
		s++
	}
	if s < e && buf[s] == '\n' {
		s++
	}
	if s < e && buf[e-1] == '\n' {
		e--
	}
	if s < e && buf[e-1] == '\r' {
		e--
	}
	return s, e
}
