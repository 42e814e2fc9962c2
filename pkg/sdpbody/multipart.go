package sdpbody

import "github.com/arzzra/sipbody/pkg/sip/message"

// scanMultipart returns the body of the first application/sdp part found in
// buf[start:end], trimmed of its framing line breaks. Scanning stops at the
// closing "--boundary--" delimiter; the epilogue is never inspected.
func scanMultipart(buf []byte, start, end int, boundary []byte) (message.Span, error) {
	p := message.FindLineDelimiter(buf, start, end, boundary)
	if p < 0 {
		return message.Span{}, newError(CodeMultipartEmpty, "empty multipart content")
	}

	for p < end {
		if message.IsCloseDelimiter(buf, p, end, boundary) {
			break
		}
		next := message.FindNextLineDelimiter(buf, p, end, boundary)

		rest := p + len(boundary) + 2
		if rest > next {
			return message.Span{}, newError(CodeMultipartMalformedPart, "unparsable part at offset %d", p).
				WithField("offset", p)
		}
		rest = message.EatLine(buf, rest, next)

		isSDP := false
		for rest < next {
			hf, n := message.ReadHeaderField(buf, rest, next)
			if hf.Kind == message.HeaderEOH {
				break
			}
			if hf.Kind == message.HeaderMalformed {
				return message.Span{}, newError(CodeMultipartMalformedPart, "malformed part header at offset %d", rest).
					WithField("offset", rest)
			}
			rest = n

			if hf.Kind != message.HeaderContentType {
				continue
			}
			pair, err := message.DecodeMimeType(hf.Body.Bytes(buf))
			if err != nil {
				return message.Span{}, newError(CodeMultipartDecodeFailure, "cannot decode part Content-Type").
					WithCause(err).
					WithField("offset", hf.Body.Offs)
			}
			if pair.IsSDP() {
				isSDP = true
			}
		}

		if isSDP {
			s, e := trimFraming(buf, rest, next)
			return message.SpanOf(s, e), nil
		}
		p = next
	}

	return message.Span{}, newError(CodeMultipartNoSDPPart, "no application/sdp part in multipart body")
}
