// Package sdpbody locates the SDP payload of a SIP message.
//
// Extract validates the body framing (body present, Content-Length present,
// non-zero and inside the buffer), classifies the Content-Type and, for
// multipart/mixed bodies, returns the first application/sdp part. Results are
// spans into the caller's buffer; nothing is copied.
//
// An Extractor holds no per-message state and is safe for concurrent use.
package sdpbody

import (
	"log/slog"

	"github.com/arzzra/sipbody/pkg/sip/message"
)

// ExtractedBody is the located SDP payload.
type ExtractedBody struct {
	// Span locates Body inside the message buffer
	Span message.Span
	// Body aliases the message buffer
	Body []byte
	Type ContentType
}

// Extractor extracts SDP bodies and reads SDP fields from messages
type Extractor struct {
	logger  *slog.Logger
	metrics *Metrics
	sdpIP   VarSource
}

// NewExtractor creates an extractor
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExtractor = NewExtractor()

// Extract runs the default extractor
func Extract(m *message.Message) (ExtractedBody, error) {
	return defaultExtractor.Extract(m)
}

// Classify runs the default extractor's Content-Type classification
func Classify(m *message.Message) (ContentType, error) {
	return defaultExtractor.ClassifyContentType(m)
}

func (e *Extractor) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Extract returns the SDP body of m.
//
// Plain and trickle-ICE bodies are returned as declared by Content-Length.
// For multipart/mixed the first application/sdp part is returned with one
// leading and one trailing line break removed.
func (e *Extractor) Extract(m *message.Message) (ExtractedBody, error) {
	body, err := e.extract(m)
	e.metrics.observeExtraction(err)
	if err != nil {
		e.log().Debug("SDP body extraction failed",
			slog.String("code", string(CodeOf(err))),
			slog.Any("error", err))
		return ExtractedBody{}, err
	}

	e.log().Debug("SDP body extracted",
		slog.String("type", body.Type.String()),
		slog.Int("offset", body.Span.Offs),
		slog.Int("length", body.Span.Len))
	return body, nil
}

func (e *Extractor) extract(m *message.Message) (ExtractedBody, error) {
	if m == nil {
		return ExtractedBody{}, newError(CodeBodyMissing, "failed to get the message body")
	}

	bodySpan, ok := m.Body()
	if !ok {
		return ExtractedBody{}, newError(CodeBodyMissing, "failed to get the message body")
	}

	length, ok := m.ContentLength()
	if !ok {
		return ExtractedBody{}, newError(CodeLengthMissing, "failed to get the content length in message")
	}
	if length == 0 {
		return ExtractedBody{}, newError(CodeLengthZero, "message body has length zero")
	}

	if excess := bodySpan.Offs + length - len(m.Buf); excess > 0 {
		return ExtractedBody{}, newError(CodeLengthExceedsBuffer, "content-length exceeds packet-length by %d", excess).
			WithField("content_length", length).
			WithField("excess", excess)
	}
	span := message.Span{Offs: bodySpan.Offs, Len: length}

	ct, err := e.ClassifyContentType(m)
	if err != nil {
		return ExtractedBody{}, err
	}

	if ct == ContentMultipart {
		hf, _ := m.ContentType()
		boundary, err := message.MixedPartDelimiter(hf.Body.Bytes(m.Buf))
		if err != nil {
			return ExtractedBody{}, newError(CodeMultipartNoBoundary, "multipart boundary not found").WithCause(err)
		}
		span, err = scanMultipart(m.Buf, span.Offs, span.End(), boundary)
		if err != nil {
			return ExtractedBody{}, err
		}
	}

	return ExtractedBody{
		Span: span,
		Body: span.Bytes(m.Buf),
		Type: ct,
	}, nil
}

// ClassifyContentType classifies the first Content-Type header of m.
// A message without one is treated as application/sdp.
func (e *Extractor) ClassifyContentType(m *message.Message) (ContentType, error) {
	if m == nil {
		return ContentInvalid, newError(CodeContentTypeInvalid, "no message")
	}

	hf, ok := m.ContentType()
	if !ok {
		e.log().Warn("Content-Type header missing, assuming application/sdp")
		e.metrics.observeClassification(ContentPlainOrText)
		return ContentPlainOrText, nil
	}

	value := hf.Body.Bytes(m.Buf)
	ct := ClassifyContentType(value)
	e.metrics.observeClassification(ct)
	if ct == ContentInvalid {
		return ct, newError(CodeContentTypeInvalid, "content type mismatching").
			WithField("content_type", string(value))
	}
	return ct, nil
}
