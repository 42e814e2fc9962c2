package message

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// RequestBuilder helps build raw SIP requests
type RequestBuilder struct {
	method      string
	uri         string
	headers     []headerLine
	body        []byte
	maxForwards int
	// when set, Content-Length is written with this value instead of len(body)
	contentLength *int
}

type headerLine struct {
	name  string
	value string
}

// NewRequest creates a new request builder
func NewRequest(method, uri string) *RequestBuilder {
	return &RequestBuilder{
		method:      strings.ToUpper(method),
		uri:         uri,
		maxForwards: 70, // RFC 3261 default
	}
}

// Via adds a Via header
func (b *RequestBuilder) Via(transport, host string, port int, branch string) *RequestBuilder {
	via := fmt.Sprintf("SIP/2.0/%s %s:%d", strings.ToUpper(transport), host, port)
	if branch != "" {
		via += ";branch=" + branch
	}
	return b.Header("Via", via)
}

// From sets the From header
func (b *RequestBuilder) From(uri, tag string) *RequestBuilder {
	return b.set("From", nameAddr(uri, tag))
}

// To sets the To header
func (b *RequestBuilder) To(uri, tag string) *RequestBuilder {
	return b.set("To", nameAddr(uri, tag))
}

// CallID sets the Call-ID header
func (b *RequestBuilder) CallID(callID string) *RequestBuilder {
	return b.set("Call-ID", callID)
}

// CSeq sets the CSeq header
func (b *RequestBuilder) CSeq(seq uint32, method string) *RequestBuilder {
	return b.set("CSeq", fmt.Sprintf("%d %s", seq, strings.ToUpper(method)))
}

// Contact sets the Contact header
func (b *RequestBuilder) Contact(uri string) *RequestBuilder {
	return b.set("Contact", "<"+uri+">")
}

// MaxForwards sets the Max-Forwards value
func (b *RequestBuilder) MaxForwards(value int) *RequestBuilder {
	b.maxForwards = value
	return b
}

// Header adds a custom header
func (b *RequestBuilder) Header(name, value string) *RequestBuilder {
	b.headers = append(b.headers, headerLine{name, value})
	return b
}

// Body sets the message body and its Content-Type
func (b *RequestBuilder) Body(contentType string, body []byte) *RequestBuilder {
	b.body = body
	if contentType != "" {
		b.set("Content-Type", contentType)
	}
	return b
}

// Multipart sets a multipart/mixed body
func (b *RequestBuilder) Multipart(mp *MultipartBuilder) *RequestBuilder {
	return b.Body(mp.ContentType(), mp.Bytes())
}

// ContentLength overrides the Content-Length value written by Bytes
func (b *RequestBuilder) ContentLength(n int) *RequestBuilder {
	b.contentLength = &n
	return b
}

func (b *RequestBuilder) set(name, value string) *RequestBuilder {
	for i := range b.headers {
		if strings.EqualFold(b.headers[i].name, name) {
			b.headers[i].value = value
			return b
		}
	}
	return b.Header(name, value)
}

// Bytes serializes the request
func (b *RequestBuilder) Bytes() []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s %s SIP/2.0\r\n", b.method, b.uri)
	for _, h := range b.headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.name, h.value)
	}
	fmt.Fprintf(&buf, "Max-Forwards: %d\r\n", b.maxForwards)

	length := len(b.body)
	if b.contentLength != nil {
		length = *b.contentLength
	}
	buf.WriteString("Content-Length: " + strconv.Itoa(length) + "\r\n")
	buf.WriteString("\r\n")
	buf.Write(b.body)

	return buf.Bytes()
}

// Build serializes and parses the request
func (b *RequestBuilder) Build() (*Message, error) {
	return Parse(b.Bytes())
}

// MultipartBuilder composes a multipart/mixed body
type MultipartBuilder struct {
	boundary string
	parts    []multipartPart
}

type multipartPart struct {
	headers []headerLine
	body    []byte
}

// NewMultipart creates a multipart body builder. An empty boundary is
// replaced with a random one.
func NewMultipart(boundary string) *MultipartBuilder {
	if boundary == "" {
		boundary = "sipbody-" + uuid.NewString()
	}
	return &MultipartBuilder{boundary: boundary}
}

// Boundary returns the boundary token
func (mb *MultipartBuilder) Boundary() string {
	return mb.boundary
}

// Part appends a part with a Content-Type header
func (mb *MultipartBuilder) Part(contentType string, body []byte) *MultipartBuilder {
	return mb.PartWithHeaders(body, "Content-Type", contentType)
}

// PartWithHeaders appends a part with arbitrary headers given as name/value pairs
func (mb *MultipartBuilder) PartWithHeaders(body []byte, kv ...string) *MultipartBuilder {
	p := multipartPart{body: body}
	for i := 0; i+1 < len(kv); i += 2 {
		p.headers = append(p.headers, headerLine{kv[i], kv[i+1]})
	}
	mb.parts = append(mb.parts, p)
	return mb
}

// ContentType returns the Content-Type header value for the body
func (mb *MultipartBuilder) ContentType() string {
	return "multipart/mixed;boundary=" + mb.boundary
}

// Bytes serializes the body, closing delimiter included
func (mb *MultipartBuilder) Bytes() []byte {
	var buf bytes.Buffer
	for _, p := range mb.parts {
		buf.WriteString("--" + mb.boundary + "\r\n")
		for _, h := range p.headers {
			fmt.Fprintf(&buf, "%s: %s\r\n", h.name, h.value)
		}
		buf.WriteString("\r\n")
		buf.Write(p.body)
		buf.WriteString("\r\n")
	}
	buf.WriteString("--" + mb.boundary + "--\r\n")
	return buf.Bytes()
}

func nameAddr(uri, tag string) string {
	v := "<" + uri + ">"
	if tag != "" {
		v += ";tag=" + tag
	}
	return v
}
