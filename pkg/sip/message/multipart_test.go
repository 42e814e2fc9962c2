package message

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindLineDelimiter(t *testing.T) {
	body := "--b\r\nX\r\n--b\r\nY\r\n--b--\r\n"
	buf := []byte(body)
	boundary := []byte("b")

	first := FindLineDelimiter(buf, 0, len(buf), boundary)
	assert.Equal(t, 0, first)

	second := FindNextLineDelimiter(buf, first, len(buf), boundary)
	assert.Equal(t, strings.Index(body, "--b\r\nY"), second)

	closing := FindNextLineDelimiter(buf, second, len(buf), boundary)
	assert.Equal(t, strings.Index(body, "--b--"), closing)
	assert.True(t, IsCloseDelimiter(buf, closing, len(buf), boundary))
	assert.False(t, IsCloseDelimiter(buf, second, len(buf), boundary))

	assert.Equal(t, len(buf), FindNextLineDelimiter(buf, closing, len(buf), boundary))
}

func TestFindLineDelimiter_Edges(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		boundary string
		want     int
	}{
		{"not at line start", "x--b\r\n", "b", -1},
		{"skips inline occurrence", "x--b\r\n--b\r\n", "b", 6},
		{"LF line start", "preamble\n--b\n", "b", 9},
		{"other boundary", "--a\r\n", "b", -1},
		{"no byte after delimiter", "--b", "b", -1},
		{"dash run", "---b\r\n", "b", -1},
		{"empty boundary", "--\r\n", "", -1},
		{"empty body", "", "b", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := []byte(tt.body)
			assert.Equal(t, tt.want, FindLineDelimiter(buf, 0, len(buf), []byte(tt.boundary)))
		})
	}
}

func TestFindLineDelimiter_EndPastBuffer(t *testing.T) {
	buf := []byte("--b\r\n")
	assert.Equal(t, 0, FindLineDelimiter(buf, 0, 1000, []byte("b")))
	assert.Equal(t, -1, FindLineDelimiter(buf, -1, len(buf), []byte("b")))
}

func TestMultipartBuilder(t *testing.T) {
	mp := NewMultipart("xyz").
		Part("text/plain", []byte("hello")).
		Part("application/sdp", []byte("v=0"))

	assert.Equal(t, "multipart/mixed;boundary=xyz", mp.ContentType())
	assert.Equal(t,
		"--xyz\r\nContent-Type: text/plain\r\n\r\nhello\r\n"+
			"--xyz\r\nContent-Type: application/sdp\r\n\r\nv=0\r\n"+
			"--xyz--\r\n",
		string(mp.Bytes()))

	generated := NewMultipart("")
	assert.True(t, strings.HasPrefix(generated.Boundary(), "sipbody-"))
	assert.NotEqual(t, generated.Boundary(), NewMultipart("").Boundary())
}

func TestRequestBuilder(t *testing.T) {
	mp := NewMultipart("xyz").Part("application/sdp", []byte("v=0"))
	msg, err := NewRequest("invite", "sip:bob@biloxi.com").
		CallID("abc").
		Multipart(mp).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "INVITE", string(msg.Method()))
	assert.Equal(t, "multipart/mixed;boundary=xyz", string(msg.HeaderValue("Content-Type")))

	n, ok := msg.ContentLength()
	require.True(t, ok)
	assert.Equal(t, len(mp.Bytes()), n)

	body, ok := msg.Body()
	require.True(t, ok)
	assert.Equal(t, mp.Bytes(), body.Bytes(msg.Buf))
}

func TestRequestBuilder_ContentLengthOverride(t *testing.T) {
	msg, err := NewRequest("INVITE", "sip:bob@biloxi.com").
		Body("application/sdp", []byte("v=0\r\n")).
		ContentLength(100).
		Build()
	require.NoError(t, err)

	n, ok := msg.ContentLength()
	require.True(t, ok)
	assert.Equal(t, 100, n)

	// repeated setters replace rather than append
	raw := NewRequest("INVITE", "sip:bob@biloxi.com").CallID("a").CallID("b").Bytes()
	assert.Equal(t, 1, strings.Count(string(raw), "Call-ID:"))
}
