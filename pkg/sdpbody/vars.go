package sdpbody

import (
	"strings"

	"github.com/arzzra/sipbody/pkg/sip/message"
)

// VarSource supplies a per-message value that overrides what would otherwise
// be read from the message, such as the media IP address.
type VarSource interface {
	Lookup(m *message.Message) (string, bool)
}

// StaticValue is a VarSource that yields the same value for every message
type StaticValue string

// Lookup implements VarSource
func (v StaticValue) Lookup(*message.Message) (string, bool) {
	return string(v), v != ""
}

// HeaderValue is a VarSource that yields the trimmed body of the named
// header, e.g. HeaderValue("X-Media-IP").
type HeaderValue string

// Lookup implements VarSource
func (h HeaderValue) Lookup(m *message.Message) (string, bool) {
	if m == nil || h == "" {
		return "", false
	}
	v := strings.TrimSpace(string(m.HeaderValue(string(h))))
	return v, v != ""
}
