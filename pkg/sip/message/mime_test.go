package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMimeType(t *testing.T) {
	tests := []struct {
		input   string
		want    MimeTypePair
		wantErr bool
	}{
		{input: "application/sdp", want: MimeTypePair{TypeApplication, SubtypeSDP}},
		{input: "Application / SDP", want: MimeTypePair{TypeApplication, SubtypeSDP}},
		{input: "application/sdp;charset=utf-8", want: MimeTypePair{TypeApplication, SubtypeSDP}},
		{input: "application/sdp \r\n", want: MimeTypePair{TypeApplication, SubtypeSDP}},
		{input: "text/plain", want: MimeTypePair{TypeText, SubtypePlain}},
		{input: "message/sipfrag", want: MimeTypePair{TypeMessage, SubtypeSIPFrag}},
		{input: "application/trickle-ice-sdpfrag", want: MimeTypePair{TypeApplication, SubtypeTrickleICESDPFrag}},
		{input: "multipart/mixed;boundary=x", want: MimeTypePair{TypeMultipart, SubtypeMixed}},
		{input: "image/png", want: MimeTypePair{TypeOther, SubtypeOther}},
		{input: "application", wantErr: true},
		{input: "/sdp", wantErr: true},
		{input: "application/", wantErr: true},
		{input: "application/sdp x", wantErr: true},
		{input: "application/sdp,", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := DecodeMimeType([]byte(tt.input))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidMimeType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMimeTypePair_IsSDP(t *testing.T) {
	assert.True(t, MimeTypePair{TypeApplication, SubtypeSDP}.IsSDP())
	assert.False(t, MimeTypePair{TypeText, SubtypeSDP}.IsSDP())
	assert.False(t, MimeTypePair{TypeApplication, SubtypeTrickleICESDPFrag}.IsSDP())
}

func TestMixedPartDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "token", input: "multipart/mixed;boundary=abc", want: "abc"},
		{name: "blanks around", input: "multipart/mixed ; boundary = abc ", want: "abc"},
		{name: "quoted", input: `multipart/mixed; boundary="a b;c"`, want: "a b;c"},
		{name: "after other param", input: "multipart/mixed; charset=x; BOUNDARY=zz", want: "zz"},
		{name: "after flag param", input: "multipart/mixed;foo;boundary=b", want: "b"},
		{name: "quoted other param", input: `multipart/mixed;x="1;2";boundary=q`, want: "q"},
		{name: "missing", input: "multipart/mixed", wantErr: ErrNoBoundary},
		{name: "empty", input: "multipart/mixed;boundary=", wantErr: ErrNoBoundary},
		{name: "unterminated quote", input: `multipart/mixed;boundary="abc`, wantErr: ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MixedPartDelimiter([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
