package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sipbody.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
custom_sdp_ip_header: X-Media-IP
strict_parsing: true
max_headers: 40
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "X-Media-IP", cfg.CustomSDPIPHeader)
	assert.True(t, cfg.StrictParsing)
	assert.Equal(t, 40, cfg.MaxHeaders)
	assert.Equal(t, 65536, cfg.MaxMessageSize, "unset keys keep their defaults")
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "max_headers: 40\nmetrics_namespace: file\n")
	t.Setenv("SIPBODY_MAX_HEADERS", "50")
	t.Setenv("SIPBODY_CUSTOM_SDP_IP", "192.0.2.1")
	t.Setenv("SIPBODY_LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxHeaders)
	assert.Equal(t, "file", cfg.MetricsNamespace)
	assert.Equal(t, "192.0.2.1", cfg.CustomSDPIP)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "bad yaml", file: "max_headers: [1, 2\n"},
		{name: "bad env number", env: map[string]string{"SIPBODY_MAX_HEADERS": "many"}},
		{name: "bad env bool", env: map[string]string{"SIPBODY_STRICT_PARSING": "perhaps"}},
		{name: "non-positive size", env: map[string]string{"SIPBODY_MAX_MESSAGE_SIZE": "0"}},
		{name: "unknown log level", env: map[string]string{"SIPBODY_LOG_LEVEL": "verbose"}},
		{
			name: "both overrides",
			env: map[string]string{
				"SIPBODY_CUSTOM_SDP_IP":        "192.0.2.1",
				"SIPBODY_CUSTOM_SDP_IP_HEADER": "X-Media-IP",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeFile(t, tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestConfig_ParserOptions(t *testing.T) {
	cfg := Default()
	cfg.MaxHeaders = 1

	_, err := cfg.NewParser().Parse([]byte("INVITE sip:bob@biloxi.com SIP/2.0\r\nCall-ID: a\r\nCSeq: 1 INVITE\r\n\r\n"))
	assert.Error(t, err)

	cfg.MaxHeaders = 2
	_, err = cfg.NewParser().Parse([]byte("INVITE sip:bob@biloxi.com SIP/2.0\r\nCall-ID: a\r\nCSeq: 1 INVITE\r\n\r\n"))
	assert.NoError(t, err)
	assert.Len(t, cfg.ParserOptions(), 3)
}

func TestConfig_NewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf, "sdpbody")
	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept", slog.String("code", "LENGTH_ZERO"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "sdpbody", entry["component"])
	assert.Equal(t, "LENGTH_ZERO", entry["code"])
}
