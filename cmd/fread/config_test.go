package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fread/envelope"
)

func TestParseDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "fields", cfg.Read.Format)
	assert.Equal(t, 2, cfg.Read.Indent)
	assert.Equal(t, envelope.DefaultTemplates(), cfg.Mail.Templates)
}

func TestParse(t *testing.T) {
	t.Parallel()
	cfg, err := Parse([]byte(`
log:
  level: debug
  file: /tmp/fread.log
  compress: true
read:
  format: table
  border: ascii
  color: true
mail:
  subject: 'Report for {{.Get "Name"}}'
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/fread.log", cfg.Log.File)
	assert.True(t, cfg.Log.Compress)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, "table", cfg.Read.Format)
	assert.Equal(t, "ascii", cfg.Read.Border)
	assert.True(t, cfg.Read.Color)
	assert.Equal(t, `Report for {{.Get "Name"}}`, cfg.Mail.Subject)
	assert.Equal(t, envelope.DefaultFrom, cfg.Mail.From)
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte("read: [unclosed"))
	require.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("FREAD_LOG_LEVEL", "warn")
	t.Setenv("FREAD_INDENT", "4")
	t.Setenv("FREAD_COLOR", "yes")
	t.Setenv("FREAD_MAIL_FROM", "office@school.com")
	t.Setenv("FREAD_TREE_FORMAT", "")

	cfg := DefaultConfig()
	applyEnv(cfg)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4, cfg.Read.Indent)
	assert.True(t, cfg.Read.Color)
	assert.Equal(t, "office@school.com", cfg.Mail.From)
	assert.Equal(t, "text", cfg.Read.TreeFormat)
}

func TestApplyEnvIgnoresBadValues(t *testing.T) {
	t.Setenv("FREAD_INDENT", "wide")
	t.Setenv("FREAD_COLOR", "maybe")

	cfg := DefaultConfig()
	applyEnv(cfg)
	assert.Equal(t, 2, cfg.Read.Indent)
	assert.False(t, cfg.Read.Color)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		want    slog.Level
		wantErr require.ErrorAssertionFunc
	}{
		"":        {want: slog.LevelInfo, wantErr: require.NoError},
		"debug":   {want: slog.LevelDebug, wantErr: require.NoError},
		"INFO":    {want: slog.LevelInfo, wantErr: require.NoError},
		"warning": {want: slog.LevelWarn, wantErr: require.NoError},
		"error":   {want: slog.LevelError, wantErr: require.NoError},
		"trace":   {wantErr: require.Error},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := parseLevel(name)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
