package jvm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/jvm-bridge/engine"
	"github.com/wippyai/jvm-bridge/errors"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
backend: jvmtest
version: "1.8"
attach: normal
exceptions: true
options: ["-Xmx64m", "-Xrs"]
properties:
  java.class.path: /opt/app.jar
  app.mode: test
`))
	require.NoError(t, err)

	assert.Equal(t, "jvmtest", cfg.Backend)
	assert.Equal(t, AttachNormal, cfg.Attach)
	assert.True(t, cfg.Exceptions)

	v, err := cfg.JNIVersion()
	require.NoError(t, err)
	assert.Equal(t, engine.V1_8, v)

	assert.Equal(t, []string{
		"-Xmx64m",
		"-Xrs",
		"-Dapp.mode=test",
		"-Djava.class.path=/opt/app.jar",
	}, cfg.StartupOptions())
}

func TestParseConfig_Defaults(t *testing.T) {
	for _, in := range []string{"", "# nothing\n"} {
		cfg, err := ParseConfig([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)

		v, err := cfg.JNIVersion()
		require.NoError(t, err)
		assert.Equal(t, engine.DefaultVersion, v)
		assert.Empty(t, cfg.StartupOptions())
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"version", `version: "9"`, "Version"},
		{"attach", `attach: sometimes`, "Attach"},
		{"option", `options: ["Xmx64m"]`, "Options[0]"},
		{"property key", "properties:\n  \"a=b\": c", "Properties"},
		{"empty property key", "properties:\n  \"\": c", "Properties"},
		{"unknown key", `heap: 64m`, "heap"},
		{"malformed", `options: {`, "decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.in))
			require.ErrorIs(t, err, errors.ErrConfiguration)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jvm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.4\"\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "1.4", cfg.Version)
	assert.Equal(t, AttachDaemon, cfg.Attach)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, errors.ErrConfiguration)
}

func TestSchema(t *testing.T) {
	s := Schema()
	require.NotNil(t, s.Properties)

	for _, name := range []string{"backend", "version", "attach", "options", "properties", "exceptions"} {
		_, ok := s.Properties.Get(name)
		assert.True(t, ok, name)
	}

	version, _ := s.Properties.Get("version")
	assert.Contains(t, version.Enum, "1.8")
}
