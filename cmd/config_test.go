package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vhpidbg.dev/pkg/vhpidbg/internal/domain"
	"vhpidbg.dev/pkg/vhpidbg/internal/wire"
)

// resetFlagBindings rebinds config keys to fresh, unset flags after the test.
func resetFlagBindings(t *testing.T) {
	t.Helper()

	t.Cleanup(func() {
		_ = newServeCmd()
		_ = newInspectCmd()
	})
}

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "vhpidbg", configBaseName)
	assert.Equal(t, "vhpidbg.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "listen.address", listenAddressKey)
	assert.Equal(t, "server.mode", serverModeKey)
	assert.Equal(t, "server.max_sessions", serverMaxSessionsKey)
	assert.Equal(t, "server.accept_once", serverAcceptOnceKey)
	assert.Equal(t, "inspect.dial_timeout", inspectDialTimeoutKey)
	assert.Equal(t, ".vhpidbg.log", defaultLogFilename)
	assert.Equal(t, "VHPIDBG", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, "127.0.0.1:4567", viper.GetString(listenAddressKey))
	assert.Equal(t, "sequential", viper.GetString(serverModeKey))
	assert.Equal(t, 4, viper.GetInt(serverMaxSessionsKey))
	assert.False(t, viper.GetBool(serverAcceptOnceKey))
	assert.Equal(t, 5*time.Second, viper.GetDuration(inspectDialTimeoutKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  slog.Level
	}{
		{"empty uses default", "", slog.LevelWarn},
		{"debug", "debug", slog.LevelDebug},
		{"upper case info", " INFO ", slog.LevelInfo},
		{"warning alias", "warning", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"numeric", "-4", slog.LevelDebug},
		{"unknown uses default", "loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	logPath := filepath.Join(t.TempDir(), "vhpidbg.log")

	configureLogger(logPath, true)
	slog.Debug("Logger configured", "component", "test")

	require.NotNil(t, globalLogger)
	assert.Same(t, globalLogger, slog.Default())

	contents, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Logger configured")
	assert.Contains(t, string(contents), "component=test")
}

func TestServerConfig(t *testing.T) {
	// Arrange
	resetFlagBindings(t)

	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--listen", "127.0.0.1:9000",
		"--mode", "concurrent",
		"--max-sessions", "8",
		"--accept-once",
		"--spill-dir", "/tmp/spill",
	}))

	// Act
	cfg, err := serverConfig()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.Config{
		Address:  "127.0.0.1:9000",
		SpillDir: "/tmp/spill",
		Server: domain.ServerConfig{
			Mode:         domain.ModeConcurrent,
			MaxSessions:  8,
			AcceptOnce:   true,
			MaxFrameSize: wire.DefaultMaxFrameSize,
		},
	}, cfg)
}

func TestServerConfig_InvalidMode(t *testing.T) {
	resetFlagBindings(t)

	cmd := newServeCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--mode", "parallel"}))

	_, err := serverConfig()

	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}
