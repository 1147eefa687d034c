package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default info level", 0, zerolog.InfoLevel},
		{"debug level", 1, zerolog.DebugLevel},
		{"trace level", 2, zerolog.TraceLevel},
		{"high verbosity defaults to trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLevel, LevelForVerbosity(tt.verbosity))
		})
	}
}

func TestNew_TagsEveryLine(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0, "")

	logger.Info().Msg("Installing dependencies...")
	logger.Error().Msg("Command failed: pnpm install")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[prepare-packdeps] Installing dependencies...", lines[0])
	assert.Equal(t, "[prepare-packdeps] ERROR Command failed: pnpm install", lines[1])
}

func TestNew_CustomTag(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0, "prepare-workspace-deps")
	logger.Info().Msg("hello")
	assert.Equal(t, "[prepare-workspace-deps] hello\n", buf.String())
}

func TestNew_VerbosityFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, 0, "")
	quiet.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	verbose := New(&buf, 1, "")
	verbose.Debug().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_FieldsAreAppended(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 0, "")
	logger.Info().Str("path", "/app/node_modules").Msg("Removing")
	assert.Contains(t, buf.String(), "Removing")
	assert.Contains(t, buf.String(), "path=/app/node_modules")
}

func TestSetupLogger_CreatesLogFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tempDir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	SetupLogger(1, "")

	logPath := filepath.Join(tempDir, "packdeps", "packdeps.log")
	_, err := os.Stat(logPath)
	assert.NoError(t, err, "log file should exist at %s", logPath)
	assert.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())
}

func TestGetLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/custom/state")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	assert.Equal(t, filepath.Join("/custom/state", "packdeps", "packdeps.log"), getLogFilePath())
}

func TestLogOperationStart(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, 2, "")

	done := LogOperationStart(logger, "install")
	done()

	out := buf.String()
	assert.Contains(t, out, "Operation started")
	assert.Contains(t, out, "Operation completed")
	assert.Contains(t, out, "operation=install")
}
