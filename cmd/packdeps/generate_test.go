package packdeps

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/packdeps/pkg/errors"
)

func TestWriteManPage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteManPage(&buf))

	page := buf.String()
	assert.Contains(t, page, `.TH "PACKDEPS" "1"`)
	assert.Contains(t, page, "packdeps manual")
	assert.Contains(t, page, "mirror(1)")
	assert.Contains(t, page, "genconfig(1)")
}

func TestWriteCompletion(t *testing.T) {
	for _, shell := range Shells {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteCompletion(&buf, shell))
			assert.Contains(t, buf.String(), "packdeps")
		})
	}
}

func TestWriteCompletion_UnknownShell(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCompletion(&buf, "tcsh")

	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), `unknown shell "tcsh"`)
	assert.Empty(t, buf.String())
}
