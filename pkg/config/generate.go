package config

import (
	"bytes"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/packdeps/pkg/errors"
)

const renderHeader = "# Effective packdeps configuration\n"

// Render encodes cfg as TOML, suitable for a .packdeps.toml file
func Render(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(renderHeader)

	enc := gotoml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "failed to encode configuration")
	}
	return buf.Bytes(), nil
}

// DefaultContent returns the embedded defaults file verbatim
func DefaultContent() string {
	return string(defaultConfig)
}
