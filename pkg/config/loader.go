package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/packdeps/pkg/errors"
)

// EnvPrefix prefixes environment variables that override configuration
const EnvPrefix = "PACKDEPS_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// projectFiles are looked up in the project directory, first match wins
var projectFiles = []string{".packdeps.toml", ".packdeps.yaml", ".packdeps.yml"}

// Sources lists the optional configuration layers on top of the defaults
type Sources struct {
	// UserFile is a TOML file, usually UserConfigPath(). Skipped if missing.
	UserFile string
	// ProjectDir is searched for a project config file. Skipped if empty.
	ProjectDir string
	// SkipEnv disables PACKDEPS_* overrides
	SkipEnv bool
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// UserConfigPath returns $XDG_CONFIG_HOME/packdeps/config.toml
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "packdeps", "config.toml")
}

// DefaultSources returns the layers used by the CLI for a working root
func DefaultSources(projectDir string) Sources {
	return Sources{
		UserFile:   UserConfigPath(),
		ProjectDir: projectDir,
	}
}

// Default returns the embedded defaults only
func Default() (*Config, error) {
	return Load(Sources{SkipEnv: true})
}

// Load merges defaults, the user file, the project file and the environment,
// in that order, and validates the result.
func Load(src Sources) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	if src.UserFile != "" {
		if err := loadFileIfExists(k, src.UserFile); err != nil {
			return nil, err
		}
	}

	// 3. Project config
	if src.ProjectDir != "" {
		for _, name := range projectFiles {
			path := filepath.Join(src.ProjectDir, name)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := loadFileIfExists(k, path); err != nil {
				return nil, err
			}
			break
		}
	}

	// 4. Environment
	if !src.SkipEnv {
		if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat config %s", path)
	}

	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path)
	}
	return nil
}

// envKey maps PACKDEPS_INSTALL__DEPENDENCY_DIR to install.dependency_dir.
// Names under install.env keep their case since they become child
// environment variables.
func envKey(s string) string {
	parts := strings.Split(strings.TrimPrefix(s, EnvPrefix), "__")
	for i := range parts {
		if i == 2 && strings.EqualFold(parts[0], "install") && strings.EqualFold(parts[1], "env") {
			continue
		}
		parts[i] = strings.ToLower(parts[i])
	}
	return strings.Join(parts, ".")
}
