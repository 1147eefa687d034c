package packdeps

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packdeps/internal/version"
	"github.com/arthur-debert/packdeps/pkg/config"
	"github.com/arthur-debert/packdeps/pkg/filesystem"
	"github.com/arthur-debert/packdeps/pkg/hookstub"
	"github.com/arthur-debert/packdeps/pkg/locator"
	"github.com/arthur-debert/packdeps/pkg/logging"
	"github.com/arthur-debert/packdeps/pkg/mirror"
	"github.com/arthur-debert/packdeps/pkg/paths"
	"github.com/arthur-debert/packdeps/pkg/preparer"
	"github.com/arthur-debert/packdeps/pkg/runner"
)

// session is the state shared by a command invocation once the
// configuration is loaded
type session struct {
	cfg  *config.Config
	locs paths.Locations
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Executable, &session{})
}

func newRootCmd(executable paths.Executable, s *session) *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "packdeps",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadSession(executable)
			if err != nil {
				return err
			}
			*s = loaded

			logging.SetupLoggerTo(cmd.ErrOrStderr(), verbosity, s.cfg.Log.Tag)
			log.Debug().Str("command", cmd.Name()).Str("root", s.locs.Root).Msg("Command started")
			if s.locs.UsedFallback {
				log.Warn().Msg(MsgFallbackWarning)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(cmd, *s)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	rootCmd.AddCommand(newMirrorCmd(s))
	rootCmd.AddCommand(newGenConfigCmd(s))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// tag is the configured log tag, or the default when loading never got
// that far
func (s *session) tag() string {
	if s.cfg != nil && s.cfg.Log.Tag != "" {
		return s.cfg.Log.Tag
	}
	return logging.DefaultTag
}

// loadSession resolves the package root and loads the configuration layered
// on top of it. A configured root replaces the derived one.
func loadSession(executable paths.Executable) (session, error) {
	locs, err := paths.Resolve(executable, "")
	if err != nil {
		return session{}, fmt.Errorf(MsgErrResolveRoot, err)
	}

	cfg, err := config.Load(config.DefaultSources(locs.Root))
	if err != nil {
		return session{}, fmt.Errorf(MsgErrLoadConfig, err)
	}

	if cfg.Root != "" {
		locs, err = paths.Resolve(executable, cfg.Root)
		if err != nil {
			return session{}, fmt.Errorf(MsgErrResolveRoot, err)
		}
	}
	return session{cfg: cfg, locs: locs}, nil
}

func runPrepare(cmd *cobra.Command, s session) error {
	cfg := s.cfg
	logger := log.Logger

	loc := locator.New(locator.Options{
		Name:        cfg.PackageManager.Name,
		HomeEnv:     cfg.PackageManager.HomeEnv,
		WindowsHome: cfg.PackageManager.WindowsHome,
		Env:         locator.EnvFromOS(cfg.PackageManager.ExecPathEnv, cfg.PackageManager.HomeEnv),
		Logger:      logger,
	})

	run := runner.New(runner.Options{
		Dir:    s.locs.ScriptDir,
		Node:   cfg.PackageManager.Node,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logger,
	})

	return preparer.Prepare(cmd.Context(), preparer.Options{
		Root:           s.locs.Root,
		FS:             filesystem.NewOS(),
		Locator:        loc,
		Runner:         run,
		PackageManager: cfg.PackageManager.Name,
		Hook: hookstub.Options{
			Tool:   cfg.Hook.Tool,
			Prefix: cfg.Hook.TempPrefix,
		},
		DependencyDir: cfg.Install.DependencyDir,
		InstallArgs:   cfg.Install.Args,
		InstallEnv:    cfg.Install.Env,
		Logger:        logger,
	})
}

func newMirrorCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "mirror",
		Short: MsgMirrorShort,
		Long:  MsgMirrorLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.cfg
			workspace := s.locs.WorkspaceRoot(cfg.Mirror.WorkspaceRoot)

			packages := make([]mirror.Package, 0, len(cfg.Mirror.Packages))
			for _, p := range cfg.Mirror.Packages {
				source := paths.ExpandHome(p.Source)
				if !filepath.IsAbs(source) {
					source = filepath.Join(workspace, source)
				}
				packages = append(packages, mirror.Package{Name: p.Name, Source: source})
			}

			return mirror.Mirror(mirror.Options{
				FS:            filesystem.NewOS(),
				DependencyDir: s.locs.DependencyDir(cfg.Install.DependencyDir),
				Packages:      packages,
				MetadataFiles: cfg.Mirror.MetadataFiles,
				Logger:        log.Logger,
			})
		},
	}
}

func newGenConfigCmd(s *session) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return err
			}
			out, err := config.Render(s.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		// version works even when the configuration is broken
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}
