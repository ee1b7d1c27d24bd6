package terminal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/novamkr/web-vitals/pkg/runtime/terminal/commands"
	"github.com/novamkr/web-vitals/pkg/services/config"
)

// CLI represents the command-line interface
type CLI struct {
	env     *commands.Env
	rootCmd *cobra.Command

	cfgPath     string
	profilePath string
	profile     string
	debug       bool
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	Args   []string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		env: &commands.Env{Output: opts.Output},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	if opts.Args != nil {
		cli.rootCmd.SetArgs(opts.Args)
	}
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "webvitals",
		Short:             "Static HTML page auditor",
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	defaultProfilePath, _ := config.DefaultProfilePath()

	cmd.PersistentFlags().StringVarP(&cli.cfgPath, "config", "c", "", "Path to a webvitals config file (yaml, toml or json)")
	cmd.PersistentFlags().StringVar(&cli.profilePath, "profile-file", defaultProfilePath, "Path to the .webvitalscfg profile file")
	cmd.PersistentFlags().StringVarP(&cli.profile, "profile", "p", "", "Profile section to apply from the profile file")
	cmd.PersistentFlags().BoolVar(&cli.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(commands.NewAuditCmd(cli.env))
	cmd.AddCommand(commands.NewReviewCmd(cli.env))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	if cli.debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
	cmd.SetContext(logger.WithContext(cmd.Context()))

	cfg, err := config.Load(cli.cfgPath)
	if err != nil {
		return err
	}

	if cli.profilePath != "" {
		if err := cli.applyProfile(cmd, cfg); err != nil {
			return err
		}
	}

	cli.env.Config = cfg
	return nil
}

func (cli *CLI) applyProfile(cmd *cobra.Command, cfg *config.Config) error {
	if _, err := os.Stat(cli.profilePath); errors.Is(err, fs.ErrNotExist) {
		if cli.profile != "" {
			return fmt.Errorf("profile file %s not found", cli.profilePath)
		}
		return nil
	}

	registry, err := config.NewRegistry(cli.profilePath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	name := cli.profile
	if name == "" {
		name = "DEFAULT"
	}
	profile, err := registry.GetProfile(cmd.Context(), name)
	if err != nil {
		if cli.profile == "" {
			return nil
		}
		return err
	}
	profile.Apply(cfg)
	zerolog.Ctx(cmd.Context()).Debug().Str("profile", profile.Name).Msg("profile applied")
	return nil
}
