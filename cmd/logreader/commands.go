package logreader

import (
	"os"

	"github.com/palchukovsky/logreader/internal/version"
	"github.com/palchukovsky/logreader/pkg/cobrax/topics"
	"github.com/palchukovsky/logreader/pkg/config"
	"github.com/palchukovsky/logreader/pkg/errors"
	"github.com/palchukovsky/logreader/pkg/logging"
	"github.com/palchukovsky/logreader/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// options holds the global flag values of one root command
type options struct {
	verbosity  int
	configFile string
	color      string
	bufferSize int

	cfg     *config.Config
	printer *ui.Printer
}

// overrides turns explicitly set flags into config overrides
func (o *options) overrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	if f := cmd.Flags().Lookup("buffer-size"); f != nil && f.Changed {
		overrides["reader.buffer_size"] = o.bufferSize
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		overrides["output.color"] = o.color
	}
	return overrides
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "logreader <mask> <path>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, opts, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.color, "color", string(config.ColorAuto), MsgFlagColor)
	rootCmd.Flags().IntVarP(&opts.bufferSize, "buffer-size", "b", 0, MsgFlagBufferSize)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return reportFlagError(cmd, opts, err)
	})

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newConfigCmd(opts))

	// Initialize topic-based help system
	tm, err := topics.InitializeWithOptions(rootCmd, helpTopics, "topics", topics.Options{
		Renderer: topics.RendererFor(stdoutIsTerminal()),
	})
	if err == nil {
		rootCmd.AddCommand(tm.TopicCommand("syntax", MsgSyntaxShort, "syntax"))
	}

	return rootCmd
}

// setup loads the configuration and configures logging and output
func (o *options) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.LoadOptions{
		File:      o.configFile,
		Overrides: o.overrides(cmd),
	})
	if err != nil {
		return err
	}
	o.cfg = cfg

	format, err := ui.ParseFormat(string(cfg.Output.Color))
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid output.color")
	}
	o.printer = ui.NewPrinter(cmd.OutOrStdout(), format)

	logging.SetupLoggerWithOptions(logging.Options{
		Verbosity: o.verbosity,
		LogFile:   cfg.Logging.File,
		Console:   cmd.ErrOrStderr(),
		NoColor:   o.printer.Format() != ui.FormatTerminal,
	})
	log.Debug().Str("command", cmd.Name()).Msg("Command started")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(version.String(logging.AppName)))
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "man",
		Short: MsgManShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrOutputWrite, "failed to create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "LOGREADER",
				Section: "1",
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrOutputWrite, "failed to generate man pages")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", MsgFlagManDir)
	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	var (
		format   string
		template bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Long:  MsgConfigLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template {
				return opts.printer.Print(config.GenerateConfigContent())
			}
			data, err := opts.cfg.Marshal(format)
			if err != nil {
				return err
			}
			return opts.printer.Print(string(data))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", MsgFlagFormat)
	cmd.Flags().BoolVar(&template, "template", false, MsgFlagTemplate)
	return cmd
}
