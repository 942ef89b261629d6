package cli

import (
	"embed"
	"errors"
	"io/fs"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/neosetup/internal/version"
	"github.com/arthur-debert/neosetup/pkg/cobrax/topics"
	"github.com/arthur-debert/neosetup/pkg/logging"
)

//go:embed topics
var topicsFS embed.FS

// ErrNoCommand is returned when neosetup runs without a subcommand. The
// main package shows the full help for it.
var ErrNoCommand = errors.New("no command specified")

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity int
		noColor   bool
	)

	rootCmd := &cobra.Command{
		Use:     "neosetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				os.Setenv("NO_COLOR", "1")
				pterm.DisableColor()
			}
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand: show help but fail so scripts notice.
			_ = cmd.Help()
			return ErrNoCommand
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	// Disable automatic help command (topics installs its own)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newChainCmd())
	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help from the embedded documentation tree
	if docs, err := fs.Sub(topicsFS, "topics"); err == nil {
		_, _ = topics.Initialize(rootCmd, docs, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}

	return rootCmd
}
