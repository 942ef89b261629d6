package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/neosetup/pkg/config"
	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/filesystem"
	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/operators"
	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/report"
	"github.com/arthur-debert/neosetup/pkg/resolver"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// session wires one command invocation together: paths, configuration, the
// operator store and a resolver over it. The operators root is picked in
// order from the --root flag, the NEOSETUP_ROOT environment variable, the
// operators.root configuration value, and the default under the config dir.
type session struct {
	paths    paths.Paths
	cfg      *config.Config
	fs       types.FS
	store    *operators.DiskStore
	resolver *resolver.Resolver
}

func newSession(cmd *cobra.Command) (*session, error) {
	rootFlag, _ := cmd.Root().PersistentFlags().GetString("root")

	p, err := paths.New(rootFlag)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	cfg, err := config.Load(p.AppConfigPath())
	if err != nil {
		return nil, err
	}

	// The configuration may point at another operators root, but an
	// explicit flag or environment variable wins.
	if rootFlag == "" && os.Getenv(paths.EnvOperatorsRoot) == "" && cfg.Operators.Root != "" {
		if p, err = paths.New(cfg.Operators.Root); err != nil {
			return nil, fmt.Errorf(MsgErrInitPaths, err)
		}
	}

	// The configured base verbosity applies unless -v flags asked for more.
	if v, _ := cmd.Root().PersistentFlags().GetCount("verbose"); cfg.Logging.Verbosity > v {
		logging.SetupLogger(cfg.Logging.Verbosity)
	}

	fs := filesystem.NewOS()
	store := operators.NewDiskStore(p.OperatorsRoot(), fs)

	return &session{
		paths:    p,
		cfg:      cfg,
		fs:       fs,
		store:    store,
		resolver: resolver.New(resolver.Options{Store: store}),
	}, nil
}

// operatorArg picks the operator to act on: the positional argument when
// given, the configured default otherwise.
func (s *session) operatorArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if s.cfg.DefaultOperator != "" {
		return s.cfg.DefaultOperator, nil
	}
	return "", errors.New(errors.ErrInvalidInput, MsgErrNoOperator)
}

// outputFormat settles the --format flag against the terminal.
func outputFormat(cmd *cobra.Command) (report.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := report.ParseFormat(name)
	if err != nil {
		return format, err
	}
	return report.Resolve(format, os.Stdout), nil
}

// operatorNamesCompletion provides shell completion for operator names
func operatorNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := newSession(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names, err := s.store.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
