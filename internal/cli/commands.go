package cli

import (
	stderrors "errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/neosetup/internal/version"
	"github.com/arthur-debert/neosetup/pkg/apply"
	"github.com/arthur-debert/neosetup/pkg/config"
	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/operators"
	"github.com/arthur-debert/neosetup/pkg/paths"
	"github.com/arthur-debert/neosetup/pkg/render"
	"github.com/arthur-debert/neosetup/pkg/report"
	"github.com/arthur-debert/neosetup/pkg/resolver"
	"github.com/arthur-debert/neosetup/pkg/schema"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("operators_root", s.store.Root()).Msg("Listing operators")

			names, err := s.store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), MsgNoOperators, MsgInitHint)
				return nil
			}

			data := pterm.TableData{{"NAME", "VERSION", "EXTENDS", "THEME", "DESCRIPTION"}}
			var unreadable []string
			for _, name := range names {
				def, err := s.store.Get(name)
				if err != nil {
					unreadable = append(unreadable, name)
					continue
				}
				data = append(data, []string{def.Name, def.Version, def.Extends, def.Theme, def.Description})
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)

			if len(unreadable) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgSkippedInvalid, len(unreadable), strings.Join(unreadable, ", "))
			}
			return nil
		},
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "resolve [operator]",
		Short:             MsgResolveShort,
		Long:              MsgResolveLong,
		Example:           MsgResolveExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: operatorNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			name, err := s.operatorArg(args)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			section, _ := cmd.Flags().GetString("section")

			log.Info().
				Str("operator", name).
				Str("operators_root", s.store.Root()).
				Msg("Resolving operator")

			res, err := s.resolver.Resolve(name, resolver.ResolveOptions{Section: section})
			if err != nil {
				return err
			}

			return report.WriteResolved(cmd.OutOrStdout(), format, res)
		},
	}

	cmd.Flags().StringP("section", "s", "", MsgFlagSection)
	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormat)

	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "validate [operator...]",
		Short:             MsgValidateShort,
		Long:              MsgValidateLong,
		Example:           MsgValidateExample,
		GroupID:           "core",
		ValidArgsFunction: operatorNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool("all")
			includeInfo, _ := cmd.Flags().GetBool("info")
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			names := args
			if all {
				if names, err = s.store.List(); err != nil {
					return err
				}
			} else if len(names) == 0 {
				name, err := s.operatorArg(nil)
				if err != nil {
					return err
				}
				names = []string{name}
			}

			log.Info().
				Strs("operators", names).
				Str("operators_root", s.store.Root()).
				Msg("Validating operators")

			reports := make([]report.Report, 0, len(names))
			for _, name := range names {
				res, err := s.resolver.Resolve(name, resolver.ResolveOptions{IncludeInfo: includeInfo})
				if err != nil {
					reports = append(reports, report.NewReport(name, findingsForError(err)))
					continue
				}
				reports = append(reports, report.NewReport(name, res.Findings))
			}

			if err := report.WriteReports(cmd.OutOrStdout(), format, reports); err != nil {
				return err
			}
			if report.HasErrors(reports) {
				return errors.New(errors.ErrSchemaInvalid, MsgErrValidation)
			}
			return nil
		},
	}

	cmd.Flags().Bool("all", false, MsgFlagAll)
	cmd.Flags().Bool("info", false, MsgFlagInfo)
	cmd.Flags().StringP("format", "f", "auto", MsgFlagFormatV)

	return cmd
}

// findingsForError turns a failed resolution into findings so every
// problem shows up in the same report, whatever stage it came from.
func findingsForError(err error) []schema.Finding {
	var verr *schema.ValidationError
	if stderrors.As(err, &verr) {
		return verr.Findings
	}

	path := "operator"
	var cycle *resolver.CircularDependencyError
	var missing *resolver.MissingParentError
	switch {
	case stderrors.As(err, &cycle):
		path = "extends"
	case stderrors.As(err, &missing):
		path = missing.Kind.String()
	}

	return []schema.Finding{{
		Path:     path,
		Severity: schema.SeverityError,
		Message:  err.Error(),
	}}
}

func newChainCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "chain [operator]",
		Short:             MsgChainShort,
		Long:              MsgChainLong,
		Example:           MsgChainExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: operatorNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			name, err := s.operatorArg(args)
			if err != nil {
				return err
			}

			res, err := s.resolver.Resolve(name, resolver.ResolveOptions{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgExtendsChainFormat, strings.Join(res.Chain, " -> "))
			if len(res.ThemeChain) > 0 {
				fmt.Fprintf(out, MsgThemeChainFormat, strings.Join(res.ThemeChain, " -> "))
			}
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "render [operator]",
		Short:             MsgRenderShort,
		Long:              MsgRenderLong,
		Example:           MsgRenderExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: operatorNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			name, err := s.operatorArg(args)
			if err != nil {
				return err
			}

			res, err := s.resolver.Resolve(name, resolver.ResolveOptions{})
			if err != nil {
				return err
			}

			artifacts, err := render.New(render.Options{Files: s.cfg.Render.Files}).Render(res)
			if err != nil {
				return err
			}
			if len(artifacts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgNothingToRender, name)
				return nil
			}

			// An explicit --output wins; otherwise a configured output
			// dir makes writing the default. "-" forces stdout.
			outputDir, _ := cmd.Flags().GetString("output")
			if outputDir == "" {
				outputDir = s.cfg.Render.OutputDir
			}
			if outputDir == "" || outputDir == "-" {
				return printArtifacts(cmd, artifacts)
			}
			return writeArtifacts(cmd, s, outputDir, artifacts)
		},
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)

	return cmd
}

func printArtifacts(cmd *cobra.Command, artifacts []render.Artifact) error {
	out := cmd.OutOrStdout()
	for i, artifact := range artifacts {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, MsgArtifactHeader, artifact.File, artifact.Section)
		fmt.Fprint(out, artifact.Content)
		if !strings.HasSuffix(artifact.Content, "\n") {
			fmt.Fprintln(out)
		}
	}
	return nil
}

func writeArtifacts(cmd *cobra.Command, s *session, dir string, artifacts []render.Artifact) error {
	applier := apply.New(apply.Options{
		Target: dir,
		Force:  true,
		Paths:  s.paths,
	})
	result, err := applier.Apply(artifacts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, MsgArtifactsWritten, len(result.Written), dir)
	for _, path := range result.Written {
		fmt.Fprintf(out, MsgOperationItem, path)
	}
	return nil
}

func newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "apply [operator]",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: operatorNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			name, err := s.operatorArg(args)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			log.Info().
				Str("operator", name).
				Bool("dry_run", dryRun).
				Bool("force", force).
				Msg("Applying operator")

			res, err := s.resolver.Resolve(name, resolver.ResolveOptions{})
			if err != nil {
				return err
			}

			artifacts, err := render.New(render.Options{Files: s.cfg.Render.Files}).Render(res)
			if err != nil {
				return err
			}
			if len(artifacts) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), MsgNothingToRender, name)
				return nil
			}

			target := s.cfg.Apply.Target
			if target == "" {
				if target, err = paths.GetHomeDirectory(); err != nil {
					return err
				}
			}

			applier := apply.New(apply.Options{
				Target:    target,
				DryRun:    dryRun,
				Force:     force,
				Backups:   s.cfg.Apply.Backups,
				BackupDir: s.cfg.Apply.BackupDir,
				Paths:     s.paths,
			})
			result, err := applier.Apply(artifacts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.DryRun {
				fmt.Fprintln(out, MsgDryRunNotice)
			}
			for _, path := range result.Written {
				fmt.Fprintf(out, MsgOperationItem, path)
			}
			backedUp := make([]string, 0, len(result.BackedUp))
			for dest := range result.BackedUp {
				backedUp = append(backedUp, dest)
			}
			sort.Strings(backedUp)
			for _, dest := range backedUp {
				fmt.Fprintf(out, MsgBackupItem, dest, result.BackedUp[dest])
			}
			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, MsgFlagDryRun)
	cmd.Flags().Bool("force", false, MsgFlagForce)

	return cmd
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [name]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd)
			if err != nil {
				return err
			}

			if writeConfig, _ := cmd.Flags().GetBool("config"); writeConfig {
				return writeAppConfig(cmd, s)
			}
			if len(args) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgErrInitName)
			}

			extends, _ := cmd.Flags().GetString("extends")
			template, _ := cmd.Flags().GetString("template")

			log.Info().
				Str("operator", args[0]).
				Str("template", template).
				Msg("Creating new operator")

			result, err := s.store.Scaffold(operators.ScaffoldOptions{
				Name:     args[0],
				Extends:  extends,
				Template: template,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgOperatorCreated, args[0])
			for _, file := range result.FilesCreated {
				fmt.Fprintf(out, MsgOperationItem, file)
			}
			return nil
		},
	}

	cmd.Flags().StringP("extends", "e", "", MsgFlagExtends)
	cmd.Flags().StringP("template", "t", operators.TemplateStandard, MsgFlagTemplate)
	cmd.Flags().Bool("config", false, MsgFlagConfig)

	return cmd
}

func writeAppConfig(cmd *cobra.Command, s *session) error {
	path := s.paths.AppConfigPath()
	if _, err := s.fs.Stat(path); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, MsgErrConfigExists, path)
	}
	content, err := config.GenerateConfigContent()
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(path))
	}
	if err := s.fs.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, path)
	return nil
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs [topic]",
		Short:   MsgDocsShort,
		Long:    MsgDocsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			helpCmd, _, err := cmd.Root().Find([]string{"help"})
			if err != nil || helpCmd == nil || helpCmd.Run == nil {
				return fmt.Errorf("help command not found")
			}
			request := []string{"topics"}
			if len(args) > 0 {
				request = args
			}
			helpCmd.Run(helpCmd, request)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
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
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
