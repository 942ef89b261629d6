package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A layered dev environment provisioner"
	MsgListShort       = "List all operators in the store"
	MsgListLong        = "List displays every operator found in the operators root, with its version, parent and theme."
	MsgResolveShort    = "Resolve an operator's merged configuration"
	MsgValidateShort   = "Validate operators against the schema"
	MsgChainShort      = "Show an operator's inheritance chains"
	MsgRenderShort     = "Render an operator's configuration artifacts"
	MsgApplyShort      = "Render and install an operator's artifacts"
	MsgInitShort       = "Create a new operator from a template"
	MsgDocsShort       = "Display available documentation topics"
	MsgDocsLong        = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice       = "\nDRY RUN MODE - No changes were made"
	MsgOperationItem      = "  ✓ %s\n"
	MsgBackupItem         = "  ↳ backed up %s to %s\n"
	MsgNoOperators        = "No operators found."
	MsgInitHint           = "Create one with 'neosetup init <name>'."
	MsgOperatorCreated    = "Created operator '%s' with the following files:\n"
	MsgConfigWritten      = "Wrote %s\n"
	MsgArtifactHeader     = "==> %s (%s)\n"
	MsgSkippedInvalid     = "skipped %d unreadable operator(s): %s\n"
	MsgArtifactsWritten   = "Wrote %d artifact(s) to %s:\n"
	MsgNothingToRender    = "Nothing to render: no section of '%s' has a renderer.\n"
	MsgVersionFormat      = "neosetup %s (commit %s, built %s)\n"
	MsgExtendsChainFormat = "extends: %s\n"
	MsgThemeChainFormat   = "theme:   %s\n"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrNoOperator   = "no operator named and no default_operator configured"
	MsgErrInitName     = "an operator name is required unless --config is given"
	MsgErrConfigExists = "configuration file already exists at %s"
	MsgErrValidation   = "validation failed"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot     = "Operators root directory (overrides config and NEOSETUP_ROOT)"
	MsgFlagNoColor  = "Disable colored output"
	MsgFlagSection  = "Limit the result to one configuration section"
	MsgFlagFormat   = "Output format (auto, term, text, json, yaml)"
	MsgFlagFormatV  = "Output format (auto, term, text, json, yaml, junit)"
	MsgFlagAll      = "Validate every operator in the store"
	MsgFlagInfo     = "Include informational findings"
	MsgFlagOutput   = "Write artifacts into this directory instead of stdout"
	MsgFlagDryRun   = "Preview changes without writing anything"
	MsgFlagForce    = "Replace existing files that neosetup did not generate"
	MsgFlagExtends  = "Parent operator the new operator inherits from"
	MsgFlagTemplate = "Template to scaffold from (minimal, standard, advanced)"
	MsgFlagConfig   = "Write an annotated .neosetup.toml instead of an operator"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/resolve-long.txt
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/resolve-example.txt
	msgResolveExampleRaw string
	MsgResolveExample    = strings.TrimSpace(msgResolveExampleRaw)

	//go:embed msgs/validate-long.txt
	msgValidateLongRaw string
	MsgValidateLong    = strings.TrimSpace(msgValidateLongRaw)

	//go:embed msgs/validate-example.txt
	msgValidateExampleRaw string
	MsgValidateExample    = strings.TrimSpace(msgValidateExampleRaw)

	//go:embed msgs/chain-long.txt
	msgChainLongRaw string
	MsgChainLong    = strings.TrimSpace(msgChainLongRaw)

	//go:embed msgs/chain-example.txt
	msgChainExampleRaw string
	MsgChainExample    = strings.TrimSpace(msgChainExampleRaw)

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/render-example.txt
	msgRenderExampleRaw string
	MsgRenderExample    = strings.TrimSpace(msgRenderExampleRaw)

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimSpace(msgApplyExampleRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimSpace(msgInitExampleRaw)

	//go:embed msgs/list-example.txt
	msgListExampleRaw string
	MsgListExample    = strings.TrimSpace(msgListExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
