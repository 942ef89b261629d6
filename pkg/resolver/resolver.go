package resolver

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/neosetup/pkg/logging"
	"github.com/arthur-debert/neosetup/pkg/merge"
	"github.com/arthur-debert/neosetup/pkg/schema"
	"github.com/arthur-debert/neosetup/pkg/types"
)

// Options contains configuration for the resolver
type Options struct {
	// Store provides operator definitions. Required.
	Store types.Store

	// Validator checks documents and merged results. Defaults to a
	// validator for the embedded schema.
	Validator *schema.Validator

	Logger zerolog.Logger
}

// Resolver merges operator inheritance chains into single configurations.
type Resolver struct {
	store     types.Store
	validator *schema.Validator
	logger    zerolog.Logger
}

// New creates a new resolver instance
func New(opts Options) *Resolver {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("resolver")
	}

	validator := opts.Validator
	if validator == nil {
		validator = schema.MustDefault()
	}

	return &Resolver{
		store:     opts.Store,
		validator: validator,
		logger:    logger,
	}
}

// ResolveOptions narrows what a single Resolve call returns.
type ResolveOptions struct {
	// Section scopes the result to one section ("shell"); the document
	// key form ("shell_config") is accepted too. A scope the resolved
	// operator does not have yields empty sections plus a warning
	// finding.
	Section string

	// IncludeInfo keeps info-level findings in the result alongside
	// warnings.
	IncludeInfo bool
}

// Metadata is the resolved operator's descriptive fields.
type Metadata struct {
	Name        string   `json:"name" yaml:"name"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Resolved is a fully merged operator configuration. It owns all of its
// data; nothing aliases back into the store's definitions.
type Resolved struct {
	Operator   Metadata                          `json:"operator" yaml:"operator"`
	Theme      string                            `json:"theme,omitempty" yaml:"theme,omitempty"`
	Chain      []string                          `json:"chain" yaml:"chain"`
	ThemeChain []string                          `json:"theme_chain,omitempty" yaml:"theme_chain,omitempty"`
	Sections   map[string]map[string]interface{} `json:"sections" yaml:"sections"`
	Findings   []schema.Finding                  `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Section returns the named section's mapping, or nil when absent.
func (r *Resolved) Section(name string) map[string]interface{} {
	return r.Sections[name]
}

// Resolve merges the named operator's full inheritance chain, applies its
// theme, and validates the result. Failures are typed: a missing operator
// keeps the store's not-found error, a dangling reference becomes a
// MissingParentError, a loop becomes a CircularDependencyError, and
// validation errors become a schema.ValidationError. Warnings never fail a
// resolution; they travel on the result.
func (r *Resolver) Resolve(operator string, opts ResolveOptions) (*Resolved, error) {
	log := r.logger.With().Str("operator", operator).Logger()
	log.Debug().Msg("Resolving operator")

	chain, err := r.walkChain(operator, types.RefExtends, "")
	if err != nil {
		return nil, err
	}
	if err := r.validateChain(chain); err != nil {
		return nil, err
	}

	sections := merge.Chain(chain)
	leaf := chain[len(chain)-1]

	var themeNames []string
	if leaf.Theme != "" {
		themeChain, err := r.walkChain(leaf.Theme, types.RefTheme, leaf.Name)
		if err != nil {
			return nil, err
		}
		if err := r.validateChain(themeChain); err != nil {
			return nil, err
		}

		sections = merge.Sections(sections, merge.Chain(themeChain))
		// The leaf's literal fields go last so they beat the theme.
		sections = merge.Sections(sections, leaf.Sections)

		themeNames = chainNames(themeChain)
		log.Debug().
			Str("theme", leaf.Theme).
			Strs("theme_chain", themeNames).
			Msg("Applied theme overlay")
	}

	findings := r.validator.ValidateResolved(sections)
	if schema.HasErrors(findings) {
		return nil, &schema.ValidationError{
			Operator: leaf.Name,
			Findings: schema.ErrorFindings(findings),
		}
	}

	res := &Resolved{
		Operator: Metadata{
			Name:        leaf.Name,
			Version:     leaf.Version,
			Description: leaf.Description,
			Author:      leaf.Author,
			Tags:        append([]string(nil), leaf.Tags...),
		},
		Theme:      leaf.Theme,
		Chain:      chainNames(chain),
		ThemeChain: themeNames,
		Sections:   sections,
		Findings:   keepFindings(findings, opts.IncludeInfo),
	}

	if opts.Section != "" {
		r.scopeSections(res, opts.Section)
	}

	log.Debug().
		Strs("chain", res.Chain).
		Int("sections", len(res.Sections)).
		Int("findings", len(res.Findings)).
		Msg("Resolved operator")

	return res, nil
}

// validateChain runs pre-merge validation over every loaded member, root
// first. The synthesized base carries no document and is skipped.
func (r *Resolver) validateChain(defs []*types.Definition) error {
	for _, def := range defs {
		if def.Synthesized() {
			continue
		}
		findings := r.validator.ValidateDefinition(def)
		if schema.HasErrors(findings) {
			return &schema.ValidationError{
				Operator: def.Name,
				Findings: schema.ErrorFindings(findings),
			}
		}
	}
	return nil
}

// scopeSections narrows the result to one section.
func (r *Resolver) scopeSections(res *Resolved, scope string) {
	name := scope
	if stripped, ok := types.SectionName(scope); ok {
		name = stripped
	}

	section, ok := res.Sections[name]
	if !ok {
		res.Sections = map[string]map[string]interface{}{}
		res.Findings = append(res.Findings, schema.Finding{
			Path:     name + types.SectionSuffix,
			Severity: schema.SeverityWarning,
			Message:  fmt.Sprintf("Operator '%s' has no '%s' section", res.Operator.Name, name),
		})
		return
	}

	res.Sections = map[string]map[string]interface{}{name: section}
}

func chainNames(defs []*types.Definition) []string {
	out := make([]string, len(defs))
	for i, def := range defs {
		out[i] = def.Name
	}
	return out
}

func keepFindings(findings []schema.Finding, includeInfo bool) []schema.Finding {
	var out []schema.Finding
	for _, f := range findings {
		switch f.Severity {
		case schema.SeverityWarning:
			out = append(out, f)
		case schema.SeverityInfo:
			if includeInfo {
				out = append(out, f)
			}
		}
	}
	return out
}
