package operators

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/neosetup/pkg/errors"
	"github.com/arthur-debert/neosetup/pkg/paths"
)

// Template names accepted by Scaffold.
const (
	TemplateMinimal  = "minimal"
	TemplateStandard = "standard"
	TemplateAdvanced = "advanced"
)

//go:embed templates/minimal.yml.tmpl
var minimalTmplText string

//go:embed templates/standard.yml.tmpl
var standardTmplText string

//go:embed templates/advanced.yml.tmpl
var advancedTmplText string

//go:embed templates/readme.md.tmpl
var readmeTmplText string

var scaffoldFuncs = template.FuncMap{
	"join":  strings.Join,
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}

var (
	varsTemplates = map[string]*template.Template{
		TemplateMinimal:  mustScaffoldTemplate("minimal", minimalTmplText),
		TemplateStandard: mustScaffoldTemplate("standard", standardTmplText),
		TemplateAdvanced: mustScaffoldTemplate("advanced", advancedTmplText),
	}
	readmeTemplate = mustScaffoldTemplate("readme", readmeTmplText)
)

func mustScaffoldTemplate(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(scaffoldFuncs).Parse(text))
}

// Templates returns the available scaffold template names.
func Templates() []string {
	return []string{TemplateMinimal, TemplateStandard, TemplateAdvanced}
}

// ScaffoldOptions describes a new operator to create.
type ScaffoldOptions struct {
	// Name of the operator directory and document. Required.
	Name string

	// Extends names the parent operator. Optional; "base" is accepted
	// even when no base directory exists.
	Extends string

	// Template selects the starting document: minimal, standard or
	// advanced. Defaults to standard.
	Template string

	// Version defaults to 1.0.0.
	Version string

	// Description defaults to "<Name> operator configuration".
	Description string

	Author string
	Tags   []string
}

// ScaffoldResult reports what Scaffold wrote.
type ScaffoldResult struct {
	// Dir is the created operator directory.
	Dir string

	// FilesCreated lists the written files relative to Dir.
	FilesCreated []string
}

type scaffoldData struct {
	Name        string
	Title       string
	Version     string
	Description string
	Author      string
	Extends     string
	Tags        []string
}

// Scaffold creates a new operator directory with a vars.yml built from the
// selected template plus a README. The parent named by Extends must already
// exist in the store.
func (s *DiskStore) Scaffold(opts ScaffoldOptions) (*ScaffoldResult, error) {
	if err := paths.ValidateOperatorName(opts.Name); err != nil {
		return nil, err
	}
	if s.Has(opts.Name) {
		return nil, errors.Newf(errors.ErrAlreadyExists, "operator %q already exists", opts.Name)
	}

	tmplName := opts.Template
	if tmplName == "" {
		tmplName = TemplateStandard
	}
	tmpl, ok := varsTemplates[tmplName]
	if !ok {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unknown template %q (available: %s)", tmplName, strings.Join(Templates(), ", "))
	}

	if opts.Extends != "" && opts.Extends != "base" && !s.Has(opts.Extends) {
		return nil, &NotFoundError{Name: opts.Extends}
	}

	data := scaffoldData{
		Name:        opts.Name,
		Title:       titleCase(opts.Name),
		Version:     opts.Version,
		Description: opts.Description,
		Author:      opts.Author,
		Extends:     opts.Extends,
		Tags:        opts.Tags,
	}
	if data.Version == "" {
		data.Version = "1.0.0"
	}
	if data.Description == "" {
		data.Description = data.Title + " operator configuration"
	}

	dir := filepath.Join(s.root, opts.Name)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "cannot create operator directory %s", dir)
	}

	result := &ScaffoldResult{Dir: dir}
	files := []struct {
		name string
		tmpl *template.Template
	}{
		{paths.VarsFileName, tmpl},
		{"README.md", readmeTemplate},
	}
	for _, f := range files {
		var buf bytes.Buffer
		if err := f.tmpl.Execute(&buf, data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplateRender, "failed to render %s", f.name)
		}
		path := filepath.Join(dir, f.name)
		if err := s.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
		}
		result.FilesCreated = append(result.FilesCreated, f.name)
	}

	s.logger.Info().
		Str("operator", opts.Name).
		Str("template", tmplName).
		Str("dir", dir).
		Msg("Scaffolded operator")

	return result, nil
}

// titleCase capitalizes the first letter of each underscore-separated word,
// keeping the underscores ("jive_turkey" becomes "Jive_Turkey").
func titleCase(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "_")
}
