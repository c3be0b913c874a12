// Package generator renders translated schema entities into Go source files.
package generator

import (
	"context"
	"embed"
	"fmt"
	"go/format"
	"text/template"

	"github.com/rs/zerolog"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/errgroup"

	"ltkgen/internal/config"
	"ltkgen/internal/diag"
	"ltkgen/internal/model"
	"ltkgen/internal/translate"
)

// ResponsesFile is the name of the request to response index file.
const ResponsesFile = "responses.go"

//go:embed templates/decl.go.tmpl
var templateFS embed.FS

var builtin = template.Must(template.New("decl.go.tmpl").
	Funcs(templateFuncs()).
	ParseFS(templateFS, "templates/decl.go.tmpl"))

// Generator translates schemas and renders declarations.
type Generator struct {
	config   *config.Config
	template *template.Template
	log      zerolog.Logger
}

// New creates a new Generator using the built-in templates.
func New(cfg *config.Config, log zerolog.Logger) *Generator {
	return &Generator{
		config:   cfg,
		template: builtin,
		log:      log,
	}
}

// LoadTemplate loads a template file whose {{define}} blocks replace the
// built-in ones of the same name ("parameter", "message", "enumeration",
// "choice", "test", "responses", "header", "struct"). Templates are executed
// with a *TemplateData and may call goType (member type, sliced when
// repeated), tag (key, value to struct tag), quote (Go string literal) and
// normalize (schema name to identifier).
func (g *Generator) LoadTemplate(path string) error {
	base, err := builtin.Clone()
	if err != nil {
		return fmt.Errorf("cloning templates: %w", err)
	}
	tmpl, err := base.ParseFiles(path)
	if err != nil {
		return fmt.Errorf("loading template: %w", err)
	}
	g.template = tmpl
	return nil
}

// TemplateData represents data passed to templates.
type TemplateData struct {
	Package string            // Output package name
	TagKey  string            // Struct tag key
	Decl    *model.Decl       // Current declaration
	Links   map[string]string // Request to response identifiers
}

// File is a rendered output destination.
type File struct {
	Name    string
	Entity  string // Declaration name; empty for package-level files
	Content []byte
}

// Result is the outcome of a generation run.
type Result struct {
	Schema      *model.Schema
	Decls       []*model.Decl
	Links       map[string]string // Request message to response message
	Files       []File
	Diagnostics []diag.Diagnostic
}

// Count returns the number of declarations of the given kind.
func (r *Result) Count(kind model.DeclKind) int {
	n := 0
	for _, d := range r.Decls {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Generate translates schema, renders every declaration and writes the files
// to sink. Nothing is written unless every entity translates and renders.
func (g *Generator) Generate(ctx context.Context, schema *model.Schema, sink Sink) (*Result, error) {
	res, err := g.Translate(schema)
	if err != nil {
		return nil, err
	}
	g.logDiagnostics(res.Diagnostics)

	if err := g.Render(ctx, res); err != nil {
		return nil, err
	}
	if err := g.Emit(ctx, res, sink); err != nil {
		return res, err
	}

	g.log.Info().
		Int("parameters", res.Count(model.DeclParameter)).
		Int("messages", res.Count(model.DeclMessage)).
		Int("enumerations", res.Count(model.DeclEnumeration)).
		Int("choices", res.Count(model.DeclChoice)).
		Int("files", len(res.Files)).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("generation complete")

	return res, nil
}

// Translate builds declarations for every entity: parameters, then
// messages, then enumerations, then (when enabled) choices, each in
// document order. A structural error aborts the whole run.
func (g *Generator) Translate(schema *model.Schema) (*Result, error) {
	d := diag.New()
	if ns := g.config.Options.Namespace; ns != "" && schema.Namespace != ns {
		d.Warnf("", "schema namespace %q does not match %q", schema.Namespace, ns)
	}
	if schema.Skipped > 0 {
		d.Warnf("", "%d definitions outside namespace %q skipped", schema.Skipped, schema.Namespace)
	}

	tr := translate.New(g.config, schema.Choices)
	res := &Result{
		Schema: schema,
		Decls:  make([]*model.Decl, 0, schema.Len()),
		Links:  make(map[string]string),
	}

	known := make(map[string]bool, len(schema.Parameters))
	for i := range schema.Parameters {
		decl, err := tr.Parameter(&schema.Parameters[i], d)
		if err != nil {
			return nil, fmt.Errorf("translating parameters: %w", err)
		}
		known[decl.Name] = true
		res.Decls = append(res.Decls, decl)
	}

	messages := make(map[string]bool, len(schema.Messages))
	for i := range schema.Messages {
		decl, err := tr.Message(&schema.Messages[i], d)
		if err != nil {
			return nil, fmt.Errorf("translating messages: %w", err)
		}
		messages[decl.Name] = true
		if decl.HasResponse() {
			res.Links[decl.Name] = decl.Response
		}
		res.Decls = append(res.Decls, decl)
	}

	for i := range schema.Enumerations {
		decl, err := tr.Enumeration(&schema.Enumerations[i])
		if err != nil {
			return nil, fmt.Errorf("translating enumerations: %w", err)
		}
		res.Decls = append(res.Decls, decl)
	}

	if g.config.Options.ResolveChoices {
		for i := range schema.Choices {
			decl, err := tr.Choice(&schema.Choices[i], known, d)
			if err != nil {
				return nil, fmt.Errorf("translating choices: %w", err)
			}
			res.Decls = append(res.Decls, decl)
		}
	}

	for _, decl := range res.Decls {
		if decl.HasResponse() && !messages[decl.Response] {
			d.Warnf(decl.Name, "response type %q is not a generated message", decl.Response)
		}
	}
	checkCollisions(res.Decls, d)

	res.Diagnostics = d.Diagnostics()
	return res, nil
}

// checkCollisions reports declarations that share a destination name; the
// later one overwrites the earlier.
func checkCollisions(decls []*model.Decl, d *diag.Collector) {
	seen := make(map[string]*model.Decl, len(decls))
	for _, decl := range decls {
		if prev, ok := seen[decl.Name]; ok {
			d.Warnf(decl.Name, "%s %q overwrites %s %q", decl.Kind, decl.Source, prev.Kind, prev.Source)
		}
		seen[decl.Name] = decl
	}
}

// Render renders every declaration into res.Files, using up to the
// configured number of workers. File order follows declaration order.
func (g *Generator) Render(ctx context.Context, res *Result) error {
	rendered := make([][]File, len(res.Decls))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.config.Options.Workers)
	for i, decl := range res.Decls {
		i, decl := i, decl
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files, err := g.renderDecl(decl, res.Links)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", decl.Name, err)
			}
			rendered[i] = files
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	var files []File
	index := make(map[string]int)
	add := func(f File) {
		if i, ok := index[f.Name]; ok {
			files[i] = f
			return
		}
		index[f.Name] = len(files)
		files = append(files, f)
	}
	for _, group := range rendered {
		for _, f := range group {
			add(f)
		}
	}

	if g.config.Options.ResponseIndex && len(res.Links) > 0 {
		content, err := g.execute("responses", g.data(nil, res.Links))
		if err != nil {
			return fmt.Errorf("rendering %s: %w", ResponsesFile, err)
		}
		add(File{Name: ResponsesFile, Content: content})
	}

	if g.config.Options.Manifest {
		content, err := g.manifest(res)
		if err != nil {
			return err
		}
		add(File{Name: ManifestFile, Content: content})
	}

	res.Files = files
	return nil
}

// Emit writes every rendered file to sink.
func (g *Generator) Emit(ctx context.Context, res *Result, sink Sink) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.config.Options.Workers)
	for _, f := range res.Files {
		f := f
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := sink.WriteFile(f.Name, f.Content); err != nil {
				return fmt.Errorf("writing %s: %w", f.Name, err)
			}
			g.log.Debug().Str("file", f.Name).Msg("wrote file")
			return nil
		})
	}
	return grp.Wait()
}

func (g *Generator) renderDecl(decl *model.Decl, links map[string]string) ([]File, error) {
	data := g.data(decl, links)

	content, err := g.execute(string(decl.Kind), data)
	if err != nil {
		return nil, err
	}
	files := []File{{Name: decl.Name + ".go", Entity: decl.Name, Content: content}}

	if decl.Test {
		test, err := g.execute("test", data)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Name: decl.Name + "_test.go", Entity: decl.Name, Content: test})
	}
	return files, nil
}

func (g *Generator) data(decl *model.Decl, links map[string]string) *TemplateData {
	return &TemplateData{
		Package: g.config.Options.Package,
		TagKey:  g.config.Options.TagKey,
		Decl:    decl,
		Links:   links,
	}
}

// execute runs the named template and formats the result as Go source.
func (g *Generator) execute(name string, data *TemplateData) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := g.template.ExecuteTemplate(buf, name, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}

	formatted, err := format.Source(buf.B)
	if err != nil {
		return nil, fmt.Errorf("formatting code: %w", err)
	}
	return formatted, nil
}

func (g *Generator) logDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		ev := g.log.Info()
		if d.Severity == diag.SeverityWarning {
			ev = g.log.Warn()
		}
		ev.Str("entity", d.Entity).Msg(d.Message)
	}
}
