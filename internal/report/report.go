// Package report summarizes a generation run as markdown tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"ltkgen/internal/config"
	"ltkgen/internal/generator"
	"ltkgen/internal/model"
	"ltkgen/internal/translate"
)

// Entities writes one row per translated declaration: its category, Go
// name, schema name, member count, response link and output files.
func Entities(w io.Writer, res *generator.Result) error {
	if len(res.Decls) == 0 {
		_, err := fmt.Fprintln(w, "No entities to display")
		return err
	}

	files := make(map[string][]string, len(res.Decls))
	for _, f := range res.Files {
		if f.Entity != "" {
			files[f.Entity] = append(files[f.Entity], f.Name)
		}
	}

	rows := make([][]string, 0, len(res.Decls))
	for i, decl := range res.Decls {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(decl.Kind),
			decl.Name,
			decl.Source,
			strconv.Itoa(members(decl)),
			decl.Response,
			strings.Join(files[decl.Name], " "),
		})
	}

	return render(w, []string{"#", "Kind", "Name", "Source", "Members", "Response", "Files"}, rows)
}

// Diagnostics writes the run's diagnostics, or a single line when there are
// none.
func Diagnostics(w io.Writer, res *generator.Result) error {
	if len(res.Diagnostics) == 0 {
		_, err := fmt.Fprintln(w, "No diagnostics")
		return err
	}

	rows := make([][]string, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		rows = append(rows, []string{string(d.Severity), d.Entity, d.Message})
	}
	return render(w, []string{"Severity", "Entity", "Message"}, rows)
}

// Summary writes declaration counts per category.
func Summary(w io.Writer, res *generator.Result) error {
	rows := [][]string{
		{"parameters", strconv.Itoa(res.Count(model.DeclParameter))},
		{"messages", strconv.Itoa(res.Count(model.DeclMessage))},
		{"enumerations", strconv.Itoa(res.Count(model.DeclEnumeration))},
		{"choices", strconv.Itoa(res.Count(model.DeclChoice))},
		{"files", strconv.Itoa(len(res.Files))},
		{"diagnostics", strconv.Itoa(len(res.Diagnostics))},
	}
	return render(w, []string{"Category", "Count"}, rows)
}

// Types writes how every schema type referenced by a field or parameter
// reference resolves, in order of first use, with the number of uses.
func Types(w io.Writer, cfg *config.Config, schema *model.Schema) error {
	var order []model.SchemaType
	uses := make(map[model.SchemaType]int)
	count := func(t model.SchemaType) {
		if uses[t] == 0 {
			order = append(order, t)
		}
		uses[t]++
	}
	visit := func(fields []model.FieldDef, params []model.ParamRef) {
		for _, f := range fields {
			count(f.Type)
		}
		for _, p := range params {
			count(p.Type)
		}
	}
	for _, p := range schema.Parameters {
		visit(p.Fields, p.Params)
	}
	for _, m := range schema.Messages {
		visit(m.Fields, m.Params)
	}

	if len(order) == 0 {
		_, err := fmt.Fprintln(w, "No types referenced")
		return err
	}

	mapper := translate.NewMapper(cfg)
	rows := make([][]string, 0, len(order))
	for _, t := range order {
		goType, kind := mapper.Lookup(t)
		rows = append(rows, []string{string(t), goType, kind.String(), strconv.Itoa(uses[t])})
	}
	return render(w, []string{"Schema type", "Go type", "Kind", "Uses"}, rows)
}

func render(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("building table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}
	return nil
}

func members(decl *model.Decl) int {
	switch decl.Kind {
	case model.DeclEnumeration:
		return len(decl.Constants)
	case model.DeclChoice:
		return len(decl.Variants)
	default:
		return decl.Members()
	}
}
