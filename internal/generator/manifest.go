package generator

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"ltkgen/internal/diag"
	"ltkgen/internal/model"
)

// ManifestFile is the name of the generated artifact manifest.
const ManifestFile = "ltkgen.manifest.yaml"

// Manifest lists what a run produced. It carries no timestamps so that an
// unchanged schema yields an identical manifest.
type Manifest struct {
	Schema      string            `yaml:"schema,omitempty"`
	Namespace   string            `yaml:"namespace"`
	Package     string            `yaml:"package"`
	Entities    []ManifestEntity  `yaml:"entities"`
	Responses   map[string]string `yaml:"responses,omitempty"`
	Diagnostics []diag.Diagnostic `yaml:"diagnostics,omitempty"`
}

// ManifestEntity describes one generated declaration.
type ManifestEntity struct {
	ID       string   `yaml:"id"`
	Kind     string   `yaml:"kind"`
	Name     string   `yaml:"name"`
	Source   string   `yaml:"source"`
	Files    []string `yaml:"files"`
	Response string   `yaml:"response,omitempty"`
}

// EntityID derives a stable identifier for an entity from the schema
// namespace, its category and its raw name.
func EntityID(namespace string, kind model.DeclKind, source string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(namespace+"#"+string(kind)+"/"+source))
}

func (g *Generator) manifest(res *Result) ([]byte, error) {
	m := Manifest{
		Schema:      res.Schema.Path,
		Namespace:   res.Schema.Namespace,
		Package:     g.config.Options.Package,
		Entities:    make([]ManifestEntity, 0, len(res.Decls)),
		Diagnostics: res.Diagnostics,
	}
	if len(res.Links) > 0 {
		m.Responses = res.Links
	}

	for _, decl := range res.Decls {
		entry := ManifestEntity{
			ID:       EntityID(res.Schema.Namespace, decl.Kind, decl.Source).String(),
			Kind:     string(decl.Kind),
			Name:     decl.Name,
			Source:   decl.Source,
			Files:    []string{decl.Name + ".go"},
			Response: decl.Response,
		}
		if decl.Test {
			entry.Files = append(entry.Files, decl.Name+"_test.go")
		}
		m.Entities = append(m.Entities, entry)
	}

	out, err := yaml.Marshal(&m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return out, nil
}

// ReadManifest decodes a manifest previously written by a run.
func ReadManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	return &m, nil
}
