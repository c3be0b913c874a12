// Package translate turns schema entities into Go declarations.
package translate

import (
	"errors"
	"fmt"

	"ltkgen/internal/config"
	"ltkgen/internal/diag"
	"ltkgen/internal/model"
)

// ErrMissingName is returned for an entity whose name normalizes to nothing.
var ErrMissingName = errors.New("entity has no name")

// Translator builds declarations for parameter, message, enumeration and
// choice definitions.
type Translator struct {
	mapper  *Mapper
	opts    config.Options
	choices map[string]*model.ChoiceDefinition
}

// New creates a Translator. Choice definitions are only consulted when
// choice resolution is enabled.
func New(cfg *config.Config, choices []model.ChoiceDefinition) *Translator {
	t := &Translator{
		mapper: NewMapper(cfg),
		opts:   cfg.Options,
	}
	if cfg.Options.ResolveChoices {
		t.choices = make(map[string]*model.ChoiceDefinition, len(choices))
		for i := range choices {
			t.choices[choices[i].Name] = &choices[i]
		}
	}
	return t
}

// Parameter translates a parameter definition.
func (t *Translator) Parameter(def *model.ParameterDefinition, d *diag.Collector) (*model.Decl, error) {
	decl, err := t.newDecl(model.DeclParameter, def.Name)
	if err != nil {
		return nil, err
	}
	decl.Test = true
	decl.Fields = t.fields(decl.Name, def.Fields, d)
	if decl.Params, err = t.params(def.Name, def.Params, d); err != nil {
		return nil, err
	}
	if decl.Choices, err = t.choiceSlots(def.Name, def.Choices); err != nil {
		return nil, err
	}
	return decl, nil
}

// Message translates a message definition. Messages carry no choice group;
// any choice slot is reported and dropped.
func (t *Translator) Message(def *model.MessageDefinition, d *diag.Collector) (*model.Decl, error) {
	decl, err := t.newDecl(model.DeclMessage, def.Name)
	if err != nil {
		return nil, err
	}
	decl.Test = true
	decl.Fields = t.fields(decl.Name, def.Fields, d)
	if decl.Params, err = t.params(def.Name, def.Params, d); err != nil {
		return nil, err
	}
	for _, c := range def.Choices {
		d.Warnf(decl.Name, "choice %q ignored: messages carry no choice slots", string(c.Type))
	}
	switch {
	case def.HasResponse():
		decl.Response = Normalize(def.ResponseType)
	case def.ResponseDeclared:
		d.Warnf(decl.Name, "responseType attribute is empty; no response accessor emitted")
	}
	return decl, nil
}

// Enumeration translates an enumeration definition into an int-backed type
// and one constant per entry. Entry names are kept verbatim.
func (t *Translator) Enumeration(def *model.EnumerationDefinition) (*model.Decl, error) {
	decl, err := t.newDecl(model.DeclEnumeration, def.Name)
	if err != nil {
		return nil, err
	}
	decl.Test = t.opts.EnumTests
	decl.Underlying = "int"
	decl.Constants = make([]model.Constant, 0, len(def.Entries))
	for _, e := range def.Entries {
		decl.Constants = append(decl.Constants, model.Constant{
			Name:  decl.Name + "_" + e.Name,
			Type:  decl.Name,
			Value: e.Value,
		})
	}
	return decl, nil
}

// Choice translates a choice definition into a closed variant interface.
// When known is non-nil, alternatives that are not generated parameter
// declarations are reported and left out.
func (t *Translator) Choice(def *model.ChoiceDefinition, known map[string]bool, d *diag.Collector) (*model.Decl, error) {
	decl, err := t.newDecl(model.DeclChoice, def.Name)
	if err != nil {
		return nil, err
	}
	decl.Marker = "is" + decl.Name
	if len(def.Alternatives) == 0 {
		d.Warnf(decl.Name, "choice has no alternatives")
	}
	seen := make(map[string]bool, len(def.Alternatives))
	for _, alt := range def.Alternatives {
		name := Normalize(string(alt))
		if seen[name] {
			continue
		}
		seen[name] = true
		if known != nil && !known[name] {
			d.Warnf(decl.Name, "alternative %q is not a generated parameter", string(alt))
			continue
		}
		decl.Variants = append(decl.Variants, name)
	}
	return decl, nil
}

// IsResolved reports whether choice slots named name get a closed type.
func (t *Translator) IsResolved(name string) bool {
	_, ok := t.choices[name]
	return ok
}

func (t *Translator) newDecl(kind model.DeclKind, raw string) (*model.Decl, error) {
	name := Normalize(raw)
	if name == "" {
		return nil, fmt.Errorf("%s %q: %w", kind, raw, ErrMissingName)
	}
	return &model.Decl{Kind: kind, Name: name, Source: raw}, nil
}

func (t *Translator) fields(entity string, defs []model.FieldDef, d *diag.Collector) []model.Member {
	members := make([]model.Member, 0, len(defs))
	for _, f := range defs {
		members = append(members, model.Member{
			Name: f.Name,
			Type: t.mapper.Map(f.Type, entity, d),
			Tag:  f.Name,
		})
	}
	return members
}

func (t *Translator) params(entity string, refs []model.ParamRef, d *diag.Collector) ([]model.Member, error) {
	members := make([]model.Member, 0, len(refs))
	for _, p := range refs {
		card, err := model.ParseCardinality(p.Repeat)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %s: %w", entity, p.Type, err)
		}
		members = append(members, model.Member{
			Name: string(p.Type),
			Type: t.mapper.Map(p.Type, Normalize(entity), d),
			Tag:  string(p.Type),
			Many: card.Many(),
		})
	}
	return members, nil
}

func (t *Translator) choiceSlots(entity string, refs []model.ChoiceRef) ([]model.Member, error) {
	members := make([]model.Member, 0, len(refs))
	for _, c := range refs {
		card, err := model.ParseCardinality(c.Repeat)
		if err != nil {
			return nil, fmt.Errorf("%s: choice %s: %w", entity, c.Type, err)
		}
		typ := t.opts.Opaque
		if t.IsResolved(string(c.Type)) {
			typ = Normalize(string(c.Type))
		}
		members = append(members, model.Member{
			Name: string(c.Type),
			Type: typ,
			Tag:  string(c.Type),
			Many: card.Many(),
		})
	}
	return members, nil
}
