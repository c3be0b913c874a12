// Package parser reads LLRP binary encoding definitions into schema entities.
package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"ltkgen/internal/model"
)

// ErrInvalidSchema is returned when a definition lacks a required attribute
// or carries an unparsable value.
var ErrInvalidSchema = errors.New("invalid schema")

// Parser parses schema documents and extracts entity definitions.
type Parser struct {
	charsets *ianaindex.Index
}

// New creates a new Parser.
func New() *Parser {
	return &Parser{
		charsets: ianaindex.IANA,
	}
}

// ParseFile parses a schema file.
func (p *Parser) ParseFile(path string) (*model.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema: %w", err)
	}
	defer f.Close()

	schema, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	schema.Path = path
	return schema, nil
}

// Parse parses a schema document from r. Definitions are returned in
// document order within each category; unknown elements are ignored.
// Definitions in a namespace other than the root element's are not read
// and are counted in Schema.Skipped.
func (p *Parser) Parse(r io.Reader) (*model.Schema, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = p.charsetReader

	var doc xmlDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	ns := doc.XMLName.Space
	result := &model.Schema{
		Namespace: ns,
	}

	for i, el := range doc.Parameters {
		if el.XMLName.Space != ns {
			result.Skipped++
			continue
		}
		def, err := el.definition(i)
		if err != nil {
			return nil, err
		}
		result.Parameters = append(result.Parameters, def)
	}
	for i, el := range doc.Messages {
		if el.XMLName.Space != ns {
			result.Skipped++
			continue
		}
		def, err := el.definition(i)
		if err != nil {
			return nil, err
		}
		result.Messages = append(result.Messages, def)
	}
	for i, el := range doc.Enumerations {
		if el.XMLName.Space != ns {
			result.Skipped++
			continue
		}
		def, err := el.definition(i)
		if err != nil {
			return nil, err
		}
		result.Enumerations = append(result.Enumerations, def)
	}
	for i, el := range doc.Choices {
		if el.XMLName.Space != ns {
			result.Skipped++
			continue
		}
		def, err := el.definition(i)
		if err != nil {
			return nil, err
		}
		result.Choices = append(result.Choices, def)
	}

	return result, nil
}

// charsetReader decodes documents that declare a non UTF-8 encoding.
func (p *Parser) charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := p.charsets.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

type xmlDocument struct {
	XMLName      xml.Name
	Parameters   []xmlParameter   `xml:"parameterDefinition"`
	Messages     []xmlMessage     `xml:"messageDefinition"`
	Enumerations []xmlEnumeration `xml:"enumerationDefinition"`
	Choices      []xmlChoice      `xml:"choiceDefinition"`
}

type xmlField struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type xmlRef struct {
	Type   string `xml:"type,attr"`
	Repeat string `xml:"repeat,attr"`
}

type xmlParameter struct {
	XMLName xml.Name
	Name    string     `xml:"name,attr"`
	Fields  []xmlField `xml:"field"`
	Params  []xmlRef   `xml:"parameter"`
	Choices []xmlRef   `xml:"choice"`
}

type xmlMessage struct {
	XMLName      xml.Name
	Name         string     `xml:"name,attr"`
	ResponseType *string    `xml:"responseType,attr"`
	Fields       []xmlField `xml:"field"`
	Params       []xmlRef   `xml:"parameter"`
	Choices      []xmlRef   `xml:"choice"`
}

type xmlEntry struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlEnumeration struct {
	XMLName xml.Name
	Name    string     `xml:"name,attr"`
	Entries []xmlEntry `xml:"entry"`
}

type xmlChoice struct {
	XMLName xml.Name
	Name   string   `xml:"name,attr"`
	Params []xmlRef `xml:"parameter"`
}

func (el xmlParameter) definition(index int) (model.ParameterDefinition, error) {
	if el.Name == "" {
		return model.ParameterDefinition{}, missing("parameterDefinition", index, "name")
	}
	fields, err := convertFields(el.Name, el.Fields)
	if err != nil {
		return model.ParameterDefinition{}, err
	}
	params, err := convertParams(el.Name, el.Params)
	if err != nil {
		return model.ParameterDefinition{}, err
	}
	choices, err := convertChoices(el.Name, el.Choices)
	if err != nil {
		return model.ParameterDefinition{}, err
	}
	return model.ParameterDefinition{
		Name:    el.Name,
		Fields:  fields,
		Params:  params,
		Choices: choices,
	}, nil
}

func (el xmlMessage) definition(index int) (model.MessageDefinition, error) {
	if el.Name == "" {
		return model.MessageDefinition{}, missing("messageDefinition", index, "name")
	}
	fields, err := convertFields(el.Name, el.Fields)
	if err != nil {
		return model.MessageDefinition{}, err
	}
	params, err := convertParams(el.Name, el.Params)
	if err != nil {
		return model.MessageDefinition{}, err
	}
	choices, err := convertChoices(el.Name, el.Choices)
	if err != nil {
		return model.MessageDefinition{}, err
	}
	def := model.MessageDefinition{
		Name:    el.Name,
		Fields:  fields,
		Params:  params,
		Choices: choices,
	}
	if el.ResponseType != nil {
		def.ResponseDeclared = true
		def.ResponseType = strings.TrimSpace(*el.ResponseType)
	}
	return def, nil
}

func (el xmlEnumeration) definition(index int) (model.EnumerationDefinition, error) {
	if el.Name == "" {
		return model.EnumerationDefinition{}, missing("enumerationDefinition", index, "name")
	}
	def := model.EnumerationDefinition{Name: el.Name}
	for i, e := range el.Entries {
		if e.Name == "" {
			return def, fmt.Errorf("%w: %s: entry %d has no name", ErrInvalidSchema, el.Name, i)
		}
		v, err := strconv.ParseInt(strings.TrimSpace(e.Value), 10, 64)
		if err != nil {
			return def, fmt.Errorf("%w: %s: entry %s: value %q: %v", ErrInvalidSchema, el.Name, e.Name, e.Value, err)
		}
		def.Entries = append(def.Entries, model.EntryDef{Name: e.Name, Value: v})
	}
	return def, nil
}

func (el xmlChoice) definition(index int) (model.ChoiceDefinition, error) {
	if el.Name == "" {
		return model.ChoiceDefinition{}, missing("choiceDefinition", index, "name")
	}
	def := model.ChoiceDefinition{Name: el.Name}
	for i, ref := range el.Params {
		if ref.Type == "" {
			return def, fmt.Errorf("%w: %s: parameter %d has no type", ErrInvalidSchema, el.Name, i)
		}
		def.Alternatives = append(def.Alternatives, model.SchemaType(ref.Type))
	}
	return def, nil
}

func convertFields(entity string, in []xmlField) ([]model.FieldDef, error) {
	out := make([]model.FieldDef, 0, len(in))
	for i, f := range in {
		if f.Name == "" || f.Type == "" {
			return nil, fmt.Errorf("%w: %s: field %d needs name and type", ErrInvalidSchema, entity, i)
		}
		out = append(out, model.FieldDef{Name: f.Name, Type: model.SchemaType(f.Type)})
	}
	return out, nil
}

// convertParams keeps the raw repeat specifier; it is validated when the
// entity is translated.
func convertParams(entity string, in []xmlRef) ([]model.ParamRef, error) {
	out := make([]model.ParamRef, 0, len(in))
	for i, ref := range in {
		if ref.Type == "" {
			return nil, fmt.Errorf("%w: %s: parameter %d has no type", ErrInvalidSchema, entity, i)
		}
		out = append(out, model.ParamRef{Type: model.SchemaType(ref.Type), Repeat: ref.Repeat})
	}
	return out, nil
}

func convertChoices(entity string, in []xmlRef) ([]model.ChoiceRef, error) {
	out := make([]model.ChoiceRef, 0, len(in))
	for i, ref := range in {
		if ref.Type == "" {
			return nil, fmt.Errorf("%w: %s: choice %d has no type", ErrInvalidSchema, entity, i)
		}
		out = append(out, model.ChoiceRef{Type: model.SchemaType(ref.Type), Repeat: ref.Repeat})
	}
	return out, nil
}

func missing(element string, index int, attr string) error {
	return fmt.Errorf("%w: %s %d has no %s attribute", ErrInvalidSchema, element, index, attr)
}
