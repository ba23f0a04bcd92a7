package definition

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/schemakit/pkg/checks"
	"github.com/dmitrymomot/schemakit/pkg/format"
	"github.com/dmitrymomot/schemakit/pkg/schema"
)

// Definition is a parsed document.
type Definition struct {
	Name        string
	Description string
	Schema      *schema.Schema
}

type parser struct {
	factories checks.Factories
	formats   *format.Registry
	attached  map[string][]schema.Check
	used      map[string]bool
	lenient   bool
}

type rawDocument struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Fields      yaml.Node `yaml:"fields"`
}

type rawField struct {
	Type        string     `yaml:"type"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Required    bool       `yaml:"required"`
	Default     any        `yaml:"default"`
	Min         *float64   `yaml:"min"`
	Max         *float64   `yaml:"max"`
	Options     []string   `yaml:"options"`
	Format      string     `yaml:"format"`
	Test        string     `yaml:"test"`
	Items       yaml.Node  `yaml:"items"`
	Properties  yaml.Node  `yaml:"properties"`
	Checks      []rawCheck `yaml:"checks"`
}

type rawCheck struct {
	Use     string            `yaml:"use"`
	Args    map[string]string `yaml:"args"`
	Message string            `yaml:"message"`
}

var (
	documentKeys = []string{"name", "description", "fields"}
	fieldKeys    = []string{
		"type", "name", "description", "required", "default", "min", "max",
		"options", "format", "test", "items", "properties", "checks",
	}
)

// Parse builds a definition from a YAML or JSON document.
func Parse(data []byte, opts ...Option) (*Definition, error) {
	return parse(data, false, opts)
}

func parse(data []byte, lenient bool, opts []Option) (*Definition, error) {
	p := &parser{
		lenient:   lenient,
		factories: checks.Factories{},
		formats:   format.NewRegistry(),
		attached:  map[string][]schema.Check{},
		used:      map[string]bool{},
	}
	for _, opt := range opts {
		opt(p)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
	}
	doc := root.Content[0]
	if err := requireMapping(doc, "document"); err != nil {
		return nil, err
	}
	if err := knownKeys(doc, documentKeys, "document"); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := doc.Decode(&raw); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if raw.Fields.Kind == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidDefinition)
	}

	s, err := p.schema(&raw.Fields, "")
	if err != nil {
		return nil, err
	}

	for path := range p.attached {
		if !p.used[path] && !p.lenient {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPath, path)
		}
	}

	return &Definition{Name: raw.Name, Description: raw.Description, Schema: s}, nil
}

func (p *parser) schema(node *yaml.Node, prefix string) (*schema.Schema, error) {
	node = deref(node)
	if err := requireMapping(node, where(prefix, "fields")); err != nil {
		return nil, err
	}
	fields := make([]schema.Field, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		f, err := p.field(key, node.Content[i+1], join(prefix, key))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	s, err := schema.New(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, where(prefix, "fields"), err)
	}
	return s, nil
}

func (p *parser) field(key string, node *yaml.Node, path string) (schema.Field, error) {
	node = deref(node)
	if err := requireMapping(node, path); err != nil {
		return nil, err
	}
	if err := knownKeys(node, fieldKeys, path); err != nil {
		return nil, err
	}

	var raw rawField
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDefinition, path, err)
	}

	base := schema.Base{
		Key:         key,
		Name:        raw.Name,
		Description: raw.Description,
		Required:    raw.Required,
		Default:     raw.Default,
	}
	checkList, err := p.checks(raw.Checks, path)
	if err != nil {
		return nil, err
	}
	base.Checks = checkList

	switch schema.Kind(raw.Type) {
	case schema.KindString:
		return p.stringField(base, raw, path)
	case schema.KindNumber:
		return &schema.NumberField{Base: base, Min: raw.Min, Max: raw.Max}, nil
	case schema.KindInteger:
		return &schema.IntegerField{Base: base, Min: raw.Min, Max: raw.Max}, nil
	case schema.KindBoolean:
		return &schema.BooleanField{Base: base}, nil
	case schema.KindObject:
		f := &schema.ObjectField{Base: base}
		if raw.Properties.Kind != 0 {
			props, err := p.schema(&raw.Properties, path)
			if err != nil {
				return nil, err
			}
			f.Properties = props
		}
		return f, nil
	case schema.KindArray:
		f := &schema.ArrayField{Base: base}
		if raw.Items.Kind != 0 {
			items, err := p.field("", &raw.Items, path+"[]")
			if err != nil {
				return nil, err
			}
			f.Items = items
		}
		return f, nil
	case "":
		return nil, fmt.Errorf("%w: %s: missing type (line %d)", ErrInvalidDefinition, path, node.Line)
	default:
		return nil, fmt.Errorf("%w: %s: %q (line %d)", ErrUnknownType, path, raw.Type, node.Line)
	}
}

func (p *parser) stringField(base schema.Base, raw rawField, path string) (schema.Field, error) {
	f := &schema.StringField{Base: base, Options: raw.Options}

	var err error
	if f.MinLen, err = length(raw.Min, path, "min"); err != nil {
		return nil, err
	}
	if f.MaxLen, err = length(raw.Max, path, "max"); err != nil {
		return nil, err
	}

	name := raw.Format
	if name == "" {
		name = raw.Test
	}
	if name != "" {
		if _, ok := p.formats.Lookup(format.Format(name)); !ok {
			return nil, fmt.Errorf("%w: %s: %q", ErrUnknownFormat, path, name)
		}
		f.Format = format.Format(name)
	}
	return f, nil
}

func (p *parser) checks(raw []rawCheck, path string) ([]schema.Check, error) {
	var out []schema.Check
	for i, rc := range raw {
		if rc.Use == "" {
			return nil, fmt.Errorf("%w: %s: check %d has no \"use\"", ErrInvalidDefinition, path, i)
		}
		fn, err := p.factories.Build(rc.Use, rc.Args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, schema.Check{Func: fn, Message: rc.Message})
	}
	if extra, ok := p.attached[path]; ok {
		p.used[path] = true
		out = append(out, extra...)
	}
	return out, nil
}

func length(v *float64, path, key string) (*int, error) {
	if v == nil {
		return nil, nil
	}
	if *v < 0 || math.Trunc(*v) != *v {
		return nil, fmt.Errorf("%w: %s: %s must be a non-negative integer for strings", ErrInvalidDefinition, path, key)
	}
	return schema.Int(int(*v)), nil
}

func requireMapping(node *yaml.Node, path string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: %s must be a mapping (line %d)", ErrInvalidDefinition, path, node.Line)
	}
	return nil
}

func knownKeys(node *yaml.Node, allowed []string, path string) error {
	for i := 0; i < len(node.Content); i += 2 {
		k := node.Content[i]
		if !slices.Contains(allowed, k.Value) {
			return fmt.Errorf("%w: %s: %q (line %d)", ErrUnknownKey, path, k.Value, k.Line)
		}
	}
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func where(prefix, fallback string) string {
	if prefix == "" {
		return fallback
	}
	return prefix
}

// deref follows YAML aliases to the anchored node.
func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
