package declfile

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the root of a declaration file.
type File struct {
	// Package is the name of the generated package.
	Package string `yaml:"package,omitempty"`
	// Imports are the packages field types may refer to.
	Imports []ImportSpec `yaml:"imports,omitempty"`
	// Decls are the declarations, in output order.
	Decls []DeclSpec `yaml:"decls"`
}

// ImportSpec is an imported package.
type ImportSpec struct {
	Path string `yaml:"path"`
	Name string `yaml:"name,omitempty"`
}

// DeclSpec describes one type.
type DeclSpec struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind,omitempty"`
	TypeParams []TypeParamSpec `yaml:"type_params,omitempty"`
	Fields     []FieldSpec     `yaml:"fields,omitempty"`
	Variants   []VariantSpec   `yaml:"variants,omitempty"`
	Directives []string        `yaml:"directives,omitempty"`

	// Line is the line of the declaration in the file.
	Line int `yaml:"-"`
}

// Declaration kinds accepted by the kind key.
const (
	KindStruct = "struct"
	KindEnum   = "enum"
)

// UnmarshalYAML records the line of the declaration.
func (d *DeclSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain DeclSpec

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*d = DeclSpec(p)
	d.Line = node.Line

	return nil
}

// TypeParamSpec is a type parameter. An empty constraint means any.
type TypeParamSpec struct {
	Name       string `yaml:"name"`
	Constraint string `yaml:"constraint,omitempty"`
}

// FieldSpec is a field. An empty name means an embedded field.
type FieldSpec struct {
	Name string `yaml:"name,omitempty"`
	Type string `yaml:"type"`
}

// VariantSpec is an enum variant.
type VariantSpec struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields,omitempty"`
}

// UnmarshalYAML implements custom YAML unmarshaling for VariantSpec.
// Accepts:
//   - Single string: "FlagA"
//   - Mapping: {name: Square, fields: [{type: float64}]}
func (v *VariantSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}

		*v = VariantSpec{Name: name}

		return nil

	case yaml.MappingNode:
		type plain VariantSpec

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*v = VariantSpec(p)

		return nil

	default:
		return fmt.Errorf("line %d: variant must be a name or a mapping", node.Line)
	}
}

// MarshalYAML writes unit variants back as plain names.
func (v VariantSpec) MarshalYAML() (any, error) {
	if len(v.Fields) == 0 {
		return v.Name, nil
	}

	type plain VariantSpec

	return plain(v), nil
}
