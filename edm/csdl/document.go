// Package csdl loads edm models from schema documents: a compact YAML form
// and the OData CSDL XML form.
package csdl

// schemaDoc is the format-neutral form both loaders decode into.
type schemaDoc struct {
	Namespace       string           `yaml:"namespace"`
	Alias           string           `yaml:"alias"`
	TypeDefinitions []typeDefinition `yaml:"typeDefinitions"`
	EnumTypes       []enumType       `yaml:"enumTypes"`
	ComplexTypes    []structuredType `yaml:"complexTypes"`
	EntityTypes     []structuredType `yaml:"entityTypes"`
}

type typeDefinition struct {
	Name           string `yaml:"name"`
	UnderlyingType string `yaml:"underlyingType"`
	MaxLength      *int   `yaml:"maxLength"`
	Precision      *int   `yaml:"precision"`
	Scale          *int   `yaml:"scale"`
	Unicode        *bool  `yaml:"unicode"`
}

type enumType struct {
	Name           string       `yaml:"name"`
	UnderlyingType string       `yaml:"underlyingType"`
	IsFlags        bool         `yaml:"isFlags"`
	Members        []enumMember `yaml:"members"`
}

type enumMember struct {
	Name  string `yaml:"name"`
	Value *int64 `yaml:"value"`
}

type structuredType struct {
	Name                 string               `yaml:"name"`
	BaseType             string               `yaml:"baseType"`
	Properties           []property           `yaml:"properties"`
	NavigationProperties []navigationProperty `yaml:"navigationProperties"`
}

type property struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Nullable  *bool  `yaml:"nullable"`
	MaxLength *int   `yaml:"maxLength"`
	Precision *int   `yaml:"precision"`
	Scale     *int   `yaml:"scale"`
	Unicode   *bool  `yaml:"unicode"`
}

type navigationProperty struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable *bool  `yaml:"nullable"`
}
