package edm

import "fmt"

// Property is a structural property of a complex or entity type.
type Property struct {
	Name       string
	Type       Type
	Collection bool
	// Nullable defaults to true when nil.
	Nullable  *bool
	MaxLength *int
	Precision *int
	Scale     *int
	Unicode   *bool
}

// IsNullable applies the OData default (nullable unless declared otherwise).
func (p *Property) IsNullable() bool { return p.Nullable == nil || *p.Nullable }

// Facets returns the property's facets for literal parsing.
func (p *Property) Facets() Facets {
	return Facets{MaxLength: p.MaxLength, Precision: p.Precision, Scale: p.Scale, Unicode: p.Unicode}
}

// NavigationProperty relates an entity type to another entity type.
type NavigationProperty struct {
	Name       string
	Target     *EntityType
	Collection bool
	Nullable   *bool
}

func (n *NavigationProperty) IsNullable() bool { return n.Nullable == nil || *n.Nullable }

// structured holds the declaration-ordered properties shared by complex and
// entity types. Base type properties come first.
type structured struct {
	name       FullQualifiedName
	properties []*Property
	index      map[string]*Property
}

func (s *structured) addProperty(p *Property) error {
	if p == nil || p.Name == "" {
		return fmt.Errorf("edm: %s: property without a name", s.name)
	}
	if p.Type == nil {
		return fmt.Errorf("edm: %s: property %s has no type", s.name, p.Name)
	}
	if s.index == nil {
		s.index = make(map[string]*Property)
	}
	if _, dup := s.index[p.Name]; dup {
		return fmt.Errorf("edm: %s: duplicate property %s", s.name, p.Name)
	}
	s.index[p.Name] = p
	s.properties = append(s.properties, p)
	return nil
}

// ComplexType is a structured type without identity.
type ComplexType struct {
	structured
	Base *ComplexType
}

// NewComplexType creates an empty complex type.
func NewComplexType(name FullQualifiedName) *ComplexType {
	return &ComplexType{structured: structured{name: name}}
}

func (t *ComplexType) FullQualifiedName() FullQualifiedName { return t.name }
func (t *ComplexType) Kind() TypeKind                       { return KindComplex }

// AddProperty appends a property declaration.
func (t *ComplexType) AddProperty(p *Property) error {
	if t.Base != nil && t.Base.Property(p.Name) != nil {
		return fmt.Errorf("edm: %s: property %s redeclares a base property", t.name, p.Name)
	}
	return t.addProperty(p)
}

// PropertyNames lists declared property names, base type first.
func (t *ComplexType) PropertyNames() []string {
	var names []string
	if t.Base != nil {
		names = t.Base.PropertyNames()
	}
	for _, p := range t.properties {
		names = append(names, p.Name)
	}
	return names
}

// Property looks a property up by name, including base type properties.
func (t *ComplexType) Property(name string) *Property {
	if p, ok := t.index[name]; ok {
		return p
	}
	if t.Base != nil {
		return t.Base.Property(name)
	}
	return nil
}

// EntityType is a structured type with navigation properties.
type EntityType struct {
	structured
	Base       *EntityType
	navigation []*NavigationProperty
	navIndex   map[string]*NavigationProperty
}

// NewEntityType creates an empty entity type.
func NewEntityType(name FullQualifiedName) *EntityType {
	return &EntityType{structured: structured{name: name}}
}

func (t *EntityType) FullQualifiedName() FullQualifiedName { return t.name }
func (t *EntityType) Kind() TypeKind                       { return KindEntity }

// AddProperty appends a structural property declaration.
func (t *EntityType) AddProperty(p *Property) error {
	if t.declared(p.Name) {
		return fmt.Errorf("edm: %s: %s is already declared", t.name, p.Name)
	}
	return t.addProperty(p)
}

// AddNavigationProperty appends a navigation property declaration.
func (t *EntityType) AddNavigationProperty(n *NavigationProperty) error {
	if n == nil || n.Name == "" {
		return fmt.Errorf("edm: %s: navigation property without a name", t.name)
	}
	if n.Target == nil {
		return fmt.Errorf("edm: %s: navigation property %s has no target", t.name, n.Name)
	}
	if t.declared(n.Name) {
		return fmt.Errorf("edm: %s: %s is already declared", t.name, n.Name)
	}
	if t.navIndex == nil {
		t.navIndex = make(map[string]*NavigationProperty)
	}
	t.navIndex[n.Name] = n
	t.navigation = append(t.navigation, n)
	return nil
}

func (t *EntityType) declared(name string) bool {
	return t.Property(name) != nil || t.NavigationProperty(name) != nil
}

// PropertyNames lists structural property names, base type first.
func (t *EntityType) PropertyNames() []string {
	var names []string
	if t.Base != nil {
		names = t.Base.PropertyNames()
	}
	for _, p := range t.properties {
		names = append(names, p.Name)
	}
	return names
}

// Property looks a structural property up by name.
func (t *EntityType) Property(name string) *Property {
	if p, ok := t.index[name]; ok {
		return p
	}
	if t.Base != nil {
		return t.Base.Property(name)
	}
	return nil
}

// NavigationPropertyNames lists navigation property names, base type first.
func (t *EntityType) NavigationPropertyNames() []string {
	var names []string
	if t.Base != nil {
		names = t.Base.NavigationPropertyNames()
	}
	for _, n := range t.navigation {
		names = append(names, n.Name)
	}
	return names
}

// NavigationProperty looks a navigation property up by name.
func (t *EntityType) NavigationProperty(name string) *NavigationProperty {
	if n, ok := t.navIndex[name]; ok {
		return n
	}
	if t.Base != nil {
		return t.Base.NavigationProperty(name)
	}
	return nil
}
