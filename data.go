package odatajson

// ValueType tags the shape of a Property value.
type ValueType int

const (
	ValuePrimitive ValueType = iota + 1
	ValueCollectionPrimitive
	ValueComplex
	ValueCollectionComplex
	ValueEnum
	ValueCollectionEnum
)

func (v ValueType) String() string {
	switch v {
	case ValuePrimitive:
		return "PRIMITIVE"
	case ValueCollectionPrimitive:
		return "COLLECTION_PRIMITIVE"
	case ValueComplex:
		return "COMPLEX"
	case ValueCollectionComplex:
		return "COLLECTION_COMPLEX"
	case ValueEnum:
		return "ENUM"
	case ValueCollectionEnum:
		return "COLLECTION_ENUM"
	default:
		return "UNKNOWN"
	}
}

func (v ValueType) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// IsCollection reports whether the tag denotes a COLLECTION_* value.
func (v ValueType) IsCollection() bool {
	return v == ValueCollectionPrimitive || v == ValueCollectionComplex || v == ValueCollectionEnum
}

// Property is a decoded structural property.
//
// Value holds, by tag:
//
//	PRIMITIVE            the edm literal value (int16, string, decimal.Decimal,
//	                     edm.TimeOfDayValue, ...)
//	ENUM                 edm.EnumValue
//	COMPLEX              *ComplexValue
//	COLLECTION_*         []any of the above, in input order
//
// A JSON null yields a nil Value with the tag of the declared type.
type Property struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ValueType ValueType `json:"valueType"`
	Value     any       `json:"value"`
}

func (p *Property) IsNull() bool { return p.Value == nil }

// Complex returns the value of a COMPLEX property, or nil.
func (p *Property) Complex() *ComplexValue {
	cv, _ := p.Value.(*ComplexValue)
	return cv
}

// Collection returns the elements of a COLLECTION_* property, or nil.
func (p *Property) Collection() []any {
	vs, _ := p.Value.([]any)
	return vs
}

// ComplexValue is an ordered sequence of properties.
type ComplexValue struct {
	Properties []*Property `json:"properties"`
}

// Property looks a property up by name.
func (c *ComplexValue) Property(name string) *Property { return findProperty(c.Properties, name) }

// LinkType discriminates navigation links.
type LinkType int

const (
	LinkEntityNavigation LinkType = iota + 1
	LinkEntitySetNavigation
	// Not produced by the deserializer.
	LinkAssociation
	LinkMediaEdit
)

func (t LinkType) String() string {
	switch t {
	case LinkEntityNavigation:
		return "ENTITY_NAVIGATION"
	case LinkEntitySetNavigation:
		return "ENTITY_SET_NAVIGATION"
	case LinkAssociation:
		return "ASSOCIATION"
	case LinkMediaEdit:
		return "MEDIA_EDIT"
	default:
		return "UNKNOWN"
	}
}

func (t LinkType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Link is a navigation link. For an expanded navigation at most one of
// InlineEntity and InlineEntitySet is set; both are nil for an expanded null.
type Link struct {
	Title           string     `json:"title"`
	Type            LinkType   `json:"type"`
	InlineEntity    *Entity    `json:"inlineEntity,omitempty"`
	InlineEntitySet *EntitySet `json:"inlineEntitySet,omitempty"`
}

// Entity is one decoded entity.
type Entity struct {
	Type            string      `json:"type"`
	Properties      []*Property `json:"properties"`
	NavigationLinks []*Link     `json:"navigationLinks,omitempty"`
}

// Property looks a property up by name.
func (e *Entity) Property(name string) *Property { return findProperty(e.Properties, name) }

// PropertyNames lists the decoded property names in declaration order.
func (e *Entity) PropertyNames() []string {
	names := make([]string, len(e.Properties))
	for i, p := range e.Properties {
		names[i] = p.Name
	}
	return names
}

// NavigationLink looks a navigation link up by title.
func (e *Entity) NavigationLink(name string) *Link {
	for _, l := range e.NavigationLinks {
		if l.Title == name {
			return l
		}
	}
	return nil
}

// EntitySet is an ordered sequence of entities.
type EntitySet struct {
	Entities []*Entity `json:"value"`
}

func (s *EntitySet) Len() int { return len(s.Entities) }

func findProperty(ps []*Property, name string) *Property {
	for _, p := range ps {
		if p.Name == name {
			return p
		}
	}
	return nil
}
