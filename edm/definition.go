package edm

// TypeDefinition is a named alias of a primitive type carrying its own facets.
type TypeDefinition struct {
	Name       FullQualifiedName
	Underlying *PrimitiveType
	Facets     Facets
}

func (t *TypeDefinition) FullQualifiedName() FullQualifiedName { return t.Name }
func (t *TypeDefinition) Kind() TypeKind                       { return KindDefinition }

// ValueOfString parses the literal with the underlying type. The definition's
// own facets apply; facets declared on the referencing property do not.
func (t *TypeDefinition) ValueOfString(literal string) (any, error) {
	return t.Underlying.ValueOfString(literal, t.Facets)
}
