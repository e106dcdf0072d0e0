package odatajson

import (
	"github.com/reoring/odatajson/edm"
	eng "github.com/reoring/odatajson/internal/engine"
)

// property decodes one declared structural property. The reader is chosen
// once by the declared type's kind.
func (d decoder) property(prop *edm.Property, n *eng.Node, p pathRef) (*Property, error) {
	if n.IsNull() && !prop.IsNullable() {
		return nil, propertyError(KeyInvalidNullProperty, p, prop.Name, nil)
	}
	vt, read, err := d.reader(prop, p)
	if err != nil {
		return nil, err
	}
	out := &Property{Name: prop.Name, Type: prop.Type.FullQualifiedName().String(), ValueType: vt}
	if n.IsNull() {
		return out, nil
	}
	if !prop.Collection {
		if out.Value, err = read(n, p); err != nil {
			return nil, err
		}
		return out, nil
	}
	if !n.IsArray() {
		return nil, propertyError(KeyInvalidValueForProperty, p, prop.Name, nil)
	}
	values := make([]any, 0, len(n.Elems))
	for i, el := range n.Elems {
		ep := p.Index(i)
		if el.IsNull() {
			if !prop.IsNullable() {
				return nil, propertyError(KeyInvalidNullProperty, ep, prop.Name, nil)
			}
			values = append(values, nil)
			continue
		}
		v, err := read(el, ep)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	out.Value = values
	return out, nil
}

type valueReader func(n *eng.Node, p pathRef) (any, error)

func (d decoder) reader(prop *edm.Property, p pathRef) (ValueType, valueReader, error) {
	tag := func(single, collection ValueType) ValueType {
		if prop.Collection {
			return collection
		}
		return single
	}
	switch t := prop.Type.(type) {
	case *edm.PrimitiveType:
		return tag(ValuePrimitive, ValueCollectionPrimitive), func(n *eng.Node, p pathRef) (any, error) {
			return readPrimitive(prop, t, n, p)
		}, nil
	case *edm.TypeDefinition:
		return tag(ValuePrimitive, ValueCollectionPrimitive), func(n *eng.Node, p pathRef) (any, error) {
			return readDefinition(prop, t, n, p)
		}, nil
	case *edm.EnumType:
		return tag(ValueEnum, ValueCollectionEnum), func(n *eng.Node, p pathRef) (any, error) {
			return readEnum(prop, t, n, p)
		}, nil
	case *edm.ComplexType:
		return tag(ValueComplex, ValueCollectionComplex), func(n *eng.Node, p pathRef) (any, error) {
			return d.complexValue(prop, t, n, p)
		}, nil
	default:
		kind := "nil"
		if prop.Type != nil {
			kind = prop.Type.Kind().String()
		}
		return 0, nil, newError(KeyInvalidTypeForProperty, p.Pointer(), map[string]any{"property": prop.Name, "kind": kind}, nil)
	}
}

func readPrimitive(prop *edm.Property, t *edm.PrimitiveType, n *eng.Node, p pathRef) (any, error) {
	if err := checkJSONKind(prop, t, n, p); err != nil {
		return nil, err
	}
	v, err := t.ValueOfString(n.Text(), prop.Facets())
	if err != nil {
		return nil, propertyError(KeyInvalidValueForProperty, p, prop.Name, err)
	}
	return v, nil
}

// readDefinition checks the JSON kind against the underlying primitive type
// and parses with the definition's own facets.
func readDefinition(prop *edm.Property, t *edm.TypeDefinition, n *eng.Node, p pathRef) (any, error) {
	if err := checkJSONKind(prop, t.Underlying, n, p); err != nil {
		return nil, err
	}
	v, err := t.ValueOfString(n.Text())
	if err != nil {
		return nil, propertyError(KeyInvalidValueForProperty, p, prop.Name, err)
	}
	return v, nil
}

// readEnum parses against the enumeration's members. Facets declared on the
// property do not constrain enum literals and are not applied.
func readEnum(prop *edm.Property, t *edm.EnumType, n *eng.Node, p pathRef) (any, error) {
	if err := checkJSONKind(prop, t.Underlying, n, p); err != nil {
		return nil, err
	}
	v, err := t.ValueOfString(n.Text())
	if err != nil {
		return nil, propertyError(KeyInvalidValueForProperty, p, prop.Name, err)
	}
	return v, nil
}

// requiredJSONKind maps each supported primitive kind to the JSON kind its
// values must arrive as.
var requiredJSONKind = map[edm.PrimitiveKind]eng.NodeKind{
	edm.Boolean: eng.NodeBool,

	edm.Int16:   eng.NodeNumber,
	edm.Int32:   eng.NodeNumber,
	edm.Int64:   eng.NodeNumber,
	edm.Byte:    eng.NodeNumber,
	edm.SByte:   eng.NodeNumber,
	edm.Single:  eng.NodeNumber,
	edm.Double:  eng.NodeNumber,
	edm.Decimal: eng.NodeNumber,

	edm.String:         eng.NodeString,
	edm.Binary:         eng.NodeString,
	edm.Date:           eng.NodeString,
	edm.DateTimeOffset: eng.NodeString,
	edm.Duration:       eng.NodeString,
	edm.Guid:           eng.NodeString,
	edm.TimeOfDay:      eng.NodeString,
}

func checkJSONKind(prop *edm.Property, t *edm.PrimitiveType, n *eng.Node, p pathRef) error {
	if !n.IsValue() {
		return propertyError(KeyInvalidValueForProperty, p, prop.Name, nil)
	}
	if t == nil {
		return newError(KeyUnknownPrimitiveType, p.Pointer(), map[string]any{"type": "", "property": prop.Name}, nil)
	}
	k, err := t.PrimitiveKind()
	if err != nil {
		return newError(KeyUnknownPrimitiveType, p.Pointer(), map[string]any{"type": t.Name, "property": prop.Name}, err)
	}
	want, ok := requiredJSONKind[k]
	if !ok {
		return newError(KeyNotImplemented, p.Pointer(), map[string]any{"field": prop.Name, "type": k.String()}, nil)
	}
	if n.Kind != want {
		return newError(KeyInvalidValueForProperty, p.Pointer(), map[string]any{"property": prop.Name, "got": n.Kind.String()}, nil)
	}
	return nil
}
