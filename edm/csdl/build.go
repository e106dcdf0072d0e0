package csdl

import (
	"fmt"

	"github.com/reoring/odatajson/edm"
)

// build turns decoded documents into a model. Types are declared first so
// that properties can reference types declared later or in other schemas.
func build(docs []schemaDoc) (*edm.Model, error) {
	model, err := edm.NewModel()
	if err != nil {
		return nil, err
	}
	b := &builder{model: model}
	for i := range docs {
		if err := b.declare(&docs[i]); err != nil {
			return nil, err
		}
	}
	for i := range docs {
		if err := b.linkBaseTypes(&docs[i]); err != nil {
			return nil, err
		}
	}
	for i := range docs {
		if err := b.addMembers(&docs[i]); err != nil {
			return nil, err
		}
	}
	return model, nil
}

type builder struct {
	model *edm.Model
}

func (b *builder) declare(doc *schemaDoc) error {
	if doc.Namespace == "" {
		return fmt.Errorf("csdl: schema without namespace")
	}
	s := edm.NewSchema(doc.Namespace, doc.Alias)
	if err := b.model.AddSchema(s); err != nil {
		return fmt.Errorf("csdl: %w", err)
	}
	for _, td := range doc.TypeDefinitions {
		under, err := primitiveRef(td.UnderlyingType)
		if err != nil {
			return fmt.Errorf("csdl: TypeDefinition %s: %w", td.Name, err)
		}
		t := &edm.TypeDefinition{
			Name:       edm.NewFQN(doc.Namespace, td.Name),
			Underlying: under,
			Facets:     edm.Facets{MaxLength: td.MaxLength, Precision: td.Precision, Scale: td.Scale, Unicode: td.Unicode},
		}
		if err := s.Add(t); err != nil {
			return fmt.Errorf("csdl: %w", err)
		}
	}
	for _, et := range doc.EnumTypes {
		t, err := enumOf(doc.Namespace, et)
		if err != nil {
			return err
		}
		if err := s.Add(t); err != nil {
			return fmt.Errorf("csdl: %w", err)
		}
	}
	for _, ct := range doc.ComplexTypes {
		if err := s.Add(edm.NewComplexType(edm.NewFQN(doc.Namespace, ct.Name))); err != nil {
			return fmt.Errorf("csdl: %w", err)
		}
	}
	for _, et := range doc.EntityTypes {
		if err := s.Add(edm.NewEntityType(edm.NewFQN(doc.Namespace, et.Name))); err != nil {
			return fmt.Errorf("csdl: %w", err)
		}
	}
	return nil
}

func enumOf(namespace string, et enumType) (*edm.EnumType, error) {
	ref := et.UnderlyingType
	if ref == "" {
		ref = "Edm.Int32"
	}
	under, err := primitiveRef(ref)
	if err != nil {
		return nil, fmt.Errorf("csdl: EnumType %s: %w", et.Name, err)
	}
	switch k, _ := under.PrimitiveKind(); k {
	case edm.Byte, edm.SByte, edm.Int16, edm.Int32, edm.Int64:
	default:
		return nil, fmt.Errorf("csdl: EnumType %s: underlying type %s is not integral", et.Name, ref)
	}
	t := &edm.EnumType{Name: edm.NewFQN(namespace, et.Name), Underlying: under, IsFlags: et.IsFlags}
	for i, m := range et.Members {
		v := int64(i)
		if m.Value != nil {
			v = *m.Value
		}
		if _, dup := t.Member(m.Name); dup {
			return nil, fmt.Errorf("csdl: EnumType %s: duplicate member %s", et.Name, m.Name)
		}
		t.Members = append(t.Members, edm.EnumMember{Name: m.Name, Value: v})
	}
	return t, nil
}

func primitiveRef(ref string) (*edm.PrimitiveType, error) {
	fqn := edm.ParseFQN(ref)
	if fqn.Namespace != edm.Namespace {
		return nil, fmt.Errorf("%s is not a primitive type", ref)
	}
	k, err := edm.PrimitiveKindByName(fqn.Name)
	if err != nil {
		return nil, err
	}
	return edm.Primitive(k), nil
}

func (b *builder) linkBaseTypes(doc *schemaDoc) error {
	for _, ct := range doc.ComplexTypes {
		if ct.BaseType == "" {
			continue
		}
		t, _ := b.model.ComplexType(doc.Namespace + "." + ct.Name)
		base, ok := b.model.ComplexType(ct.BaseType)
		if !ok {
			return fmt.Errorf("csdl: complex type %s: unknown base type %s", ct.Name, ct.BaseType)
		}
		for p := base; p != nil; p = p.Base {
			if p == t {
				return fmt.Errorf("csdl: complex type %s: base type cycle", ct.Name)
			}
		}
		t.Base = base
	}
	for _, et := range doc.EntityTypes {
		if et.BaseType == "" {
			continue
		}
		t, _ := b.model.EntityType(doc.Namespace + "." + et.Name)
		base, ok := b.model.EntityType(et.BaseType)
		if !ok {
			return fmt.Errorf("csdl: entity type %s: unknown base type %s", et.Name, et.BaseType)
		}
		for p := base; p != nil; p = p.Base {
			if p == t {
				return fmt.Errorf("csdl: entity type %s: base type cycle", et.Name)
			}
		}
		t.Base = base
	}
	return nil
}

func (b *builder) addMembers(doc *schemaDoc) error {
	for _, ct := range doc.ComplexTypes {
		t, _ := b.model.ComplexType(doc.Namespace + "." + ct.Name)
		if len(ct.NavigationProperties) > 0 {
			return fmt.Errorf("csdl: complex type %s: navigation properties are not supported on complex types", ct.Name)
		}
		for _, p := range ct.Properties {
			prop, err := b.property(p)
			if err != nil {
				return fmt.Errorf("csdl: %s.%s: %w", ct.Name, p.Name, err)
			}
			if err := t.AddProperty(prop); err != nil {
				return err
			}
		}
	}
	for _, et := range doc.EntityTypes {
		t, _ := b.model.EntityType(doc.Namespace + "." + et.Name)
		for _, p := range et.Properties {
			prop, err := b.property(p)
			if err != nil {
				return fmt.Errorf("csdl: %s.%s: %w", et.Name, p.Name, err)
			}
			if err := t.AddProperty(prop); err != nil {
				return err
			}
		}
		for _, n := range et.NavigationProperties {
			ref, collection := edm.CollectionOf(n.Type)
			target, ok := b.model.EntityType(ref)
			if !ok {
				return fmt.Errorf("csdl: %s.%s: %s is not an entity type", et.Name, n.Name, ref)
			}
			nav := &edm.NavigationProperty{Name: n.Name, Target: target, Collection: collection, Nullable: n.Nullable}
			if err := t.AddNavigationProperty(nav); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) property(p property) (*edm.Property, error) {
	if p.Type == "" {
		return nil, fmt.Errorf("missing type")
	}
	ref, collection := edm.CollectionOf(p.Type)
	t, ok := b.model.Lookup(ref)
	if !ok {
		return nil, fmt.Errorf("unknown type %s", ref)
	}
	if t.Kind() == edm.KindEntity {
		return nil, fmt.Errorf("%s is an entity type; use a navigation property", ref)
	}
	return &edm.Property{
		Name:       p.Name,
		Type:       t,
		Collection: collection,
		Nullable:   p.Nullable,
		MaxLength:  p.MaxLength,
		Precision:  p.Precision,
		Scale:      p.Scale,
		Unicode:    p.Unicode,
	}, nil
}
