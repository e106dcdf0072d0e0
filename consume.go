package odatajson

import (
	"context"

	"github.com/reoring/odatajson/edm"
	eng "github.com/reoring/odatajson/internal/engine"
)

// decoder walks one parsed document. It carries no state besides the
// caller's context, so every method is a pure function of its arguments.
type decoder struct {
	ctx context.Context
}

func newDecoder(ctx context.Context) decoder {
	if ctx == nil {
		ctx = context.Background()
	}
	return decoder{ctx: ctx}
}

func (d decoder) entityDocument(t *edm.EntityType, root *eng.Node) (*Entity, error) {
	if !root.IsObject() {
		return nil, newError(KeyInvalidEntity, "/", map[string]any{"got": root.Kind.String()}, nil)
	}
	return d.entity(t, root, rootPath)
}

func (d decoder) entitySetDocument(t *edm.EntityType, root *eng.Node) (*EntitySet, error) {
	if !root.IsObject() {
		return nil, newError(KeyValueArrayNotPresent, "/", nil, nil)
	}
	value, ok := root.Get("value")
	if !ok {
		return nil, newError(KeyValueArrayNotPresent, "/", nil, nil)
	}
	p := rootPath.Field("value")
	if !value.IsArray() {
		return nil, newError(KeyValueTagMustBeArray, p.Pointer(), map[string]any{"got": value.Kind.String()}, nil)
	}
	set, err := d.entityArray(t, value, p)
	if err != nil {
		return nil, err
	}
	if err := checkRemaining(root, visited{"value": {}}, rootPath); err != nil {
		return nil, err
	}
	return set, nil
}

// entityArray decodes every element of arr as an entity of type t.
func (d decoder) entityArray(t *edm.EntityType, arr *eng.Node, p pathRef) (*EntitySet, error) {
	set := &EntitySet{Entities: make([]*Entity, 0, len(arr.Elems))}
	for i, el := range arr.Elems {
		ep := p.Index(i)
		if !el.IsObject() {
			return nil, newError(KeyInvalidEntity, ep.Pointer(), map[string]any{"got": el.Kind.String()}, nil)
		}
		e, err := d.entity(t, el, ep)
		if err != nil {
			return nil, err
		}
		set.Entities = append(set.Entities, e)
	}
	return set, nil
}

func (d decoder) entity(t *edm.EntityType, obj *eng.Node, p pathRef) (*Entity, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, err
	}
	e := &Entity{Type: t.FullQualifiedName().String()}
	seen := make(visited, len(obj.Fields))

	for _, name := range t.PropertyNames() {
		n, ok := obj.Get(name)
		if !ok {
			continue
		}
		prop, err := d.property(t.Property(name), n, p.Field(name))
		if err != nil {
			return nil, err
		}
		e.Properties = append(e.Properties, prop)
		seen.add(name)
	}

	for _, name := range t.NavigationPropertyNames() {
		n, ok := obj.Get(name)
		if !ok {
			continue
		}
		link, err := d.navigation(t.NavigationProperty(name), n, p.Field(name))
		if err != nil {
			return nil, err
		}
		e.NavigationLinks = append(e.NavigationLinks, link)
		seen.add(name)
	}

	if err := checkRemaining(obj, seen, p); err != nil {
		return nil, err
	}
	return e, nil
}

func (d decoder) navigation(nav *edm.NavigationProperty, n *eng.Node, p pathRef) (*Link, error) {
	switch {
	case n.IsNull() && !nav.IsNullable():
		return nil, propertyError(KeyInvalidNullProperty, p, nav.Name, nil)
	case n.IsArray() && nav.Collection:
		set, err := d.entityArray(nav.Target, n, p)
		if err != nil {
			return nil, err
		}
		return &Link{Title: nav.Name, Type: LinkEntitySetNavigation, InlineEntitySet: set}, nil
	case (n.IsObject() || n.IsNull()) && !nav.Collection:
		link := &Link{Title: nav.Name, Type: LinkEntityNavigation}
		if n.IsObject() {
			e, err := d.entity(nav.Target, n, p)
			if err != nil {
				return nil, err
			}
			link.InlineEntity = e
		}
		return link, nil
	default:
		return nil, propertyError(KeyInvalidValueForNavigationProperty, p, nav.Name, nil)
	}
}

// complexValue decodes obj against a complex type with the same
// consumption discipline as an entity.
func (d decoder) complexValue(prop *edm.Property, t *edm.ComplexType, n *eng.Node, p pathRef) (*ComplexValue, error) {
	if !n.IsObject() {
		return nil, propertyError(KeyInvalidValueForProperty, p, prop.Name, nil)
	}
	cv := &ComplexValue{}
	seen := make(visited, len(n.Fields))
	for _, name := range t.PropertyNames() {
		child, ok := n.Get(name)
		if !ok {
			continue
		}
		pr, err := d.property(t.Property(name), child, p.Field(name))
		if err != nil {
			return nil, err
		}
		cv.Properties = append(cv.Properties, pr)
		seen.add(name)
	}
	if err := checkRemaining(n, seen, p); err != nil {
		return nil, err
	}
	return cv, nil
}
