package csdl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
)

type edmx struct {
	DataServices struct {
		Schema []xmlSchema `xml:"Schema"`
	} `xml:"DataServices"`
}

type xmlSchema struct {
	Namespace      string              `xml:"Namespace,attr"`
	Alias          string              `xml:"Alias,attr"`
	TypeDefinition []xmlTypeDefinition `xml:"TypeDefinition"`
	EnumType       []xmlEnumType       `xml:"EnumType"`
	ComplexType    []xmlStructuredType `xml:"ComplexType"`
	EntityType     []xmlStructuredType `xml:"EntityType"`
}

type xmlFacets struct {
	MaxLength string `xml:"MaxLength,attr"`
	Precision string `xml:"Precision,attr"`
	Scale     string `xml:"Scale,attr"`
	Unicode   string `xml:"Unicode,attr"`
}

type xmlTypeDefinition struct {
	Name           string `xml:"Name,attr"`
	UnderlyingType string `xml:"UnderlyingType,attr"`
	xmlFacets
}

type xmlEnumType struct {
	Name           string `xml:"Name,attr"`
	UnderlyingType string `xml:"UnderlyingType,attr"`
	IsFlags        bool   `xml:"IsFlags,attr"`
	Member         []struct {
		Name  string  `xml:"Name,attr"`
		Value *string `xml:"Value,attr"`
	} `xml:"Member"`
}

type xmlStructuredType struct {
	Name     string `xml:"Name,attr"`
	BaseType string `xml:"BaseType,attr"`
	Property []struct {
		Name     string `xml:"Name,attr"`
		Type     string `xml:"Type,attr"`
		Nullable string `xml:"Nullable,attr"`
		xmlFacets
	} `xml:"Property"`
	NavigationProperty []struct {
		Name     string `xml:"Name,attr"`
		Type     string `xml:"Type,attr"`
		Nullable string `xml:"Nullable,attr"`
	} `xml:"NavigationProperty"`
}

// loadXMLDocs reads an edmx:Edmx CSDL document into the neutral form.
func loadXMLDocs(r io.Reader) ([]schemaDoc, error) {
	var root edmx
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("csdl: xml: %w", err)
	}
	if len(root.DataServices.Schema) == 0 {
		return nil, errors.New("csdl: no Schema element found")
	}
	docs := make([]schemaDoc, 0, len(root.DataServices.Schema))
	for _, xs := range root.DataServices.Schema {
		doc, err := xs.toDoc()
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (xs xmlSchema) toDoc() (schemaDoc, error) {
	doc := schemaDoc{Namespace: xs.Namespace, Alias: xs.Alias}
	for _, td := range xs.TypeDefinition {
		f, err := td.facets()
		if err != nil {
			return doc, fmt.Errorf("csdl: TypeDefinition %s: %w", td.Name, err)
		}
		doc.TypeDefinitions = append(doc.TypeDefinitions, typeDefinition{
			Name: td.Name, UnderlyingType: td.UnderlyingType,
			MaxLength: f.MaxLength, Precision: f.Precision, Scale: f.Scale, Unicode: f.Unicode,
		})
	}
	for _, et := range xs.EnumType {
		e := enumType{Name: et.Name, UnderlyingType: et.UnderlyingType, IsFlags: et.IsFlags}
		for _, m := range et.Member {
			mm := enumMember{Name: m.Name}
			if m.Value != nil {
				v, err := strconv.ParseInt(*m.Value, 10, 64)
				if err != nil {
					return doc, fmt.Errorf("csdl: EnumType %s member %s: %w", et.Name, m.Name, err)
				}
				mm.Value = &v
			}
			e.Members = append(e.Members, mm)
		}
		doc.EnumTypes = append(doc.EnumTypes, e)
	}
	var err error
	if doc.ComplexTypes, err = convertStructured(xs.ComplexType); err != nil {
		return doc, err
	}
	if doc.EntityTypes, err = convertStructured(xs.EntityType); err != nil {
		return doc, err
	}
	return doc, nil
}

func convertStructured(in []xmlStructuredType) ([]structuredType, error) {
	out := make([]structuredType, 0, len(in))
	for _, xt := range in {
		st := structuredType{Name: xt.Name, BaseType: xt.BaseType}
		for _, xp := range xt.Property {
			f, err := xp.facets()
			if err != nil {
				return nil, fmt.Errorf("csdl: %s.%s: %w", xt.Name, xp.Name, err)
			}
			nullable, err := optionalBool(xp.Nullable)
			if err != nil {
				return nil, fmt.Errorf("csdl: %s.%s: %w", xt.Name, xp.Name, err)
			}
			st.Properties = append(st.Properties, property{
				Name: xp.Name, Type: xp.Type, Nullable: nullable,
				MaxLength: f.MaxLength, Precision: f.Precision, Scale: f.Scale, Unicode: f.Unicode,
			})
		}
		for _, xn := range xt.NavigationProperty {
			nullable, err := optionalBool(xn.Nullable)
			if err != nil {
				return nil, fmt.Errorf("csdl: %s.%s: %w", xt.Name, xn.Name, err)
			}
			st.NavigationProperties = append(st.NavigationProperties, navigationProperty{
				Name: xn.Name, Type: xn.Type, Nullable: nullable,
			})
		}
		out = append(out, st)
	}
	return out, nil
}

type parsedFacets struct {
	MaxLength, Precision, Scale *int
	Unicode                     *bool
}

func (f xmlFacets) facets() (parsedFacets, error) {
	var out parsedFacets
	var err error
	// MaxLength="max" means unbounded.
	if f.MaxLength != "max" {
		if out.MaxLength, err = optionalInt(f.MaxLength); err != nil {
			return out, err
		}
	}
	if out.Precision, err = optionalInt(f.Precision); err != nil {
		return out, err
	}
	// Scale="variable" means unbounded.
	if f.Scale != "variable" {
		if out.Scale, err = optionalInt(f.Scale); err != nil {
			return out, err
		}
	}
	if out.Unicode, err = optionalBool(f.Unicode); err != nil {
		return out, err
	}
	return out, nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalBool(s string) (*bool, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
