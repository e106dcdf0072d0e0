package csdl_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/odatajson/edm"
	"github.com/reoring/odatajson/edm/csdl"
)

func TestLoadXML(t *testing.T) {
	m, err := csdl.Load(filepath.Join("testdata", "people.xml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	person, ok := m.EntityType("People.Person")
	if !ok {
		t.Fatalf("Person not found by alias")
	}
	if got := person.PropertyNames(); !reflect.DeepEqual(got, []string{"ID", "Balance", "Roles", "Home"}) {
		t.Fatalf("unexpected property order %v", got)
	}
	if person.Property("ID").IsNullable() {
		t.Fatalf("ID declared non-nullable")
	}
	bal := person.Property("Balance")
	if bal.Precision == nil || *bal.Precision != 10 || bal.Scale != nil {
		t.Fatalf("unexpected decimal facets %+v", bal)
	}
	roles := person.Property("Roles")
	if !roles.Collection || roles.Type.Kind() != edm.KindEnum {
		t.Fatalf("expected collection of enum, got %+v", roles)
	}
	if e := roles.Type.(*edm.EnumType); !e.IsFlags || len(e.Members) != 2 {
		t.Fatalf("unexpected enum %+v", e)
	}
	home := person.Property("Home").Type.(*edm.ComplexType)
	if home.Property("Street").MaxLength != nil {
		t.Fatalf("MaxLength=max should be unbounded")
	}
	if zip := home.Property("Zip").Type; zip.Kind() != edm.KindDefinition {
		t.Fatalf("expected type definition, got %v", zip.Kind())
	}
	mgr := person.NavigationProperty("Manager")
	if mgr.Target != person || mgr.Collection || mgr.IsNullable() {
		t.Fatalf("unexpected navigation %+v", mgr)
	}
	if !person.NavigationProperty("Reports").Collection {
		t.Fatalf("Reports should be a collection")
	}
	emp, _ := m.EntityType("com.example.people.Employee")
	if emp.Base != person || emp.Property("ID") == nil || emp.NavigationProperty("Manager") == nil {
		t.Fatalf("base type not linked")
	}
}

func TestLoadYAML_Fixture(t *testing.T) {
	m, err := csdl.Load(filepath.Join("..", "..", "testdata", "schema.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nested, ok := m.ComplexType("olingo.odata.test1.CTNested")
	if !ok {
		t.Fatalf("CTNested not found")
	}
	if got := nested.PropertyNames(); got[0] != "AdditionalPropString" {
		t.Fatalf("base properties should come first: %v", got)
	}
	var kinds []string
	for _, s := range m.Schemas() {
		for _, typ := range s.Types() {
			kinds = append(kinds, typ.Kind().String())
		}
	}
	if kinds[0] != "DEFINITION" || kinds[len(kinds)-1] != "ENTITY" {
		t.Fatalf("unexpected registration order %v", kinds)
	}
}

func TestLoadYAML_MultiDocument(t *testing.T) {
	in := `namespace: a
entityTypes:
  - name: Order
    properties:
      - {name: Item, type: b.Item}
---
namespace: b
complexTypes:
  - name: Item
    properties:
      - {name: Qty, type: Edm.Int32}
`
	m, err := csdl.LoadYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, _ := m.EntityType("a.Order")
	if o.Property("Item").Type.FullQualifiedName().String() != "b.Item" {
		t.Fatalf("cross-schema reference not resolved")
	}
}

func TestLoadYAML_Errors(t *testing.T) {
	cases := map[string]string{
		"unknown key":       "namespace: a\nentityTypes:\n  - name: X\n    nullable: false\n",
		"no namespace":      "entityTypes: []\n",
		"empty":             "",
		"unknown type":      "namespace: a\nentityTypes:\n  - name: X\n    properties:\n      - {name: P, type: a.Missing}\n",
		"missing type":      "namespace: a\nentityTypes:\n  - name: X\n    properties:\n      - {name: P}\n",
		"entity property":   "namespace: a\nentityTypes:\n  - name: X\n    properties:\n      - {name: P, type: a.X}\n",
		"bad navigation":    "namespace: a\ncomplexTypes:\n  - name: C\nentityTypes:\n  - name: X\n    navigationProperties:\n      - {name: N, type: a.C}\n",
		"complex nav":       "namespace: a\ncomplexTypes:\n  - name: C\n    navigationProperties:\n      - {name: N, type: a.C}\n",
		"unknown base":      "namespace: a\nentityTypes:\n  - name: X\n    baseType: a.Y\n",
		"base cycle":        "namespace: a\nentityTypes:\n  - name: X\n    baseType: a.Y\n  - name: Y\n    baseType: a.X\n",
		"duplicate type":    "namespace: a\nentityTypes:\n  - name: X\n  - name: X\n",
		"non-integral enum": "namespace: a\nenumTypes:\n  - name: E\n    underlyingType: Edm.String\n",
		"duplicate member":  "namespace: a\nenumTypes:\n  - name: E\n    members:\n      - {name: A}\n      - {name: A}\n",
		"definition":        "namespace: a\ntypeDefinitions:\n  - {name: D, underlyingType: a.Other}\n",
		"alias twice":       "namespace: a\nalias: A\n---\nnamespace: b\nalias: A\n",
	}
	for name, in := range cases {
		if _, err := csdl.LoadYAML(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadXML_Errors(t *testing.T) {
	cases := map[string]string{
		"not xml":    "{}",
		"no schema":  `<Edmx><DataServices/></Edmx>`,
		"bad facet":  `<Edmx><DataServices><Schema Namespace="a"><EntityType Name="X"><Property Name="P" Type="Edm.String" MaxLength="ten"/></EntityType></Schema></DataServices></Edmx>`,
		"bad bool":   `<Edmx><DataServices><Schema Namespace="a"><EntityType Name="X"><Property Name="P" Type="Edm.String" Nullable="maybe"/></EntityType></Schema></DataServices></Edmx>`,
		"bad member": `<Edmx><DataServices><Schema Namespace="a"><EnumType Name="E"><Member Name="A" Value="x"/></EnumType></Schema></DataServices></Edmx>`,
	}
	for name, in := range cases {
		if _, err := csdl.LoadXML(strings.NewReader(in)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoad_Extension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "schema.json")
	if err := os.WriteFile(p, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := csdl.Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := csdl.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected open error")
	}
}
