package edm_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/odatajson/edm"
)

func flagsEnum() *edm.EnumType {
	return &edm.EnumType{
		Name:       edm.NewFQN("ns", "Color"),
		Underlying: edm.Primitive(edm.Int16),
		IsFlags:    true,
		Members: []edm.EnumMember{
			{Name: "None", Value: 0},
			{Name: "Red", Value: 1},
			{Name: "Green", Value: 2},
			{Name: "Blue", Value: 4},
		},
	}
}

func TestEnum_ValueOfString(t *testing.T) {
	e := flagsEnum()
	v, err := e.ValueOfString("Red, Blue")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Value != 5 || v.String() != "Red,Blue" || v.Type != "ns.Color" {
		t.Fatalf("unexpected value %+v", v)
	}
	v, err = e.ValueOfString("6")
	if err != nil || !reflect.DeepEqual(v.Names, []string{"Green", "Blue"}) {
		t.Fatalf("expected numeric flags to decompose, got %+v, %v", v, err)
	}
	v, err = e.ValueOfString("0")
	if err != nil || v.String() != "None" {
		t.Fatalf("expected zero member, got %+v, %v", v, err)
	}
	var pe *edm.PrimitiveTypeError
	if _, err := e.ValueOfString("8"); !errors.As(err, &pe) {
		t.Fatalf("expected leftover bits to fail, got %v", err)
	}
	if _, err := e.ValueOfString("Red,Purple"); !errors.As(err, &pe) {
		t.Fatalf("expected unknown member to fail, got %v", err)
	}

	e.IsFlags = false
	if v, err := e.ValueOfString("2"); err != nil || v.String() != "Green" {
		t.Fatalf("expected member by value, got %+v, %v", v, err)
	}
	if _, err := e.ValueOfString("Red,Blue"); err == nil {
		t.Fatalf("expected lists to fail on a non-flags enum")
	}
	if b, _ := (edm.EnumValue{Names: []string{"Red"}}).MarshalText(); string(b) != "Red" {
		t.Fatalf("unexpected text %s", b)
	}
}

func TestTypeDefinition_UsesOwnFacets(t *testing.T) {
	td := &edm.TypeDefinition{
		Name:       edm.NewFQN("ns", "Code"),
		Underlying: edm.Primitive(edm.String),
		Facets:     edm.Facets{MaxLength: edm.Int(2)},
	}
	if _, err := td.ValueOfString("ab"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := td.ValueOfString("abc"); err == nil {
		t.Fatalf("expected max length violation")
	}
}

func TestParseFQN(t *testing.T) {
	cases := map[string]edm.FullQualifiedName{
		"a.b.C": {Namespace: "a.b", Name: "C"},
		"C":     {Name: "C"},
	}
	for in, want := range cases {
		if got := edm.ParseFQN(in); got != want {
			t.Fatalf("%s: expected %+v, got %+v", in, want, got)
		}
		if got := edm.ParseFQN(in).String(); got != in {
			t.Fatalf("%s: round trip gave %s", in, got)
		}
	}
	if ref, ok := edm.CollectionOf("Collection(Edm.Int16)"); !ok || ref != "Edm.Int16" {
		t.Fatalf("unexpected collection ref %s %v", ref, ok)
	}
	if _, ok := edm.CollectionOf("Edm.Int16"); ok {
		t.Fatalf("plain ref reported as collection")
	}
}

func TestModel_LookupByNamespaceAndAlias(t *testing.T) {
	s := edm.NewSchema("com.example", "Ex")
	person := edm.NewEntityType(edm.NewFQN("com.example", "Person"))
	addr := edm.NewComplexType(edm.NewFQN("com.example", "Address"))
	if err := s.Add(person); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(addr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Add(edm.NewEntityType(edm.NewFQN("other", "X"))); err == nil {
		t.Fatalf("expected foreign namespace to fail")
	}
	if err := s.Add(edm.NewEntityType(edm.NewFQN("com.example", "Person"))); err == nil {
		t.Fatalf("expected duplicate type to fail")
	}
	m, err := edm.NewModel(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"com.example.Person", "Ex.Person"} {
		if got, ok := m.EntityType(name); !ok || got != person {
			t.Fatalf("%s: lookup failed", name)
		}
	}
	if _, ok := m.EntityType("Ex.Address"); ok {
		t.Fatalf("complex type returned as entity type")
	}
	if got, ok := m.ComplexType("Ex.Address"); !ok || got != addr {
		t.Fatalf("complex lookup failed")
	}
	if got, ok := m.Lookup("Edm.Guid"); !ok || got.Kind() != edm.KindPrimitive {
		t.Fatalf("built-in lookup failed")
	}
	if _, ok := m.Lookup("Edm.Nope"); ok {
		t.Fatalf("unknown built-in resolved")
	}
	if _, ok := m.Lookup("nowhere.T"); ok {
		t.Fatalf("unknown namespace resolved")
	}
	if err := m.AddSchema(edm.NewSchema("Ex", "")); err == nil {
		t.Fatalf("expected namespace colliding with an alias to fail")
	}
	if len(m.Schemas()) != 1 || len(s.Types()) != 2 {
		t.Fatalf("unexpected registry contents")
	}
}

func TestEntityType_DeclarationOrder(t *testing.T) {
	base := edm.NewEntityType(edm.NewFQN("ns", "Base"))
	if err := base.AddProperty(&edm.Property{Name: "ID", Type: edm.Primitive(edm.Int32)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	derived := edm.NewEntityType(edm.NewFQN("ns", "Derived"))
	derived.Base = base
	for _, name := range []string{"Z", "A"} {
		if err := derived.AddProperty(&edm.Property{Name: name, Type: edm.Primitive(edm.String)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if err := derived.AddNavigationProperty(&edm.NavigationProperty{Name: "Parent", Target: base}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := derived.PropertyNames(); !reflect.DeepEqual(got, []string{"ID", "Z", "A"}) {
		t.Fatalf("unexpected order %v", got)
	}
	if derived.Property("ID") == nil || derived.NavigationProperty("Parent") == nil {
		t.Fatalf("inherited or navigation lookup failed")
	}

	if err := derived.AddProperty(&edm.Property{Name: "ID", Type: edm.Primitive(edm.Int32)}); err == nil {
		t.Fatalf("expected redeclaring a base property to fail")
	}
	if err := derived.AddNavigationProperty(&edm.NavigationProperty{Name: "A", Target: base}); err == nil {
		t.Fatalf("expected name clash between property and navigation to fail")
	}
	if err := derived.AddProperty(&edm.Property{Name: "NoType"}); err == nil {
		t.Fatalf("expected property without type to fail")
	}
	if err := derived.AddNavigationProperty(&edm.NavigationProperty{Name: "NoTarget"}); err == nil {
		t.Fatalf("expected navigation without target to fail")
	}
}

func TestProperty_Defaults(t *testing.T) {
	p := &edm.Property{Name: "P", Type: edm.Primitive(edm.String), MaxLength: edm.Int(4)}
	if !p.IsNullable() {
		t.Fatalf("properties are nullable unless declared otherwise")
	}
	p.Nullable = edm.Bool(false)
	if p.IsNullable() {
		t.Fatalf("explicit Nullable=false ignored")
	}
	if f := p.Facets(); f.MaxLength == nil || *f.MaxLength != 4 {
		t.Fatalf("facets not carried: %+v", f)
	}
}
