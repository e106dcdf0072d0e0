package edm

import "strings"

// PrimitiveKind enumerates the OData V4 primitive types.
type PrimitiveKind int

const (
	Binary PrimitiveKind = iota + 1
	Boolean
	Byte
	SByte
	Date
	DateTimeOffset
	TimeOfDay
	Duration
	Decimal
	Single
	Double
	Guid
	Int16
	Int32
	Int64
	String
	Stream
	Geography
	Geometry
)

var primitiveKindNames = map[PrimitiveKind]string{
	Binary:         "Binary",
	Boolean:        "Boolean",
	Byte:           "Byte",
	SByte:          "SByte",
	Date:           "Date",
	DateTimeOffset: "DateTimeOffset",
	TimeOfDay:      "TimeOfDay",
	Duration:       "Duration",
	Decimal:        "Decimal",
	Single:         "Single",
	Double:         "Double",
	Guid:           "Guid",
	Int16:          "Int16",
	Int32:          "Int32",
	Int64:          "Int64",
	String:         "String",
	Stream:         "Stream",
	Geography:      "Geography",
	Geometry:       "Geometry",
}

var primitiveKindsByName = func() map[string]PrimitiveKind {
	m := make(map[string]PrimitiveKind, len(primitiveKindNames))
	for k, n := range primitiveKindNames {
		m[n] = k
	}
	return m
}()

func (k PrimitiveKind) String() string {
	if n, ok := primitiveKindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// PrimitiveKindByName resolves "Int32" or "Edm.Int32" to its kind.
func PrimitiveKindByName(name string) (PrimitiveKind, error) {
	short := strings.TrimPrefix(name, Namespace+".")
	if k, ok := primitiveKindsByName[short]; ok {
		return k, nil
	}
	return 0, &UnknownKindError{Name: name}
}

// PrimitiveType is a named primitive type. Its Name is resolved to a kind
// lazily, so a PrimitiveType carrying a name outside the built-in set is
// representable and reports UnknownKindError when used.
type PrimitiveType struct {
	Name string
}

// Primitive returns the built-in primitive type of the given kind.
func Primitive(k PrimitiveKind) *PrimitiveType {
	if t, ok := builtins[k]; ok {
		return t
	}
	return &PrimitiveType{Name: k.String()}
}

var builtins = func() map[PrimitiveKind]*PrimitiveType {
	m := make(map[PrimitiveKind]*PrimitiveType, len(primitiveKindNames))
	for k, n := range primitiveKindNames {
		m[k] = &PrimitiveType{Name: n}
	}
	return m
}()

func (t *PrimitiveType) FullQualifiedName() FullQualifiedName {
	return NewFQN(Namespace, strings.TrimPrefix(t.Name, Namespace+"."))
}

func (t *PrimitiveType) Kind() TypeKind { return KindPrimitive }

// PrimitiveKind resolves the type name.
func (t *PrimitiveType) PrimitiveKind() (PrimitiveKind, error) {
	return PrimitiveKindByName(t.Name)
}

// ValueOfString converts a literal into the Go value for this type while
// enforcing the facets.
func (t *PrimitiveType) ValueOfString(literal string, f Facets) (any, error) {
	k, err := t.PrimitiveKind()
	if err != nil {
		return nil, err
	}
	return parseLiteral(k, literal, f)
}
