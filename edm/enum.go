package edm

import (
	"fmt"
	"strconv"
	"strings"
)

// EnumMember is one named value of an enumeration.
type EnumMember struct {
	Name  string
	Value int64
}

// EnumType is an enumeration over an integral underlying type.
type EnumType struct {
	Name       FullQualifiedName
	Underlying *PrimitiveType
	IsFlags    bool
	Members    []EnumMember
}

func (t *EnumType) FullQualifiedName() FullQualifiedName { return t.Name }
func (t *EnumType) Kind() TypeKind                       { return KindEnum }

// EnumValue is a decoded enumeration value.
type EnumValue struct {
	Type  string
	Names []string
	Value int64
}

func (v EnumValue) String() string { return strings.Join(v.Names, ",") }

func (v EnumValue) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// Member looks a member up by name.
func (t *EnumType) Member(name string) (EnumMember, bool) {
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return EnumMember{}, false
}

// ValueOfString accepts a member name or the member's numeric value. Flags
// enumerations accept a comma-separated list of either and combine them.
func (t *EnumType) ValueOfString(literal string) (EnumValue, error) {
	name := t.Name.String()
	parts := []string{literal}
	if t.IsFlags {
		if n, err := strconv.ParseInt(strings.TrimSpace(literal), 10, 64); err == nil {
			return t.decompose(literal, n)
		}
		parts = strings.Split(literal, ",")
	}
	out := EnumValue{Type: name}
	for _, p := range parts {
		m, err := t.lookup(strings.TrimSpace(p))
		if err != nil {
			return EnumValue{}, &PrimitiveTypeError{Type: name, Literal: literal, Err: err}
		}
		out.Names = append(out.Names, m.Name)
		out.Value |= m.Value
	}
	return out, nil
}

// decompose splits a flags value into the members whose bits it covers.
func (t *EnumType) decompose(literal string, n int64) (EnumValue, error) {
	out := EnumValue{Type: t.Name.String(), Value: n}
	rest := n
	for _, m := range t.Members {
		if m.Value == n && n == 0 {
			out.Names = append(out.Names, m.Name)
			return out, nil
		}
		if m.Value != 0 && n&m.Value == m.Value {
			out.Names = append(out.Names, m.Name)
			rest &^= m.Value
		}
	}
	if rest != 0 || len(out.Names) == 0 {
		return EnumValue{}, &PrimitiveTypeError{Type: out.Type, Literal: literal, Err: fmt.Errorf("value %d is not a combination of members", n)}
	}
	return out, nil
}

func (t *EnumType) lookup(s string) (EnumMember, error) {
	if m, ok := t.Member(s); ok {
		return m, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return EnumMember{}, fmt.Errorf("no member named %q", s)
	}
	for _, m := range t.Members {
		if m.Value == n {
			return m, nil
		}
	}
	return EnumMember{}, fmt.Errorf("no member with value %d", n)
}
