package engine

// NodeKind classifies a JSON tree node.
type NodeKind int

const (
	NodeNull NodeKind = iota
	NodeBool
	NodeNumber
	NodeString
	NodeObject
	NodeArray
)

func (k NodeKind) String() string {
	switch k {
	case NodeNull:
		return "NULL"
	case NodeBool:
		return "BOOLEAN"
	case NodeNumber:
		return "NUMBER"
	case NodeString:
		return "STRING"
	case NodeObject:
		return "OBJECT"
	case NodeArray:
		return "ARRAY"
	default:
		return "UNKNOWN"
	}
}

// Field is one object member. Fields keep input order.
type Field struct {
	Name  string
	Value *Node
}

// Node is an immutable JSON tree node. Scalars carry their literal text in
// Literal (the unescaped string for strings, the number text for numbers).
type Node struct {
	Kind    NodeKind
	Literal string
	Bool    bool
	Fields  []Field
	Elems   []*Node
	Offset  int64

	index map[string]int
}

// Get returns the value of the named member of an object node.
func (n *Node) Get(name string) (*Node, bool) {
	if n == nil || n.Kind != NodeObject {
		return nil, false
	}
	i, ok := n.index[name]
	if !ok {
		return nil, false
	}
	return n.Fields[i].Value, true
}

// Len reports the number of members or elements of a container node.
func (n *Node) Len() int {
	switch n.Kind {
	case NodeObject:
		return len(n.Fields)
	case NodeArray:
		return len(n.Elems)
	default:
		return 0
	}
}

func (n *Node) IsNull() bool   { return n.Kind == NodeNull }
func (n *Node) IsObject() bool { return n.Kind == NodeObject }
func (n *Node) IsArray() bool  { return n.Kind == NodeArray }

// IsValue reports whether n is not a container; null counts as a value.
func (n *Node) IsValue() bool { return n.Kind != NodeObject && n.Kind != NodeArray }

// Text renders a scalar the way it should be handed to a literal parser.
func (n *Node) Text() string {
	switch n.Kind {
	case NodeBool:
		if n.Bool {
			return "true"
		}
		return "false"
	case NodeNull:
		return "null"
	default:
		return n.Literal
	}
}

func (n *Node) set(name string, v *Node, lastWins bool) {
	if n.index == nil {
		n.index = make(map[string]int)
	}
	if i, ok := n.index[name]; ok {
		if lastWins {
			n.Fields[i].Value = v
		}
		return
	}
	n.index[name] = len(n.Fields)
	n.Fields = append(n.Fields, Field{Name: name, Value: v})
}
