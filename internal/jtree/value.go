// Package jtree provides a generic JSON value tree with ordered,
// duplicate-tolerant object members and raw numeric literals. The GeoJSON
// writer builds its output as a jtree and serializes it at the end, so
// formatted coordinate literals and non-standard tokens like NaN survive
// encoding untouched.
package jtree

// Kind identifies the JSON variant a Value holds.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Double
	String
	Array
	Object
)

// Member is one key/value pair of an object. Objects keep members in
// insertion order and tolerate duplicate keys.
type Member struct {
	Key   string
	Value *Value
}

// Value is a node of the JSON tree. Exactly the fields matching Kind are
// meaningful. For numeric kinds, a non-empty Raw literal takes precedence
// over Int/Num during serialization.
type Value struct {
	Kind    Kind
	Bool    bool
	Int     int64
	Num     float64
	Raw     string
	Str     string
	Items   []*Value
	Members []Member
}

// NewNull returns a JSON null node.
func NewNull() *Value { return &Value{Kind: Null} }

// NewBool returns a JSON boolean node.
func NewBool(b bool) *Value { return &Value{Kind: Bool, Bool: b} }

// NewInt returns a JSON integer node.
func NewInt(n int64) *Value { return &Value{Kind: Int, Int: n} }

// NewDouble returns a JSON double node serialized in shortest
// round-trip form.
func NewDouble(v float64) *Value { return &Value{Kind: Double, Num: v} }

// NewNumberLiteral returns a JSON double node that serializes as the given
// preformatted literal.
func NewNumberLiteral(v float64, literal string) *Value {
	return &Value{Kind: Double, Num: v, Raw: literal}
}

// NewString returns a JSON string node.
func NewString(s string) *Value { return &Value{Kind: String, Str: s} }

// NewArray returns an empty JSON array node.
func NewArray() *Value { return &Value{Kind: Array} }

// NewObject returns an empty JSON object node.
func NewObject() *Value { return &Value{Kind: Object} }

// Append adds a child to an array node.
func (v *Value) Append(child *Value) {
	v.Items = append(v.Items, child)
}

// Set adds a member to an object node, replacing the value of the first
// member with the same key if one exists. The member's position in the
// object is preserved on replacement.
func (v *Value) Set(key string, val *Value) {
	for i := range v.Members {
		if v.Members[i].Key == key {
			v.Members[i].Value = val
			return
		}
	}
	v.Members = append(v.Members, Member{Key: key, Value: val})
}

// Get returns the value of the first member with the given key, or nil.
// It also returns nil when v is not an object.
func (v *Value) Get(key string) *Value {
	if v == nil || v.Kind != Object {
		return nil
	}
	for i := range v.Members {
		if v.Members[i].Key == key {
			return v.Members[i].Value
		}
	}
	return nil
}

// IsArray reports whether v is a non-nil array node.
func (v *Value) IsArray() bool {
	return v != nil && v.Kind == Array
}

// Len returns the number of array items.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Items)
}

// Text returns the string content for string nodes and the serialized JSON
// text for every other kind.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	if v.Kind == String {
		return v.Str
	}
	return v.String()
}
