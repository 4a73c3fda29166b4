package hjson

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Type identifies the variant held by a Value.
type Type int

const (
	Undefined Type = iota
	Null
	Bool
	Double
	Int64
	String
	Vector
	Map
)

func (t Type) String() string {
	switch t {
	case Undefined:
		return "Undefined"
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Double:
		return "Double"
	case Int64:
		return "Int64"
	case String:
		return "String"
	case Vector:
		return "Vector"
	case Map:
		return "Map"
	}
	return "Unknown"
}

// comments is the metadata riding alongside a node. It never participates in
// DeepEqual or coercions, only in Clone and in the codec.
type comments struct {
	before string // preceding the value, on its own line(s)
	key    string // between a map key and its colon
	inside string // trailing interior comment, before a closing brace
	after  string // trailing comment on the same logical line
}

func (c comments) empty() bool {
	return c.before == "" && c.key == "" && c.inside == "" && c.after == ""
}

// node is the internal representation of a value. Nodes reachable through
// more than one handle are flagged shared; the first mutation through any
// handle then copies the node, so sibling handles never observe each other's
// writes.
type node struct {
	typ Type

	b   bool
	d   float64
	i   int64
	s   string
	vec []*node
	ks  []string // map keys in insertion order
	m   map[string]*node

	cm     comments
	shared bool
}

// cow returns a private copy of n. Children keep their identity but become
// shared, deferring their own copies until they are written through.
func (n *node) cow() *node {
	c := *n
	c.shared = false
	if n.vec != nil {
		c.vec = make([]*node, len(n.vec))
		copy(c.vec, n.vec)
		for _, ch := range c.vec {
			ch.shared = true
		}
	}
	if n.m != nil {
		c.ks = make([]string, len(n.ks))
		copy(c.ks, n.ks)
		c.m = make(map[string]*node, len(n.m))
		for k, ch := range n.m {
			ch.shared = true
			c.m[k] = ch
		}
	}
	return &c
}

func (n *node) deepClone() *node {
	c := *n
	c.shared = false
	if n.vec != nil {
		c.vec = make([]*node, len(n.vec))
		for i, ch := range n.vec {
			c.vec[i] = ch.deepClone()
		}
	}
	if n.m != nil {
		c.ks = make([]string, len(n.ks))
		copy(c.ks, n.ks)
		c.m = make(map[string]*node, len(n.m))
		for k, ch := range n.m {
			c.m[k] = ch.deepClone()
		}
	}
	return &c
}

// Value is a handle to a node in a document tree. The zero Value is
// Undefined and ready to use.
//
// Read accessors never allocate. Get and Index return views that share the
// underlying node; mutating a view copies it first, so the tree it was taken
// from is unaffected. Clone always produces a fully independent deep copy.
type Value struct {
	n *node
}

// New builds a Value from a native Go value. Supported inputs are nil, bool,
// string, all integer and float kinds, Value itself, []Value, []any,
// map[string]Value and map[string]any (map keys are inserted in sorted
// order). Anything else yields an Undefined Value.
func New(x any) Value {
	switch t := x.(type) {
	case nil:
		return Value{n: &node{typ: Null}}
	case Value:
		return t
	case bool:
		return Value{n: &node{typ: Bool, b: t}}
	case string:
		return Value{n: &node{typ: String, s: t}}
	case float64:
		return Value{n: &node{typ: Double, d: t}}
	case float32:
		return Value{n: &node{typ: Double, d: float64(t)}}
	case int:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case int8:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case int16:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case int32:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case int64:
		return Value{n: &node{typ: Int64, i: t}}
	case uint:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case uint8:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case uint16:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case uint32:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case uint64:
		return Value{n: &node{typ: Int64, i: int64(t)}}
	case []Value:
		v := NewVector(t...)
		return v
	case []any:
		v := NewVector()
		for _, e := range t {
			_ = v.PushBack(New(e))
		}
		return v
	case map[string]Value:
		v := NewMap()
		for _, k := range sortedKeys(t) {
			_ = v.Set(k, t[k])
		}
		return v
	case map[string]any:
		v := NewMap()
		for _, k := range sortedKeys(t) {
			_ = v.Set(k, New(t[k]))
		}
		return v
	}
	return Value{}
}

func sortedKeys[M map[string]V, V any](m M) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// NewMap returns an empty Map value.
func NewMap() Value {
	return Value{n: &node{typ: Map, m: map[string]*node{}}}
}

// NewVector returns a Vector value holding the given elements.
func NewVector(elems ...Value) Value {
	v := Value{n: &node{typ: Vector}}
	for _, e := range elems {
		_ = v.PushBack(e)
	}
	return v
}

// mutable prepares v for a write: a nil node is materialized and a shared
// node is copied first, keeping sibling handles intact.
func (v *Value) mutable() *node {
	if v.n == nil {
		v.n = &node{}
	} else if v.n.shared {
		v.n = v.n.cow()
	}
	return v.n
}

// Type returns the variant held by v.
func (v Value) Type() Type {
	if v.n == nil {
		return Undefined
	}
	return v.n.typ
}

// Defined reports whether v holds anything at all, including Null.
func (v Value) Defined() bool { return v.Type() != Undefined }

// IsNumeric reports whether v is a Double or an Int64.
func (v Value) IsNumeric() bool {
	t := v.Type()
	return t == Double || t == Int64
}

// IsContainer reports whether v is a Vector or a Map.
func (v Value) IsContainer() bool {
	t := v.Type()
	return t == Vector || t == Map
}

// Empty reports whether v is Undefined, Null, a zero-length String, or a
// container without elements.
func (v Value) Empty() bool {
	switch v.Type() {
	case Undefined, Null:
		return true
	case String:
		return v.n.s == ""
	case Vector:
		return len(v.n.vec) == 0
	case Map:
		return len(v.n.ks) == 0
	}
	return false
}

// Len returns the element count for containers, the byte length for strings,
// 1 for the remaining scalars and 0 for Undefined and Null.
func (v Value) Len() int {
	switch v.Type() {
	case Undefined, Null:
		return 0
	case String:
		return len(v.n.s)
	case Vector:
		return len(v.n.vec)
	case Map:
		return len(v.n.ks)
	}
	return 1
}

// Get returns the value stored under key, or an Undefined Value if v is not
// a Map or the key is absent. The entry is never materialized by a read;
// use Set to insert. The result is a copy-on-write view: mutating it leaves
// v untouched.
func (v Value) Get(key string) Value {
	if v.n == nil || v.n.typ != Map {
		return Value{}
	}
	c := v.n.m[key]
	if c == nil {
		return Value{}
	}
	c.shared = true
	return Value{n: c}
}

// At is the failing companion of Get: it reports a RangeError for a missing
// key and a TypeError when v is not a Map.
func (v Value) At(key string) (Value, error) {
	switch v.Type() {
	case Map:
		if c := v.n.m[key]; c != nil {
			c.shared = true
			return Value{n: c}, nil
		}
		return Value{}, &RangeError{Op: "at", Key: key}
	case Undefined:
		return Value{}, &RangeError{Op: "at", Key: key}
	}
	return Value{}, &TypeError{Op: "at", Got: v.Type()}
}

// Index returns the i-th element of a Vector, or the value of the i-th key
// in insertion order for a Map. The result is a copy-on-write view.
func (v Value) Index(i int) (Value, error) {
	switch v.Type() {
	case Vector:
		if i < 0 || i >= len(v.n.vec) {
			return Value{}, &RangeError{Op: "index", Index: i, Len: len(v.n.vec)}
		}
		c := v.n.vec[i]
		c.shared = true
		return Value{n: c}, nil
	case Map:
		if i < 0 || i >= len(v.n.ks) {
			return Value{}, &RangeError{Op: "index", Index: i, Len: len(v.n.ks)}
		}
		c := v.n.m[v.n.ks[i]]
		c.shared = true
		return Value{n: c}, nil
	case Undefined:
		return Value{}, &RangeError{Op: "index", Index: i, Len: 0}
	}
	return Value{}, &TypeError{Op: "index", Got: v.Type()}
}

// child extracts the node to store for an incoming value, marking it shared
// because the caller keeps its own handle.
func childNode(val Value) *node {
	if val.n == nil {
		return &node{}
	}
	val.n.shared = true
	return val.n
}

// Set stores val under key, inserting at the end of the insertion order for
// a new key. An Undefined receiver becomes a Map (upsert ergonomics); any
// other non-Map receiver is a type mismatch.
func (v *Value) Set(key string, val Value) error {
	n := v.mutable()
	switch n.typ {
	case Undefined:
		n.typ = Map
		n.m = map[string]*node{}
	case Map:
	default:
		return &TypeError{Op: "set", Got: n.typ}
	}
	if _, ok := n.m[key]; !ok {
		n.ks = append(n.ks, key)
	}
	n.m[key] = childNode(val)
	return nil
}

// SetIndex replaces the element at position i (insertion order for a Map).
func (v *Value) SetIndex(i int, val Value) error {
	n := v.mutable()
	switch n.typ {
	case Vector:
		if i < 0 || i >= len(n.vec) {
			return &RangeError{Op: "set", Index: i, Len: len(n.vec)}
		}
		n.vec[i] = childNode(val)
		return nil
	case Map:
		if i < 0 || i >= len(n.ks) {
			return &RangeError{Op: "set", Index: i, Len: len(n.ks)}
		}
		n.m[n.ks[i]] = childNode(val)
		return nil
	case Undefined:
		return &RangeError{Op: "set", Index: i, Len: 0}
	}
	return &TypeError{Op: "set", Got: n.typ}
}

// PushBack appends val to a Vector. An Undefined receiver becomes a Vector.
func (v *Value) PushBack(val Value) error {
	n := v.mutable()
	switch n.typ {
	case Undefined:
		n.typ = Vector
	case Vector:
	default:
		return &TypeError{Op: "push_back", Got: n.typ}
	}
	n.vec = append(n.vec, childNode(val))
	return nil
}

// Erase removes the element at position i: by index for a Vector, by
// insertion-order position for a Map.
func (v *Value) Erase(i int) error {
	n := v.mutable()
	switch n.typ {
	case Vector:
		if i < 0 || i >= len(n.vec) {
			return &RangeError{Op: "erase", Index: i, Len: len(n.vec)}
		}
		n.vec = append(n.vec[:i], n.vec[i+1:]...)
		return nil
	case Map:
		if i < 0 || i >= len(n.ks) {
			return &RangeError{Op: "erase", Index: i, Len: len(n.ks)}
		}
		delete(n.m, n.ks[i])
		n.ks = append(n.ks[:i], n.ks[i+1:]...)
		return nil
	case Undefined:
		return &RangeError{Op: "erase", Index: i, Len: 0}
	}
	return &TypeError{Op: "erase", Got: n.typ}
}

// EraseKey removes key from a Map and returns the number of entries removed
// (0 or 1). An Undefined receiver removes nothing.
func (v *Value) EraseKey(key string) (int, error) {
	if v.Type() == Undefined {
		return 0, nil
	}
	n := v.mutable()
	if n.typ != Map {
		return 0, &TypeError{Op: "erase", Got: n.typ}
	}
	if _, ok := n.m[key]; !ok {
		return 0, nil
	}
	delete(n.m, key)
	for i, k := range n.ks {
		if k == key {
			n.ks = append(n.ks[:i], n.ks[i+1:]...)
			break
		}
	}
	return 1, nil
}

// Move relocates the element at position from to position to, in insertion
// order. When from is less than to the element comes to rest at to-1,
// matching the usual vector splice semantics. For a Map only the insertion
// order changes; iteration stays lexicographic.
func (v *Value) Move(from, to int) error {
	n := v.mutable()
	switch n.typ {
	case Vector:
		return moveSlice(&n.vec, from, to)
	case Map:
		return moveSlice(&n.ks, from, to)
	case Undefined:
		return &RangeError{Op: "move", Index: from, Len: 0}
	}
	return &TypeError{Op: "move", Got: n.typ}
}

func moveSlice[E any](s *[]E, from, to int) error {
	sl := *s
	if from < 0 || from >= len(sl) {
		return &RangeError{Op: "move", Index: from, Len: len(sl)}
	}
	if to < 0 || to > len(sl) {
		return &RangeError{Op: "move", Index: to, Len: len(sl) + 1}
	}
	if from == to {
		return nil
	}
	e := sl[from]
	sl = append(sl[:0:0], sl...)
	sl = append(sl[:to], append([]E{e}, sl[to:]...)...)
	if to < from {
		from++
	}
	*s = append(sl[:from], sl[from+1:]...)
	return nil
}

// Key returns the i-th map key in insertion order.
func (v Value) Key(i int) (string, error) {
	switch v.Type() {
	case Map:
		if i < 0 || i >= len(v.n.ks) {
			return "", &RangeError{Op: "key", Index: i, Len: len(v.n.ks)}
		}
		return v.n.ks[i], nil
	case Undefined:
		return "", &RangeError{Op: "key", Index: i, Len: 0}
	}
	return "", &TypeError{Op: "key", Got: v.Type()}
}

// Keys returns the map keys in iteration order, which is always
// lexicographic and independent of the insertion order. Non-Map values
// yield nil.
func (v Value) Keys() []string {
	if v.Type() != Map {
		return nil
	}
	ks := make([]string, len(v.n.ks))
	copy(ks, v.n.ks)
	sort.Strings(ks)
	return ks
}

// DeepEqual reports structural equality, recursing through containers and
// comparing scalars by variant and value. Comments are ignored.
func (v Value) DeepEqual(other Value) bool {
	if v.Type() != other.Type() {
		return false
	}
	switch v.Type() {
	case Undefined, Null:
		return true
	case Bool:
		return v.n.b == other.n.b
	case Double:
		return v.n.d == other.n.d
	case Int64:
		return v.n.i == other.n.i
	case String:
		return v.n.s == other.n.s
	case Vector:
		if len(v.n.vec) != len(other.n.vec) {
			return false
		}
		for i := range v.n.vec {
			if !(Value{n: v.n.vec[i]}).DeepEqual(Value{n: other.n.vec[i]}) {
				return false
			}
		}
		return true
	case Map:
		if len(v.n.ks) != len(other.n.ks) {
			return false
		}
		for k, c := range v.n.m {
			oc, ok := other.n.m[k]
			if !ok || !(Value{n: c}).DeepEqual(Value{n: oc}) {
				return false
			}
		}
		return true
	}
	return false
}

// Clone returns a deep, comment-preserving copy that shares no nodes with v.
func (v Value) Clone() Value {
	if v.n == nil {
		return Value{}
	}
	return Value{n: v.n.deepClone()}
}

// Assign replaces the value held by v with the value of other, keeping v's
// own comments. See AssignWithComments for the variant that copies comments
// as well.
func (v *Value) Assign(other Value) {
	cm := v.commentsOf()
	v.assignNode(other)
	v.n.cm = cm
}

// AssignWithComments replaces both the value and the comment metadata of v
// with those of other.
func (v *Value) AssignWithComments(other Value) {
	v.assignNode(other)
	if other.n != nil {
		v.n.cm = other.n.cm
	} else {
		v.n.cm = comments{}
	}
}

func (v *Value) assignNode(other Value) {
	if other.n == nil {
		v.n = &node{}
		return
	}
	other.n.shared = true
	c := *other.n
	c.shared = false
	if other.n.vec != nil {
		c.vec = make([]*node, len(other.n.vec))
		copy(c.vec, other.n.vec)
		for _, ch := range c.vec {
			ch.shared = true
		}
	}
	if other.n.m != nil {
		c.ks = make([]string, len(other.n.ks))
		copy(c.ks, other.n.ks)
		c.m = make(map[string]*node, len(other.n.m))
		for k, ch := range other.n.m {
			ch.shared = true
			c.m[k] = ch
		}
	}
	v.n = &c
}

// ToBool reports the truthiness of v: numbers are true when nonzero, Bool
// is itself, everything else is true when non-Empty.
func (v Value) ToBool() bool {
	switch v.Type() {
	case Double:
		return v.n.d != 0
	case Int64:
		return v.n.i != 0
	case Bool:
		return v.n.b
	}
	return !v.Empty()
}

// ToDouble coerces v to a float64. Undefined and Null yield 0, Bool yields
// 0 or 1, strings are parsed on demand and yield 0 when they do not form a
// number. Containers report a type mismatch.
func (v Value) ToDouble() (float64, error) {
	switch v.Type() {
	case Undefined, Null:
		return 0, nil
	case Bool:
		if v.n.b {
			return 1, nil
		}
		return 0, nil
	case Double:
		return v.n.d, nil
	case Int64:
		return float64(v.n.i), nil
	case String:
		f, err := strconv.ParseFloat(v.n.s, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, nil
		}
		return f, nil
	}
	return 0, &TypeError{Op: "to_double", Got: v.Type()}
}

// ToInt64 coerces v to an int64, truncating a Double. A string is first
// given a strict integer parse; failing that it goes through ToDouble.
func (v Value) ToInt64() (int64, error) {
	switch v.Type() {
	case Undefined, Null:
		return 0, nil
	case Bool:
		if v.n.b {
			return 1, nil
		}
		return 0, nil
	case Double:
		return int64(v.n.d), nil
	case Int64:
		return v.n.i, nil
	case String:
		if i, err := strconv.ParseInt(v.n.s, 10, 64); err == nil {
			return i, nil
		}
		f, _ := Value{n: v.n}.ToDouble()
		return int64(f), nil
	}
	return 0, &TypeError{Op: "to_int64", Got: v.Type()}
}

// ToString formats v as text: Undefined is empty, Null is "null", numbers
// are rendered the way the encoder renders them (a Double always carries a
// decimal point or an exponent). Containers report a type mismatch.
func (v Value) ToString() (string, error) {
	switch v.Type() {
	case Undefined:
		return "", nil
	case Null:
		return "null", nil
	case Bool:
		if v.n.b {
			return "true", nil
		}
		return "false", nil
	case Double:
		return formatDouble(v.n.d), nil
	case Int64:
		return strconv.FormatInt(v.n.i, 10), nil
	case String:
		return v.n.s, nil
	}
	return "", &TypeError{Op: "to_string", Got: v.Type()}
}

// formatDouble renders a finite float so that decoding gives back a Double:
// a plain integral rendering gains a ".0" suffix, keeping the variant
// stable through a round-trip.
func formatDouble(d float64) string {
	s := strconv.FormatFloat(d, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (v Value) commentsOf() comments {
	if v.n == nil {
		return comments{}
	}
	return v.n.cm
}
