package hjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func keyAt(t *testing.T, v Value, i int) string {
	t.Helper()
	k, err := v.Key(i)
	require.NoError(t, err)
	return k
}

func elemAt(t *testing.T, v Value, i int) Value {
	t.Helper()
	e, err := v.Index(i)
	require.NoError(t, err)
	return e
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Type
	}{
		{"nil", nil, Null},
		{"bool", true, Bool},
		{"int", 42, Int64},
		{"int64", int64(42), Int64},
		{"uint8", uint8(7), Int64},
		{"float64", 2.5, Double},
		{"float32", float32(2.5), Double},
		{"string", "hi", String},
		{"slice", []any{1, 2}, Vector},
		{"map", map[string]any{"a": 1}, Map},
		{"unsupported", struct{}{}, Undefined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, New(tt.in).Type())
		})
	}
}

func TestZeroValueIsUndefined(t *testing.T) {
	var v Value
	require.Equal(t, Undefined, v.Type())
	require.False(t, v.Defined())
	require.Equal(t, 0, v.Len())
	require.False(t, v.Get("x").Defined())
}

func TestMapDualOrdering(t *testing.T) {
	v := NewMap()
	require.NoError(t, v.Set("b", New(1)))
	require.NoError(t, v.Set("a", New(2)))
	require.NoError(t, v.Set("c", New(3)))

	// Iteration order is alphabetical.
	require.Equal(t, []string{"a", "b", "c"}, v.Keys())

	// Positional operations follow insertion order.
	require.Equal(t, "b", keyAt(t, v, 0))
	require.Equal(t, "a", keyAt(t, v, 1))
	require.Equal(t, "c", keyAt(t, v, 2))

	// Reassigning an existing key keeps its position.
	require.NoError(t, v.Set("b", New(10)))
	require.Equal(t, "b", keyAt(t, v, 0))
	i, err := v.Get("b").ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(10), i)
}

func TestMapMove(t *testing.T) {
	v := NewMap()
	require.NoError(t, v.Set("b", New(1)))
	require.NoError(t, v.Set("a", New(2)))
	require.NoError(t, v.Set("c", New(3)))

	// Moving an entry toward the back lands it just before the target
	// index, since the entry's own removal shifts everything down.
	require.NoError(t, v.Move(0, 2))
	require.Equal(t, "a", keyAt(t, v, 0))
	require.Equal(t, "b", keyAt(t, v, 1))
	require.Equal(t, "c", keyAt(t, v, 2))

	require.NoError(t, v.Move(2, 0))
	require.Equal(t, "c", keyAt(t, v, 0))

	require.ErrorIs(t, v.Move(5, 0), ErrOutOfRange)

	// Iteration order is unaffected by moves.
	require.Equal(t, []string{"a", "b", "c"}, v.Keys())
}

func TestMapErase(t *testing.T) {
	v := NewMap()
	require.NoError(t, v.Set("x", New(1)))
	require.NoError(t, v.Set("y", New(2)))

	n, err := v.EraseKey("x")
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, 1, v.Len())

	n, err = v.EraseKey("missing")
	require.NoError(t, err)
	require.Equal(t, 0, n)

	require.NoError(t, v.Erase(0))
	require.Equal(t, 0, v.Len())
	require.ErrorIs(t, v.Erase(0), ErrOutOfRange)
}

func TestUpsert(t *testing.T) {
	var v Value
	require.NoError(t, v.Set("a", New(1)))
	require.Equal(t, Map, v.Type())

	var arr Value
	require.NoError(t, arr.PushBack(New(1)))
	require.Equal(t, Vector, arr.Type())
}

func TestVectorOps(t *testing.T) {
	v := NewVector()
	require.NoError(t, v.PushBack(New("x")))
	require.NoError(t, v.PushBack(New("y")))
	require.NoError(t, v.PushBack(New("z")))
	require.Equal(t, 3, v.Len())

	s, err := elemAt(t, v, 1).ToString()
	require.NoError(t, err)
	require.Equal(t, "y", s)

	require.NoError(t, v.SetIndex(1, New("Y")))
	s, _ = elemAt(t, v, 1).ToString()
	require.Equal(t, "Y", s)

	require.NoError(t, v.Move(2, 0))
	s, _ = elemAt(t, v, 0).ToString()
	require.Equal(t, "z", s)

	require.NoError(t, v.Erase(0))
	require.Equal(t, 2, v.Len())

	require.ErrorIs(t, v.SetIndex(9, New(1)), ErrOutOfRange)
	_, err = v.Index(9)
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCopyOnWrite(t *testing.T) {
	base := NewMap()
	require.NoError(t, base.Set("inner", New(map[string]any{"n": 1})))

	view := base.Get("inner")
	require.NoError(t, view.Set("n", New(2)))

	// The write through the view must not leak into the owner.
	n, err := base.Get("inner").Get("n").ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = view.Get("n").ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestClone(t *testing.T) {
	orig := NewMap()
	require.NoError(t, orig.Set("list", New([]any{1, 2})))
	cp := orig.Clone()

	lst := cp.Get("list")
	require.NoError(t, lst.PushBack(New(3)))
	require.Equal(t, 2, orig.Get("list").Len())
	require.True(t, orig.DeepEqual(orig.Clone()))
}

func TestDeepEqual(t *testing.T) {
	a := New(map[string]any{"x": 1, "y": []any{true, nil}})
	b := New(map[string]any{"y": []any{true, nil}, "x": 1})
	require.True(t, a.DeepEqual(b))

	// Variant matters: 3 and 3.0 are different values.
	require.False(t, New(int64(3)).DeepEqual(New(3.0)))
	require.False(t, New("3").DeepEqual(New(int64(3))))

	// Comments are metadata and never participate.
	c := b.Clone()
	c.SetCommentBefore("# hello")
	require.True(t, a.DeepEqual(c))
}

func TestCoercions(t *testing.T) {
	i, err := New("42").ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(42), i)

	d, err := New("2.5").ToDouble()
	require.NoError(t, err)
	require.Equal(t, 2.5, d)

	s, err := New(int64(7)).ToString()
	require.NoError(t, err)
	require.Equal(t, "7", s)

	s, err = New(3.0).ToString()
	require.NoError(t, err)
	require.Equal(t, "3.0", s)

	require.True(t, New(1).ToBool())
	require.False(t, New(0).ToBool())
	require.True(t, New("x").ToBool())
	require.False(t, New("").ToBool())
	require.False(t, New(nil).ToBool())

	// Null and Undefined coerce to numeric zero.
	i, err = New(nil).ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(0), i)

	// Containers refuse scalar coercion.
	_, err = NewVector().ToInt64()
	require.ErrorIs(t, err, ErrTypeMismatch)
	_, err = NewMap().ToString()
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestStringCoercionForms(t *testing.T) {
	// Coercion parses with strconv, so it is laxer than the literal
	// grammar: an explicit plus sign and hex floats convert even though
	// the same text decodes as a plain string. Non-numbers and non-finite
	// spellings coerce to zero.
	tests := []struct {
		in string
		d  float64
		i  int64
	}{
		{"3.5", 3.5, 3},
		{"+5", 5, 5},
		{"0x1p4", 16, 16},
		{"1e3", 1000, 1000},
		{"012", 12, 12},
		{" 5", 0, 0},
		{"abc", 0, 0},
		{"Inf", 0, 0},
		{"NaN", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := New(tt.in).ToDouble()
			require.NoError(t, err)
			require.Equal(t, tt.d, d)

			i, err := New(tt.in).ToInt64()
			require.NoError(t, err)
			require.Equal(t, tt.i, i)
		})
	}
}

func TestAccessErrors(t *testing.T) {
	v := NewVector()
	_, err := v.At("key")
	require.ErrorIs(t, err, ErrTypeMismatch)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	require.Equal(t, Vector, te.Got)

	m := NewMap()
	_, err = m.At("missing")
	require.ErrorIs(t, err, ErrOutOfRange)
	var re *RangeError
	require.ErrorAs(t, err, &re)
	require.Equal(t, "missing", re.Key)
}

func TestAssign(t *testing.T) {
	dst := New("old")
	dst.SetCommentBefore("# keep me")
	dst.Assign(New(int64(5)))

	require.Equal(t, Int64, dst.Type())
	require.Equal(t, "# keep me", dst.CommentBefore())

	src := New("new")
	src.SetCommentBefore("# theirs")
	dst.AssignWithComments(src)
	require.Equal(t, "# theirs", dst.CommentBefore())
}

func TestComments(t *testing.T) {
	v := New(1)
	require.False(t, v.HasComments())
	v.SetCommentBefore("# b")
	v.SetCommentKey("# k")
	v.SetCommentInside("# i")
	v.SetCommentAfter("# a")
	require.True(t, v.HasComments())
	require.Equal(t, "# b", v.CommentBefore())
	require.Equal(t, "# k", v.CommentKey())
	require.Equal(t, "# i", v.CommentInside())
	require.Equal(t, "# a", v.CommentAfter())

	// Comments travel with clones.
	require.Equal(t, "# b", v.Clone().CommentBefore())

	v.ClearComments()
	require.False(t, v.HasComments())
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "Map", Map.String())
	require.Equal(t, "Undefined", Undefined.String())
}

func TestErrorsUnwrap(t *testing.T) {
	err := &RangeError{Op: "index", Index: 3, Len: 2}
	require.True(t, errors.Is(err, ErrOutOfRange))
	err2 := &TypeError{Op: "at", Got: String}
	require.True(t, errors.Is(err2, ErrTypeMismatch))
}
