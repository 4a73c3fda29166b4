package hjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeMaps(t *testing.T) {
	base := mustUnmarshal(t, `{a: 1, b: {x: 1, y: 2}, c: 3}`)
	ext := mustUnmarshal(t, `{b: {y: 20, z: 30}, d: 4}`)

	res := Merge(base, ext)

	want := mustUnmarshal(t, `{a: 1, b: {x: 1, y: 20, z: 30}, c: 3, d: 4}`)
	require.True(t, want.DeepEqual(res))

	// Base keys come first, new ext keys are appended.
	require.Equal(t, "a", keyAt(t, res, 0))
	require.Equal(t, "d", keyAt(t, res, 3))
}

func TestMergeUndefinedExt(t *testing.T) {
	base := mustUnmarshal(t, `{a: 1}`)
	res := Merge(base, Value{})
	require.True(t, base.DeepEqual(res))

	// The result is a clone, not an alias.
	require.NoError(t, res.Set("a", New(int64(9))))
	n, _ := base.Get("a").ToInt64()
	require.Equal(t, int64(1), n)
}

func TestMergeUndefinedKeyInherits(t *testing.T) {
	base := mustUnmarshal(t, `{a: 1, b: 2}`)
	ext := NewMap()
	require.NoError(t, ext.Set("a", Value{}))
	require.NoError(t, ext.Set("c", New(int64(3))))

	res := Merge(base, ext)
	n, err := res.Get("a").ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	n, _ = res.Get("c").ToInt64()
	require.Equal(t, int64(3), n)
}

func TestMergeScalarWins(t *testing.T) {
	base := mustUnmarshal(t, `{a: 1}`)
	require.True(t, New(int64(5)).DeepEqual(Merge(base, New(int64(5)))))
	require.True(t, base.DeepEqual(Merge(New(int64(5)), base)))
}

func TestMergeVectorsReplaceWholesale(t *testing.T) {
	base := mustUnmarshal(t, `{list: [1, 2, 3]}`)
	ext := mustUnmarshal(t, `{list: [9]}`)

	res := Merge(base, ext)
	require.Equal(t, 1, res.Get("list").Len())
	n, _ := elemAt(t, res.Get("list"), 0).ToInt64()
	require.Equal(t, int64(9), n)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := mustUnmarshal(t, `{m: {x: 1}}`)
	ext := mustUnmarshal(t, `{m: {y: 2}}`)
	baseCopy := base.Clone()
	extCopy := ext.Clone()

	res := Merge(base, ext)
	require.True(t, baseCopy.DeepEqual(base))
	require.True(t, extCopy.DeepEqual(ext))

	// Writes to the result never reach the inputs.
	m := res.Get("m")
	require.NoError(t, m.Set("x", New(int64(99))))
	n, _ := base.Get("m").Get("x").ToInt64()
	require.Equal(t, int64(1), n)
}
