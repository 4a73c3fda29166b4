package hjson

// Merge layers ext on top of base and returns a new tree; neither input is
// mutated or aliased into the result.
//
// When both sides are maps the result contains every key of base overlaid
// with the keys of ext, merging recursively where both values are maps. A
// key set to an undefined value in ext inherits the value from base rather
// than removing it. In every other combination, including two vectors, ext
// wins wholesale.
func Merge(base, ext Value) Value {
	if !ext.Defined() {
		return base.Clone()
	}
	if base.Type() != Map || ext.Type() != Map {
		return ext.Clone()
	}

	res := NewMap()
	for i := 0; i < base.Len(); i++ {
		key, _ := base.Key(i)
		bv := base.Get(key)
		ev := ext.Get(key)
		if !ev.Defined() {
			res.Set(key, bv.Clone())
		} else {
			res.Set(key, Merge(bv, ev))
		}
	}
	for i := 0; i < ext.Len(); i++ {
		key, _ := ext.Key(i)
		if _, err := base.At(key); err == nil {
			continue
		}
		res.Set(key, ext.Get(key).Clone())
	}
	return res
}
