package hjson

// Comment accessors. Every Value can carry up to four comment strings:
// one before the value, one between a map key and its colon, one inside a
// container just before the closing brace, and one after the value on the
// same line. The text is stored verbatim, including the comment marker
// ("#", "//" or "/*...*/"); multiple captured lines are joined with "\n".
//
// Comments are metadata: they survive Clone and the codec round-trip but
// never influence DeepEqual or the coercions.

// CommentBefore returns the comment preceding the value.
func (v Value) CommentBefore() string { return v.commentsOf().before }

// CommentKey returns the comment between a map key and its colon.
func (v Value) CommentKey() string { return v.commentsOf().key }

// CommentInside returns the interior comment of a container, anchored just
// before the closing brace or bracket.
func (v Value) CommentInside() string { return v.commentsOf().inside }

// CommentAfter returns the trailing comment on the value's line.
func (v Value) CommentAfter() string { return v.commentsOf().after }

// SetCommentBefore attaches a comment preceding the value.
func (v *Value) SetCommentBefore(s string) { v.mutable().cm.before = s }

// SetCommentKey attaches a comment between a map key and its colon.
func (v *Value) SetCommentKey(s string) { v.mutable().cm.key = s }

// SetCommentInside attaches an interior comment to a container.
func (v *Value) SetCommentInside(s string) { v.mutable().cm.inside = s }

// SetCommentAfter attaches a trailing comment on the value's line.
func (v *Value) SetCommentAfter(s string) { v.mutable().cm.after = s }

// SetComments copies the comment metadata of other onto v, leaving the
// value itself untouched.
func (v *Value) SetComments(other Value) { v.mutable().cm = other.commentsOf() }

// ClearComments removes all four comment strings from v.
func (v *Value) ClearComments() { v.mutable().cm = comments{} }

// HasComments reports whether any of the four comment slots is set.
func (v Value) HasComments() bool { return !v.commentsOf().empty() }
