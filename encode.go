package hjson

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/10088/hjson-go/internal/number"
)

// EncoderOptions configures Marshal.
type EncoderOptions struct {
	// Eol is the end-of-line sequence to emit.
	Eol string
	// BracesSameLine places the opening brace of a nested object on the
	// same line as its key instead of on a line of its own.
	BracesSameLine bool
	// EmitRootBraces writes braces around a root-level object.
	EmitRootBraces bool
	// QuoteAlways quotes every string value.
	QuoteAlways bool
	// QuoteKeys quotes every object key.
	QuoteKeys bool
	// IndentBy is the string repeated once per nesting level.
	IndentBy string
	// AllowMinusZero emits -0 for a negative floating point zero instead
	// of normalizing it to 0.
	AllowMinusZero bool
	// UnknownAsNull emits null for undefined values instead of failing.
	UnknownAsNull bool
	// Separator writes commas between elements, as JSON does, and
	// forces quoted strings.
	Separator bool
	// PreserveInsertionOrder emits map keys in the order they were added
	// instead of alphabetically.
	PreserveInsertionOrder bool
	// Comments reproduces comments attached to the values.
	Comments bool
}

// DefaultOptions returns the options used by Marshal.
func DefaultOptions() EncoderOptions {
	return EncoderOptions{
		Eol:                    "\n",
		BracesSameLine:         true,
		EmitRootBraces:         true,
		IndentBy:               "  ",
		PreserveInsertionOrder: true,
		Comments:               true,
	}
}

// Marshal writes v as Hjson text using DefaultOptions.
func Marshal(v Value) ([]byte, error) {
	return MarshalWithOptions(v, DefaultOptions())
}

// MarshalWithOptions writes v as Hjson text.
func MarshalWithOptions(v Value, opts EncoderOptions) ([]byte, error) {
	if opts.Eol == "" {
		opts.Eol = "\n"
	}
	e := &encoder{opts: opts}
	if opts.Comments && v.n != nil && v.n.cm.before != "" {
		for _, line := range strings.Split(v.n.cm.before, "\n") {
			e.buf.WriteString(strings.TrimSpace(line))
			e.buf.WriteString(opts.Eol)
		}
	}
	if err := e.value(v, 0, true, "", true); err != nil {
		return nil, err
	}
	e.buf.WriteString(opts.Eol)
	return e.buf.Bytes(), nil
}

// MarshalJson writes v as plain JSON: every string and key quoted, commas
// between elements, no comments.
func MarshalJson(v Value) ([]byte, error) {
	opts := DefaultOptions()
	opts.QuoteAlways = true
	opts.QuoteKeys = true
	opts.Separator = true
	opts.Comments = false
	return MarshalWithOptions(v, opts)
}

// Strings matching needsQuotes would change meaning or break the line
// structure if written bare. needsEscape marks strings that cannot appear
// verbatim between double quotes; needsEscapeML marks the subset that not
// even the multiline form can carry.
var (
	needsQuotes   = regexp.MustCompile(`^\s|^"|^'|^#|^/\*|^//|^\{|^\}|^\[|^\]|^:|^,|\s$|[\x00-\x1f\x7f-\x9f\x{00ad}\x{0600}-\x{0604}\x{070f}\x{17b4}\x{17b5}\x{200c}-\x{200f}\x{2028}-\x{202f}\x{2060}-\x{206f}\x{feff}\x{fff0}-\x{ffff}]`)
	needsEscape   = regexp.MustCompile(`[\\"\x00-\x1f\x7f-\x9f\x{00ad}\x{0600}-\x{0604}\x{070f}\x{17b4}\x{17b5}\x{200c}-\x{200f}\x{2028}-\x{202f}\x{2060}-\x{206f}\x{feff}\x{fff0}-\x{ffff}]`)
	needsEscapeML = regexp.MustCompile(`'''|^[\s]+$|[\x00-\x08\x0b-\x1f\x7f-\x9f\x{00ad}\x{0600}-\x{0604}\x{070f}\x{17b4}\x{17b5}\x{200c}-\x{200f}\x{2028}-\x{202f}\x{2060}-\x{206f}\x{feff}\x{fff0}-\x{ffff}]`)
)

// quoteReplace escapes everything needsEscape matches, falling back to a
// \uXXXX escape for characters without a short form.
func quoteReplace(text string) string {
	return string(needsEscape.ReplaceAllFunc([]byte(text), func(a []byte) []byte {
		switch string(a) {
		case "\\":
			return []byte(`\\`)
		case "\"":
			return []byte(`\"`)
		case "\b":
			return []byte(`\b`)
		case "\f":
			return []byte(`\f`)
		case "\n":
			return []byte(`\n`)
		case "\r":
			return []byte(`\r`)
		case "\t":
			return []byte(`\t`)
		default:
			r, _ := utf8.DecodeRune(a)
			return []byte(fmt.Sprintf(`\u%04x`, r))
		}
	}))
}

type encoder struct {
	buf  bytes.Buffer
	opts EncoderOptions
}

func (e *encoder) indent(depth int) {
	e.buf.WriteString(e.opts.Eol)
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.opts.IndentBy)
	}
}

func (e *encoder) comma(more bool) {
	if more && e.opts.Separator {
		e.buf.WriteByte(',')
	}
}

// quoteString writes a string value, choosing between the quoteless,
// quoted, and multiline representations.
func (e *encoder) quoteString(s string, depth int, separator string, hasCommentAfter bool) {
	if s == "" {
		e.buf.WriteString(separator + `""`)
		return
	}
	if e.opts.QuoteAlways || e.opts.Separator ||
		needsQuotes.MatchString(s) ||
		number.StartsWith([]byte(s)) ||
		startsWithKeyword(s) ||
		hasCommentAfter {
		switch {
		case !needsEscape.MatchString(s):
			e.buf.WriteString(separator + `"` + s + `"`)
		case !e.opts.QuoteAlways && !e.opts.Separator && !needsEscapeML.MatchString(s) &&
			(strings.Contains(s, "\n") || (s[0] != ' ' && s[0] != '\t')):
			// A one-line ''' form cannot carry leading whitespace;
			// such strings stay in quotes.
			e.mlString(s, depth, separator)
		default:
			e.buf.WriteString(separator + `"` + quoteReplace(s) + `"`)
		}
		return
	}
	e.buf.WriteString(separator + s)
}

func (e *encoder) mlString(s string, depth int, separator string) {
	lines := strings.Split(s, "\n")
	if len(lines) == 1 {
		e.buf.WriteString(separator + "'''")
		e.buf.WriteString(lines[0])
		e.buf.WriteString("'''")
		return
	}
	e.indent(depth + 1)
	e.buf.WriteString("'''")
	for _, line := range lines {
		if line == "" {
			// Keep blank lines truly blank, without trailing indent.
			e.buf.WriteString(e.opts.Eol)
		} else {
			e.indent(depth + 1)
			e.buf.WriteString(line)
		}
	}
	e.indent(depth + 1)
	e.buf.WriteString("'''")
}

// startsWithKeyword reports whether s would decode as true, false or null:
// the keyword followed by nothing but whitespace or a comment.
func startsWithKeyword(s string) bool {
	var rest string
	switch {
	case strings.HasPrefix(s, "true"), strings.HasPrefix(s, "null"):
		rest = s[4:]
	case strings.HasPrefix(s, "false"):
		rest = s[5:]
	default:
		return false
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ',', ']', '}', '#':
		return true
	case '/':
		return len(rest) > 1 && (rest[1] == '/' || rest[1] == '*')
	}
	return false
}

// rootStringAmbiguous mirrors the decoder's braceless-object detection: a
// colon outside quotes, before any comma, makes the text parse as a pair.
func rootStringAmbiguous(s string) bool {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch {
		case inQuote:
			if s[i] == '\\' {
				i++
			} else if s[i] == '"' {
				inQuote = false
			}
		case s[i] == '"':
			inQuote = true
		case s[i] == ':':
			return true
		case s[i] == ',':
			return false
		}
	}
	return false
}

func (e *encoder) quoteKey(key string) {
	if key == "" {
		e.buf.WriteString(`""`)
		return
	}
	if e.opts.QuoteKeys || strings.ContainsAny(key, "{}[],: \t\r\n'\"") ||
		needsQuotes.MatchString(key) {
		if needsEscape.MatchString(key) {
			e.buf.WriteString(`"` + quoteReplace(key) + `"`)
		} else {
			e.buf.WriteString(`"` + key + `"`)
		}
		return
	}
	e.buf.WriteString(key)
}

// commentBefore writes cm at the position where the following value's line
// begins; each comment line is followed by a fresh break and indent so the
// value lands below the comment.
func (e *encoder) commentBefore(cm string, depth int) {
	for _, line := range strings.Split(cm, "\n") {
		e.buf.WriteString(strings.TrimSpace(line))
		e.indent(depth)
	}
}

func (e *encoder) commentAfter(cm string) {
	if cm == "" {
		return
	}
	e.buf.WriteByte(' ')
	// An after-comment rides on the value's line; fold any line breaks
	// so it cannot spill into the next element.
	e.buf.WriteString(strings.ReplaceAll(cm, "\n", " "))
}

// value writes v. noIndent suppresses brace placement on a fresh line (set
// for array elements and the root), separator is the text between a key's
// colon and the value, and isRoot enables the root-brace rules.
func (e *encoder) value(v Value, depth int, noIndent bool, separator string, isRoot bool) error {
	n := v.n
	if n == nil {
		n = &node{}
	}
	cmAfter := ""
	if e.opts.Comments {
		cmAfter = n.cm.after
	}

	switch n.typ {
	case Undefined:
		if !isRoot && !e.opts.UnknownAsNull {
			return &TypeError{Op: "Marshal", Got: Undefined}
		}
		e.buf.WriteString(separator + "null")
	case Null:
		e.buf.WriteString(separator + "null")
	case Bool:
		e.buf.WriteString(separator + strconv.FormatBool(n.b))
	case Int64:
		e.buf.WriteString(separator + strconv.FormatInt(n.i, 10))
	case Double:
		// Inf and NaN have no representation in the output grammar; a bare
		// rendering would decode as a string.
		if math.IsInf(n.d, 0) || math.IsNaN(n.d) {
			return fmt.Errorf("hjson: Marshal: cannot encode non-finite number %v", n.d)
		}
		e.buf.WriteString(separator + e.formatFloat(n.d))
	case String:
		force := cmAfter != ""
		if isRoot && rootStringAmbiguous(n.s) {
			// Bare at the root, a colon would turn the text into a
			// braceless object on the way back in.
			force = true
		}
		e.quoteString(n.s, depth, separator, force)
	case Vector:
		if err := e.vector(n, depth, noIndent, separator); err != nil {
			return err
		}
	case Map:
		if err := e.object(n, depth, noIndent, separator, isRoot); err != nil {
			return err
		}
	}

	e.commentAfter(cmAfter)
	return nil
}

func (e *encoder) formatFloat(d float64) string {
	s := formatDouble(d)
	if s == "-0.0" && !e.opts.AllowMinusZero {
		return "0"
	}
	if s == "-0.0" {
		return "-0"
	}
	return s
}

func (e *encoder) vector(n *node, depth int, noIndent bool, separator string) error {
	if len(n.vec) == 0 {
		e.buf.WriteString(separator + "[]")
		return nil
	}
	if noIndent || e.opts.BracesSameLine {
		e.buf.WriteString(separator + "[")
	} else {
		e.indent(depth)
		e.buf.WriteString("[")
	}

	for i, elem := range n.vec {
		e.indent(depth + 1)
		if e.opts.Comments && elem.cm.before != "" {
			e.commentBefore(elem.cm.before, depth+1)
		}
		if err := e.value(Value{n: elem}, depth+1, true, "", false); err != nil {
			return err
		}
		e.comma(i < len(n.vec)-1)
	}
	if e.opts.Comments && n.cm.inside != "" {
		e.indent(depth + 1)
		e.buf.WriteString(n.cm.inside)
	}
	e.indent(depth)
	e.buf.WriteString("]")
	return nil
}

func (e *encoder) object(n *node, depth int, noIndent bool, separator string, isRoot bool) error {
	braces := !isRoot || e.opts.EmitRootBraces
	if len(n.ks) == 0 {
		e.buf.WriteString(separator + "{}")
		return nil
	}

	innerDepth := depth
	if braces {
		innerDepth = depth + 1
		if noIndent || e.opts.BracesSameLine {
			e.buf.WriteString(separator + "{")
		} else {
			e.indent(depth)
			e.buf.WriteString("{")
		}
	}

	keys := n.ks
	if !e.opts.PreserveInsertionOrder {
		keys = sortedKeys(n.m)
	}

	for i, key := range keys {
		elem := n.m[key]
		if braces || i > 0 {
			e.indent(innerDepth)
		}
		if e.opts.Comments && elem.cm.before != "" {
			e.commentBefore(elem.cm.before, innerDepth)
		}
		e.quoteKey(key)
		if e.opts.Comments && elem.cm.key != "" {
			// A single-line block comment fits inline before the
			// colon; anything else needs a break so the colon is
			// not swallowed by the comment.
			if strings.HasPrefix(elem.cm.key, "/*") && !strings.Contains(elem.cm.key, "\n") {
				e.buf.WriteString(" " + elem.cm.key)
			} else {
				e.buf.WriteByte(' ')
				e.commentBefore(elem.cm.key, innerDepth)
			}
		}
		e.buf.WriteByte(':')
		if err := e.value(Value{n: elem}, innerDepth, false, " ", false); err != nil {
			return err
		}
		e.comma(i < len(keys)-1)
	}
	if e.opts.Comments && n.cm.inside != "" {
		e.indent(innerDepth)
		e.buf.WriteString(n.cm.inside)
	}
	if braces {
		e.indent(depth)
		e.buf.WriteString("}")
	}
	return nil
}
