package hjson

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/10088/hjson-go/internal/number"
)

const defaultMaxDepth = 512

// DecoderOptions configures Unmarshal.
type DecoderOptions struct {
	// Comments enables capturing of comment text onto the decoded values.
	Comments bool
	// MaxDepth bounds the nesting of containers to keep malicious input
	// from exhausting the stack. Zero means the default of 512.
	MaxDepth int
}

// DefaultDecoderOptions returns the options used by Unmarshal: comments are
// captured and nesting is limited to the default depth.
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{Comments: true, MaxDepth: defaultMaxDepth}
}

// Unmarshal parses Hjson (or plain JSON) text into a Value tree, capturing
// comments. One syntax violation fails the whole decode; no partial tree is
// returned.
func Unmarshal(data []byte) (Value, error) {
	return UnmarshalWithOptions(data, DefaultDecoderOptions())
}

// UnmarshalWithOptions parses Hjson text into a Value tree.
func UnmarshalWithOptions(data []byte, opts DecoderOptions) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	p := &parser{data: data, opts: opts}
	p.next()
	return p.rootValue()
}

// parser is a single-pass recursive-descent parser over raw bytes. ch holds
// the current byte and is zero once the end of input has been passed; at is
// the index one past ch.
type parser struct {
	data  []byte
	at    int
	ch    byte
	opts  DecoderOptions
	depth int
}

func (p *parser) next() bool {
	if p.at < len(p.data) {
		p.ch = p.data[p.at]
		p.at++
		return true
	}
	p.ch = 0
	p.at = len(p.data) + 1
	return false
}

// peek returns the byte offs positions after the current one, or zero past
// the end of input.
func (p *parser) peek(offs int) byte {
	pos := p.at + offs
	if pos >= 0 && pos < len(p.data) {
		return p.data[pos]
	}
	return 0
}

// errAt builds a SyntaxError at the current position.
func (p *parser) errAt(format string, args ...any) error {
	off := p.at - 1
	if off > len(p.data) {
		off = len(p.data)
	}
	if off < 0 {
		off = 0
	}
	line, col := 1, 1
	for i := 0; i < off; i++ {
		if p.data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Offset:  off,
		Line:    line,
		Column:  col,
	}
}

func joinComments(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return a + "\n" + b
}

// white skips whitespace and comments. The text of the skipped comments is
// returned (marker included, lines joined with "\n") when comment capture
// is enabled.
func (p *parser) white() string {
	var cm []string
	for p.ch > 0 {
		for p.ch > 0 && p.ch <= ' ' {
			p.next()
		}
		switch {
		case p.ch == '#' || (p.ch == '/' && p.peek(0) == '/'):
			start := p.at - 1
			for p.ch > 0 && p.ch != '\n' {
				p.next()
			}
			if p.opts.Comments {
				cm = append(cm, string(p.data[start:p.at-1]))
			}
		case p.ch == '/' && p.peek(0) == '*':
			start := p.at - 1
			p.next()
			p.next()
			for p.ch > 0 && !(p.ch == '*' && p.peek(0) == '/') {
				p.next()
			}
			if p.ch > 0 {
				p.next()
				p.next()
			}
			if p.opts.Comments {
				end := p.at - 1
				if end > len(p.data) {
					end = len(p.data)
				}
				cm = append(cm, string(p.data[start:end]))
			}
		default:
			return strings.Join(cm, "\n")
		}
	}
	return strings.Join(cm, "\n")
}

// sameLineComment captures a comment that starts on the current line,
// leaving the terminating newline in place so that it still separates the
// surrounding elements.
func (p *parser) sameLineComment() string {
	for p.ch == ' ' || p.ch == '\t' {
		p.next()
	}
	switch {
	case p.ch == '#' || (p.ch == '/' && p.peek(0) == '/'):
		start := p.at - 1
		for p.ch > 0 && p.ch != '\n' {
			p.next()
		}
		if p.opts.Comments {
			return string(p.data[start : p.at-1])
		}
	case p.ch == '/' && p.peek(0) == '*':
		start := p.at - 1
		p.next()
		p.next()
		for p.ch > 0 && !(p.ch == '*' && p.peek(0) == '/') {
			p.next()
		}
		if p.ch > 0 {
			p.next()
			p.next()
		}
		if p.opts.Comments {
			end := p.at - 1
			if end > len(p.data) {
				end = len(p.data)
			}
			return string(p.data[start:end])
		}
	}
	return ""
}

func isPunctuator(c byte) bool {
	switch c {
	case '{', '}', '[', ']', ',', ':':
		return true
	}
	return false
}

// rootValue parses the top level, where braces around an object are
// optional. A colon appearing before any comma or newline (outside quotes)
// marks a braceless object; otherwise a sequence of values separated by
// commas or newlines decodes as a vector.
func (p *parser) rootValue() (Value, error) {
	cm := p.white()

	var (
		v   Value
		err error
	)
	switch {
	case p.ch == '{':
		v, err = p.readObject(false)
	case p.ch == '[':
		v, err = p.readArray()
	case p.ch == 0:
		return Value{}, p.errAt("found end of input while expecting a value")
	case p.colonBeforeSeparator():
		v, err = p.readObject(true)
	default:
		v, err = p.readValue()
		if err == nil {
			if ca := p.sameLineComment(); ca != "" {
				v.SetCommentAfter(ca)
			}
			trail := p.white()
			if p.ch != 0 {
				v, err = p.restAsVector(v, trail)
			} else if trail != "" {
				v.SetCommentAfter(joinComments(v.CommentAfter(), trail))
			}
		}
	}
	if err != nil {
		return Value{}, err
	}
	if cm != "" {
		v.SetCommentBefore(joinComments(cm, v.CommentBefore()))
	}

	tcm := p.white()
	if p.ch != 0 {
		return Value{}, p.errAt("found trailing characters after the root value")
	}
	if tcm != "" {
		v.SetCommentAfter(joinComments(v.CommentAfter(), tcm))
	}
	return v, nil
}

// restAsVector collects the remaining root-level values into a vector
// together with the already parsed first element.
func (p *parser) restAsVector(first Value, cm string) (Value, error) {
	arr := NewVector()
	if err := arr.PushBack(first); err != nil {
		return Value{}, err
	}
	for p.ch != 0 {
		if p.ch == ',' {
			p.next()
			cm = joinComments(cm, p.white())
			continue
		}
		elem, err := p.readValue()
		if err != nil {
			return Value{}, err
		}
		if cm != "" {
			elem.SetCommentBefore(cm)
		}
		if ca := p.sameLineComment(); ca != "" {
			elem.SetCommentAfter(ca)
		}
		if err := arr.PushBack(elem); err != nil {
			return Value{}, err
		}
		cm = p.white()
	}
	if cm != "" {
		arr.SetCommentAfter(cm)
	}
	return arr, nil
}

// colonBeforeSeparator scans ahead for a ':' before any ',' or newline,
// skipping over quoted spans.
func (p *parser) colonBeforeSeparator() bool {
	inQuote := false
	for i := p.at - 1; i >= 0 && i < len(p.data); i++ {
		c := p.data[i]
		if inQuote {
			switch c {
			case '\\':
				i++
			case '"':
				inQuote = false
			}
			continue
		}
		switch c {
		case '"':
			inQuote = true
		case ':':
			return true
		case ',', '\n':
			return false
		}
	}
	return false
}

func (p *parser) readValue() (Value, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.MaxDepth {
		return Value{}, p.errAt("exceeded maximum nesting depth of %d", p.opts.MaxDepth)
	}

	switch {
	case p.ch == '{':
		return p.readObject(false)
	case p.ch == '[':
		return p.readArray()
	case p.ch == '"':
		s, err := p.readString()
		if err != nil {
			return Value{}, err
		}
		return New(s), nil
	case p.ch == '\'' && p.peek(0) == '\'' && p.peek(1) == '\'':
		s, err := p.readMLString()
		if err != nil {
			return Value{}, err
		}
		return New(s), nil
	default:
		return p.readTfnns()
	}
}

// readString parses a double-quoted string with the standard escapes.
func (p *parser) readString() (string, error) {
	var res bytes.Buffer
	for p.next() {
		switch {
		case p.ch == '"':
			p.next()
			return res.String(), nil
		case p.ch == '\\':
			p.next()
			switch p.ch {
			case '"', '\\', '/':
				res.WriteByte(p.ch)
			case 'b':
				res.WriteByte('\b')
			case 'f':
				res.WriteByte('\f')
			case 'n':
				res.WriteByte('\n')
			case 'r':
				res.WriteByte('\r')
			case 't':
				res.WriteByte('\t')
			case 'u':
				r, err := p.readHex4()
				if err != nil {
					return "", err
				}
				if utf16.IsSurrogate(r) {
					if p.peek(0) != '\\' || p.peek(1) != 'u' {
						return "", p.errAt("unpaired surrogate in unicode escape")
					}
					p.next()
					p.next()
					r2, err := p.readHex4()
					if err != nil {
						return "", err
					}
					c := utf16.DecodeRune(r, r2)
					if c == 0xFFFD {
						return "", p.errAt("invalid surrogate pair in unicode escape")
					}
					res.WriteRune(c)
				} else {
					res.WriteRune(r)
				}
			default:
				return "", p.errAt("invalid escape sequence \\%c", p.ch)
			}
		case p.ch == '\n' || p.ch == '\r':
			return "", p.errAt("bad string containing newline")
		case p.ch < 0x20:
			return "", p.errAt("forbidden control character U+%04X in string", p.ch)
		default:
			res.WriteByte(p.ch)
		}
	}
	return "", p.errAt("unterminated string")
}

func (p *parser) readHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		p.next()
		var d rune
		switch {
		case '0' <= p.ch && p.ch <= '9':
			d = rune(p.ch - '0')
		case 'a' <= p.ch && p.ch <= 'f':
			d = rune(p.ch-'a') + 10
		case 'A' <= p.ch && p.ch <= 'F':
			d = rune(p.ch-'A') + 10
		default:
			return 0, p.errAt("invalid unicode escape")
		}
		r = r*16 + d
	}
	return r, nil
}

// readMLString parses a '''...''' multiline string, stripping per line the
// indentation of the column where the opening quotes sit.
func (p *parser) readMLString() (string, error) {
	indent := 0
	for i := p.at - 2; i >= 0 && p.data[i] != '\n'; i-- {
		indent++
	}

	p.next()
	p.next()
	p.next()

	// Ignore the remainder of the opening line.
	for p.ch > 0 && p.ch <= ' ' && p.ch != '\n' {
		p.next()
	}
	if p.ch == '\n' {
		p.next()
		p.skipIndent(indent)
	}

	var res bytes.Buffer
	for {
		switch {
		case p.ch == 0:
			return "", p.errAt("unterminated multiline string")
		case p.ch == '\'' && p.peek(0) == '\'' && p.peek(1) == '\'':
			p.next()
			p.next()
			p.next()
			s := res.String()
			// The newline before the closing quotes belongs to the
			// layout, not the value.
			s = strings.TrimSuffix(s, "\n")
			return s, nil
		case p.ch == '\n':
			res.WriteByte('\n')
			p.next()
			p.skipIndent(indent)
		default:
			if p.ch != '\r' {
				res.WriteByte(p.ch)
			}
			p.next()
		}
	}
}

func (p *parser) skipIndent(n int) {
	for n > 0 && (p.ch == ' ' || p.ch == '\t') {
		p.next()
		n--
	}
}

// readTfnns parses a quoteless scalar: true, false, null, a number, or a
// bare string running to the end of the line. The numeric and keyword
// classifications are only attempted where a punctuator or comment would
// legally end the value.
func (p *parser) readTfnns() (Value, error) {
	if isPunctuator(p.ch) {
		return Value{}, p.errAt("found '%c' where a value was expected", p.ch)
	}
	chf := p.ch
	var buf bytes.Buffer
	buf.WriteByte(p.ch)

	for {
		p.next()
		isEol := p.ch == '\r' || p.ch == '\n' || p.ch == 0
		if isEol || p.ch == ',' || p.ch == '}' || p.ch == ']' || p.ch == '#' ||
			(p.ch == '/' && (p.peek(0) == '/' || p.peek(0) == '*')) {
			switch chf {
			case 't':
				if strings.TrimSpace(buf.String()) == "true" {
					return New(true), nil
				}
			case 'f':
				if strings.TrimSpace(buf.String()) == "false" {
					return New(false), nil
				}
			case 'n':
				if strings.TrimSpace(buf.String()) == "null" {
					return New(nil), nil
				}
			default:
				if chf == '-' || (chf >= '0' && chf <= '9') {
					if num, ok := number.Parse(buf.Bytes(), true); ok {
						if num.IsInt {
							return New(num.Int), nil
						}
						return New(num.Float), nil
					}
				}
			}
			if isEol {
				return New(strings.TrimSpace(buf.String())), nil
			}
		}
		buf.WriteByte(p.ch)
	}
}

// readKeyname parses a member key: either a quoted string or a bare run of
// characters up to the colon or whitespace.
func (p *parser) readKeyname() (string, error) {
	if p.ch == '"' {
		return p.readString()
	}
	start := p.at - 1
	for {
		switch {
		case p.ch == ':':
			if p.at-1 == start {
				return "", p.errAt("found ':' but no key name")
			}
			return string(p.data[start : p.at-1]), nil
		case p.ch == 0:
			return "", p.errAt("end of input while parsing a key name")
		case p.ch <= ' ':
			return string(p.data[start : p.at-1]), nil
		case isPunctuator(p.ch):
			return "", p.errAt("found '%c' in a key name (use quotes to include {}[],: or whitespace in a key)", p.ch)
		}
		p.next()
	}
}

func (p *parser) readArray() (Value, error) {
	v := NewVector()
	p.next() // consume '['
	cm := p.white()
	for {
		switch {
		case p.ch == 0:
			return Value{}, p.errAt("end of input while parsing an array (did you forget a closing ']'?)")
		case p.ch == ']':
			p.next()
			if cm != "" {
				v.SetCommentInside(cm)
			}
			return v, nil
		}
		elem, err := p.readValue()
		if err != nil {
			return Value{}, err
		}
		if cm != "" {
			elem.SetCommentBefore(cm)
		}
		if ca := p.sameLineComment(); ca != "" {
			elem.SetCommentAfter(ca)
		}
		if err := v.PushBack(elem); err != nil {
			return Value{}, err
		}
		cm = p.white()
		if p.ch == ',' {
			p.next()
			cm = joinComments(cm, p.white())
		}
	}
}

func (p *parser) readObject(withoutBraces bool) (Value, error) {
	v := NewMap()
	if !withoutBraces {
		p.next() // consume '{'
	}
	cm := p.white()
	for {
		switch {
		case p.ch == 0:
			if withoutBraces {
				if cm != "" {
					v.SetCommentInside(cm)
				}
				return v, nil
			}
			return Value{}, p.errAt("end of input while parsing an object (did you forget a closing '}'?)")
		case p.ch == '}':
			if withoutBraces {
				return Value{}, p.errAt("found '}' where a key name was expected")
			}
			p.next()
			if cm != "" {
				v.SetCommentInside(cm)
			}
			return v, nil
		}

		key, err := p.readKeyname()
		if err != nil {
			return Value{}, err
		}
		cmKey := p.white()
		if p.ch != ':' {
			return Value{}, p.errAt("expected ':' after key %q", key)
		}
		p.next()
		cmValue := p.white()

		val, err := p.readValue()
		if err != nil {
			return Value{}, err
		}
		if c := joinComments(cm, cmValue); c != "" {
			val.SetCommentBefore(c)
		}
		if cmKey != "" {
			val.SetCommentKey(cmKey)
		}
		if ca := p.sameLineComment(); ca != "" {
			val.SetCommentAfter(ca)
		}

		if _, err := v.At(key); err == nil {
			return Value{}, p.errAt("duplicate key %q in object", key)
		}
		if err := v.Set(key, val); err != nil {
			return Value{}, err
		}

		cm = p.white()
		if p.ch == ',' {
			p.next()
			cm = joinComments(cm, p.white())
		}
	}
}
