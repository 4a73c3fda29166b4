package main

import (
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func useColor(cfg *MainConfig, w io.Writer) bool {
	if cfg.NoColor {
		return false
	}
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

var (
	commentColor = color.BlueString
	keyColor     = color.RGB(196, 96, 16).SprintfFunc()
	numberColor  = color.RGB(128, 216, 236).SprintfFunc()
	nullColor    = color.RGB(168, 0, 196).SprintfFunc()
	boolColor    = color.CyanString
	stringColor  = color.RGB(128, 168, 196).SprintfFunc()
	punctColor   = color.RGB(255, 0, 196).SprintfFunc()
)

// highlight writes encoded output with terminal colors. It works line by
// line on text the encoder produced, so it only needs to track the two
// multi-line constructs: block comments and ''' strings.
func highlight(w io.Writer, data []byte) error {
	inBlock := false // inside /* */
	inML := false    // inside ''' '''
	for _, line := range strings.SplitAfter(string(data), "\n") {
		body := strings.TrimRight(line, "\n")
		eol := line[len(body):]

		var out string
		switch {
		case inBlock:
			out = commentColor("%s", body)
			if strings.Contains(body, "*/") {
				inBlock = false
			}
		case inML:
			out = stringColor("%s", body)
			if strings.Contains(body, "'''") {
				inML = false
			}
		default:
			out = highlightLine(body, &inBlock, &inML)
		}
		if _, err := io.WriteString(w, out+eol); err != nil {
			return err
		}
	}
	return nil
}

func highlightLine(line string, inBlock, inML *bool) string {
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	rest := line[len(indent):]

	switch {
	case rest == "":
		return line
	case strings.HasPrefix(rest, "#") || strings.HasPrefix(rest, "//"):
		return indent + commentColor("%s", rest)
	case strings.HasPrefix(rest, "/*"):
		if !strings.Contains(rest, "*/") {
			*inBlock = true
		}
		return indent + commentColor("%s", rest)
	}

	key, val, found := splitKey(rest)
	var sb strings.Builder
	sb.WriteString(indent)
	if found {
		sb.WriteString(keyColor("%s", key))
		sb.WriteString(punctColor(":"))
	}
	sb.WriteString(highlightValue(val, inML))
	return sb.String()
}

// splitKey splits "key: value" at the first colon outside quotes.
func splitKey(s string) (key, val string, found bool) {
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
			return s[:i], s[i+1:], true
		case s[i] == '{' || s[i] == '[' || s[i] == '#':
			return "", s, false
		}
	}
	return "", s, false
}

func highlightValue(s string, inML *bool) string {
	lead := s[:len(s)-len(strings.TrimLeft(s, " "))]
	v := s[len(lead):]
	trail := v[len(strings.TrimRight(v, " ,")):]
	v = v[:len(v)-len(trail)]

	var out string
	switch {
	case v == "":
		out = ""
	case v == "{" || v == "}" || v == "[" || v == "]" || v == "{}" || v == "[]":
		out = punctColor("%s", v)
	case v == "null":
		out = nullColor("%s", v)
	case v == "true" || v == "false":
		out = boolColor("%s", v)
	case strings.HasPrefix(v, "'''"):
		if !strings.Contains(v[3:], "'''") {
			*inML = true
		}
		out = stringColor("%s", v)
	case isNumberText(v):
		out = numberColor("%s", v)
	default:
		out = stringColor("%s", v)
	}
	return lead + out + punctColor("%s", trail)
}

func isNumberText(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i++
	}
	if i >= len(s) {
		return false
	}
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.' || s[i] == 'e' || s[i] == 'E' || s[i] == '+' || s[i] == '-':
		default:
			return false
		}
	}
	return true
}
