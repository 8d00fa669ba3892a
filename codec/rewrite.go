package codec

import (
	"fmt"
	"strings"
)

// Defaults for status-register output.
const (
	DefaultInterface = "gStatusLine"
	DefaultLabel     = "indicator_x"
)

// RewriteOptions names the status-register array and offset label.
// Empty fields use DefaultInterface and DefaultLabel.
type RewriteOptions struct {
	Interface string
	Label     string
}

func (o RewriteOptions) withDefaults() RewriteOptions {
	if strings.TrimSpace(o.Interface) == "" {
		o.Interface = DefaultInterface
	}
	if strings.TrimSpace(o.Label) == "" {
		o.Label = DefaultLabel
	}
	o.Label = strings.TrimSpace(o.Label)
	return o
}

// Rewrite renders data in format f.
//
// For FormatHex and FormatBin, when template holds tokens of that kind and
// does not mention the status interface, the leading tokens are replaced in
// place by data (as many as both have) and every other character of
// template is kept. Otherwise a fresh list is returned. FormatStatus always
// yields fresh statements.
func Rewrite(template string, f Format, data []byte, opts RewriteOptions) string {
	opts = opts.withDefaults()

	if f == FormatStatus {
		return Status(data, opts)
	}

	kind := TokenHex
	if f == FormatBin {
		kind = TokenBin
	}
	tokens := Scan(template, kind)
	if len(tokens) == 0 || strings.Contains(template, opts.Interface) {
		return Fresh(f, data, opts)
	}
	return Substitute(template, tokens, data)
}

// Substitute writes data into the spans of tokens, from the last pair to
// the first. Tokens beyond len(data) are left as they are. Replacements keep
// the width of the token they replace, so spans of earlier tokens stay valid.
func Substitute(text string, tokens []Token, data []byte) string {
	buf := []byte(text)
	for i := min(len(tokens), len(data)) - 1; i >= 0; i-- {
		t := tokens[i]
		copy(buf[t.Start:t.End], t.Kind.format(data[i]))
	}
	return string(buf)
}

// Fresh renders data as a new literal list: {0xAA, 0xBB} for FormatHex,
// 0bAAAAAAAA, 0bBBBBBBBB for FormatBin and statements for FormatStatus.
func Fresh(f Format, data []byte, opts RewriteOptions) string {
	switch f {
	case FormatStatus:
		return Status(data, opts.withDefaults())
	case FormatBin:
		return joinTokens(TokenBin, data)
	default:
		return "{" + joinTokens(TokenHex, data) + "}"
	}
}

// Status renders one read-modify-write statement per byte:
//
//	gStatusLine[indicator_x + 0] |= 0x1F;
func Status(data []byte, opts RewriteOptions) string {
	opts = opts.withDefaults()
	lines := make([]string, len(data))
	for i, v := range data {
		lines[i] = fmt.Sprintf("%s[%s + %d] |= 0x%02X;", opts.Interface, opts.Label, i, v)
	}
	return strings.Join(lines, "\n")
}

func joinTokens(kind TokenKind, data []byte) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = kind.format(v)
	}
	return strings.Join(parts, ", ")
}
