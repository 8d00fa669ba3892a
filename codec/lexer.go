package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind is the kind of a numeric literal token.
type TokenKind uint8

const (
	TokenHex TokenKind = iota // 0x + 2 hex digits
	TokenBin                  // 0b + 8 binary digits
)

// String returns the token kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenHex:
		return "HEX"
	case TokenBin:
		return "BIN"
	default:
		return "UNKNOWN"
	}
}

// width returns the fixed character width of a token of this kind.
func (k TokenKind) width() int {
	if k == TokenBin {
		return 10
	}
	return 4
}

// format renders v with the fixed-width syntax of this kind.
func (k TokenKind) format(v byte) string {
	if k == TokenBin {
		return fmt.Sprintf("0b%08b", v)
	}
	return fmt.Sprintf("0x%02X", v)
}

// Token is one numeric literal and its byte span [Start, End) in the
// scanned text.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Value byte
}

// String returns a debug representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s(%d:%d=0x%02X)", t.Kind, t.Start, t.End, t.Value)
}

const (
	commentOpen  = "/*"
	commentClose = "*/"
)

// StripComments removes every /* ... */ span that opens and closes on the
// same line, closing each at the first following */. An opening /* with no
// close before the end of its line is kept as text.
func StripComments(text string) string {
	var sb strings.Builder
	last, pos := 0, 0
	for {
		open := strings.Index(text[pos:], commentOpen)
		if open < 0 {
			break
		}
		open += pos
		body := text[open+len(commentOpen):]
		end := strings.Index(body, commentClose)
		if end < 0 {
			break
		}
		if strings.Contains(body[:end], "\n") {
			pos = open + len(commentOpen)
			continue
		}
		sb.WriteString(text[last:open])
		last = open + len(commentOpen) + end + len(commentClose)
		pos = last
	}
	sb.WriteString(text[last:])
	return sb.String()
}

// Scan returns the tokens of one kind in text, left to right.
// Matches do not overlap; a longer digit run yields a token for its leading
// digits only, so "0x123" scans as 0x12.
func Scan(text string, kind TokenKind) []Token {
	prefix, base := "0x", 16
	if kind == TokenBin {
		prefix, base = "0b", 2
	}
	w := kind.width()

	var tokens []Token
	for i := 0; i+w <= len(text); {
		digits := text[i+len(prefix) : i+w]
		if !strings.HasPrefix(text[i:], prefix) || !allDigits(digits, base) {
			i++
			continue
		}
		v, err := strconv.ParseUint(digits, base, 8)
		if err != nil {
			i++
			continue
		}
		tokens = append(tokens, Token{Kind: kind, Start: i, End: i + w, Value: byte(v)})
		i += w
	}
	return tokens
}

// Literals strips comments from text and returns the values of its hex
// tokens, or of its binary tokens when there are no hex tokens. ok is false
// when text has neither.
func Literals(text string) (values []byte, kind TokenKind, ok bool) {
	clean := StripComments(text)
	tokens := Scan(clean, TokenHex)
	kind = TokenHex
	if len(tokens) == 0 {
		tokens = Scan(clean, TokenBin)
		kind = TokenBin
	}
	if len(tokens) == 0 {
		return nil, 0, false
	}

	values = make([]byte, len(tokens))
	for i, t := range tokens {
		values[i] = t.Value
	}
	return values, kind, true
}

// Blocks returns the contents of every non-empty {...} group in text that
// contains no nested brace.
func Blocks(text string) []string {
	var blocks []string
	for i := 0; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		j := i + 1
		for j < len(text) && text[j] != '{' && text[j] != '}' {
			j++
		}
		if j < len(text) && text[j] == '}' && j > i+1 {
			blocks = append(blocks, text[i+1:j])
			i = j
		}
	}
	return blocks
}

func allDigits(s string, base int) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '0' || c == '1':
		case base == 16 && (c >= '2' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		default:
			return false
		}
	}
	return true
}
