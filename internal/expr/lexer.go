package expr

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// symbolReplacer maps typographic operators that NFKC leaves alone.
var symbolReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"×", "*", // multiplication sign
	"÷", "/", // division sign
)

// Normalize folds compatibility characters (fullwidth digits and operators)
// to ASCII and trims surrounding space. Evaluation, cache keys and error
// positions all refer to the normalized text.
func Normalize(src string) string {
	return strings.TrimSpace(symbolReplacer.Replace(norm.NFKC.String(src)))
}

// Lexer splits normalized input into tokens.
type Lexer struct {
	src string
	off int
}

// NewLexer returns a lexer over src. src is expected to be normalized.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. After the input is exhausted it keeps returning EOF.
func (lx *Lexer) Next() Token {
	lx.skipSpace()
	if lx.off >= len(lx.src) {
		return Token{Kind: EOF, Pos: len(lx.src)}
	}

	start := lx.off
	ch := lx.src[lx.off]
	switch {
	case isDigit(ch):
		return lx.scanNumber()
	case isIdentStart(ch):
		return lx.scanIdent()
	}

	lx.off++
	kind := Invalid
	switch ch {
	case '+':
		kind = Plus
		if lx.peek() == '+' {
			lx.off++
			kind = PlusPlus
		}
	case '-':
		kind = Minus
		if lx.peek() == '-' {
			lx.off++
			kind = MinusMinus
		}
	case '*':
		kind = Star
	case '/':
		kind = Slash
	case '%':
		kind = Percent
	case '^':
		kind = Caret
	case '!':
		kind = Bang
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	case '=':
		kind = Assign
	default:
		// Swallow the whole rune so the error text is readable.
		if ch >= utf8.RuneSelf {
			_, size := utf8.DecodeRuneInString(lx.src[start:])
			lx.off = start + size
		}
	}
	return Token{Kind: kind, Pos: start, Text: lx.src[start:lx.off]}
}

// All returns every token up to and including EOF.
func (lx *Lexer) All() []Token {
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks
		}
	}
}

func (lx *Lexer) peek() byte {
	if lx.off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.off]
}

func (lx *Lexer) skipSpace() {
	for lx.off < len(lx.src) {
		switch lx.src[lx.off] {
		case ' ', '\t', '\r', '\n':
			lx.off++
		default:
			return
		}
	}
}

// scanNumber reads [0-9][0-9_]*. Underscores are digit separators and are
// removed from Text.
func (lx *Lexer) scanNumber() Token {
	start := lx.off
	for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
		lx.off++
	}
	raw := lx.src[start:lx.off]
	if strings.HasSuffix(raw, "_") || strings.Contains(raw, "__") {
		return Token{Kind: Invalid, Pos: start, Text: raw}
	}
	return Token{Kind: Int, Pos: start, Text: strings.ReplaceAll(raw, "_", "")}
}

func (lx *Lexer) scanIdent() Token {
	start := lx.off
	for lx.off < len(lx.src) && (isIdentStart(lx.src[lx.off]) || isDigit(lx.src[lx.off])) {
		lx.off++
	}
	return Token{Kind: Name, Pos: start, Text: lx.src[start:lx.off]}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
