package calc

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zephyrtronium/bigfloat"
)

// Token is a lexeme of an infix expression.
type Token struct {
	Text string
	Kind TokenKind
	// Pos is the column of the token's first rune in the input with
	// whitespace removed, starting from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the category of a token.
type TokenKind int

const (
	TokenNone TokenKind = iota
	// TokenInteger is a number with no decimal point or exponent.
	TokenInteger
	// TokenReal is a number with a decimal point or exponent.
	TokenReal
	// TokenRational is a fraction of integers, e.g. 3/4.
	TokenRational
	// TokenComplex is an imaginary or complex number, e.g. i, -2i, 1/2-3i.
	TokenComplex
	// TokenOp is an operator.
	TokenOp
	// TokenOpen is an open bracket.
	TokenOpen
	// TokenClose is a close bracket.
	TokenClose
	// TokenFunc is a function name.
	TokenFunc
	// TokenSep is an argument separator.
	TokenSep
)

var tokenKinds = [...]string{
	TokenNone:     "None",
	TokenInteger:  "Integer",
	TokenReal:     "Real",
	TokenRational: "Rational",
	TokenComplex:  "Complex",
	TokenOp:       "Op",
	TokenOpen:     "Open",
	TokenClose:    "Close",
	TokenFunc:     "Func",
	TokenSep:      "Sep",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKinds) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKinds[k]
}

// number returns whether the token kind is a numeric literal.
func (k TokenKind) number() bool {
	switch k {
	case TokenInteger, TokenReal, TokenRational, TokenComplex:
		return true
	}
	return false
}

// piText is the decimal expansion substituted for π.
var piText = func() string {
	f, _ := bigfloat.Pi(new(big.Float).SetPrec(53)).Float64()
	return strconv.FormatFloat(f, 'f', -1, 64)
}()

// clean removes whitespace from src and replaces π or pi with its decimal
// expansion. π must not be juxtaposed with a number, name, or bracket.
func clean(src string) (string, error) {
	var b strings.Builder
	b.Grow(len(src))
	col := 0
	for i := 0; i < len(src); {
		r, sz := utf8.DecodeRuneInString(src[i:])
		switch {
		case unicode.IsSpace(r):
			i += sz
			continue
		case r == 'π', r == 'p' && strings.HasPrefix(src[i:], "pi") && !isLetter(lastByte(&b)) && !isLetter(byteAt(src, i+2)):
			if r == 'p' {
				sz = 2
			}
			if c := lastByte(&b); isDigit(c) || isLetter(c) || c == '.' || c == ')' {
				return "", &LexError{Text: string(c) + "π", Kind: "constant", Col: col + 1}
			}
			if c := nextVisible(src[i+sz:]); isDigit(c) || isLetter(c) || c == '.' || c == '(' {
				return "", &LexError{Text: "π" + string(c), Kind: "constant", Col: col + 1}
			}
			b.WriteString(piText)
			col += len(piText)
			i += sz
			continue
		}
		b.WriteRune(r)
		col++
		i += sz
	}
	return b.String(), nil
}

func lastByte(b *strings.Builder) byte {
	s := b.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

func nextVisible(s string) byte {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return 0
	}
	return s[0]
}

func byteAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isOp(c byte) bool {
	return c != 0 && strings.IndexByte(Operators, c) >= 0
}

// Tokenize splits an infix expression into tokens using the default
// functions.
func Tokenize(src string) ([]Token, error) {
	s, err := clean(src)
	if err != nil {
		return nil, err
	}
	return tokenize(s, 0, globalfuncs)
}

type lexer struct {
	// src is the input with whitespace removed.
	src string
	// pos is the byte offset of the next unscanned character.
	pos int
	// base is the column offset of src within the whole input.
	base  int
	funcs map[string]Func
	toks  []Token
	// negs holds the indices of -1 tokens synthesized for unary minus
	// before a bracketed group.
	negs []int
}

// tokenize scans src, which must already be cleaned. Token positions are
// offset by base.
func tokenize(src string, base int, funcs map[string]Func) ([]Token, error) {
	l := lexer{src: src, base: base, funcs: funcs}
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return nil, err
		}
	}
	return l.negate(), nil
}

func (l *lexer) emit(start, end int, kind TokenKind) {
	l.toks = append(l.toks, Token{Text: l.src[start:end], Kind: kind, Pos: l.base + start + 1})
	l.pos = end
}

// last returns the most recent token, or a zero token if there is none.
func (l *lexer) last() Token {
	if len(l.toks) == 0 {
		return Token{}
	}
	return l.toks[len(l.toks)-1]
}

// operand returns whether the next token is in operand position, i.e. at the
// start, after an operator, an open bracket, or a separator.
func (l *lexer) operand() bool {
	switch l.last().Kind {
	case TokenNone, TokenOp, TokenOpen, TokenSep:
		return true
	}
	return false
}

// word returns the run of letters in s starting at p.
func word(s string, p int) string {
	e := p
	for e < len(s) && isLetter(s[e]) {
		e++
	}
	return s[p:e]
}

func (l *lexer) word(p int) string {
	return word(l.src, p)
}

// unit returns whether p is a lone imaginary unit i.
func (l *lexer) unit(p int) bool {
	return l.word(p) == "i" && !isDigit(byteAt(l.src, p+1))
}

func (l *lexer) next() error {
	start := l.pos
	c := l.src[start]
	switch {
	case isDigit(c), c == '.', c == 'i' && l.unit(start):
		return l.number(start)
	case c == '-' && l.operand():
		d := byteAt(l.src, start+1)
		switch {
		case isDigit(d), d == '.', d == 'i' && l.unit(start+1):
			return l.number(start)
		case d == '(', isLetter(d):
			// Unary minus before a group becomes -1 * group. negate adds
			// the brackets around it once the group is complete.
			l.negs = append(l.negs, len(l.toks))
			l.toks = append(l.toks,
				Token{Text: "-1", Kind: TokenInteger, Pos: l.base + start + 1},
				Token{Text: "*", Kind: TokenOp, Pos: l.base + start + 1},
			)
			l.pos++
			return nil
		}
		l.emit(start, start+1, TokenOp)
	case isOp(c):
		l.emit(start, start+1, TokenOp)
	case c == '(':
		l.emit(start, start+1, TokenOpen)
	case c == ')':
		l.emit(start, start+1, TokenClose)
	case c == ',':
		l.emit(start, start+1, TokenSep)
	case isLetter(c):
		w := l.word(start)
		if l.funcs[w] == nil {
			return &LexError{Text: w, Kind: "function", Col: l.base + start + 1}
		}
		l.emit(start, start+len(w), TokenFunc)
	default:
		r, _ := utf8.DecodeRuneInString(l.src[start:])
		return &LexError{Text: string(r), Col: l.base + start + 1}
	}
	return nil
}

// number scans a numeric literal, possibly starting with a unary minus.
// The longest of the complex, rational, and real forms that cannot change
// meaning under operator precedence is chosen.
func (l *lexer) number(start int) error {
	p := start
	if l.src[p] == '-' {
		p++
	}
	if l.src[p] == 'i' {
		l.emit(start, p+1, TokenComplex)
		return nil
	}
	end, kind, err := l.real(p)
	if err != nil {
		return err
	}
	if l.unit(end) {
		l.emit(start, end+1, TokenComplex)
		return nil
	}
	if kind == TokenInteger && byteAt(l.src, end) == '/' && isDigit(byteAt(l.src, end+1)) && l.fractionOK() {
		e, k, err := l.real(end + 1)
		if err == nil && k == TokenInteger {
			if l.unit(e) {
				l.emit(start, e+1, TokenComplex)
				return nil
			}
			end, kind = e, TokenRational
		}
	}
	if c := byteAt(l.src, end); (c == '+' || c == '-') && l.complexOK() {
		if e, ok := l.imaginary(end + 1); ok {
			switch byteAt(l.src, e) {
			case 0, ')', ',', '+', '-':
				l.emit(start, e, TokenComplex)
				return nil
			}
		}
	}
	l.emit(start, end, kind)
	return nil
}

// fractionOK returns whether a/b may be scanned as one token. After a
// division, a/b/c must divide left to right.
func (l *lexer) fractionOK() bool {
	t := l.last()
	return t.Kind != TokenOp || t.Text != "/"
}

// complexOK returns whether a±bi may be scanned as one token, which is only
// the case where nothing binds more tightly than the ± within it.
func (l *lexer) complexOK() bool {
	t := l.last()
	switch t.Kind {
	case TokenNone, TokenOpen, TokenSep:
		return true
	case TokenOp:
		return t.Text == "+"
	}
	return false
}

// imaginary scans the imaginary part of a complex literal starting at p,
// after its sign. It returns the end of the literal including the i.
func (l *lexer) imaginary(p int) (int, bool) {
	if l.unit(p) {
		return p + 1, true
	}
	if !isDigit(byteAt(l.src, p)) && byteAt(l.src, p) != '.' {
		return 0, false
	}
	e, k, err := l.real(p)
	if err != nil {
		return 0, false
	}
	if k == TokenInteger && byteAt(l.src, e) == '/' && isDigit(byteAt(l.src, e+1)) {
		e2, k2, err := l.real(e + 1)
		if err != nil || k2 != TokenInteger {
			return 0, false
		}
		e = e2
	}
	if !l.unit(e) {
		return 0, false
	}
	return e + 1, true
}

// real scans an unsigned decimal number with optional fraction and exponent
// starting at p. It returns the end of the number and whether it is an
// integer or real.
func (l *lexer) real(p int) (int, TokenKind, error) {
	var dig, dot, e, ed bool
	i := p
scan:
	for ; i < len(l.src); i++ {
		switch c := l.src[i]; {
		case isDigit(c):
			if e {
				ed = true
			} else {
				dig = true
			}
		case c == '.':
			if dot || e {
				return 0, 0, l.error(p, i+1, "number")
			}
			dot = true
		case c == 'e' || c == 'E':
			if !dig || e || !isDigit(byteAt(l.src, i+1)) && !isSign(byteAt(l.src, i+1)) {
				if isLetter(byteAt(l.src, i+1)) && l.funcs[l.word(i)] != nil {
					// A function name juxtaposed with the number.
					break scan
				}
				return 0, 0, l.error(p, i+1, "number")
			}
			e = true
			if isSign(l.src[i+1]) {
				i++
			}
		default:
			break scan
		}
	}
	if !dig || e && !ed {
		return 0, 0, l.error(p, i, "number")
	}
	if dot || e {
		return i, TokenReal, nil
	}
	return i, TokenInteger, nil
}

func isSign(c byte) bool {
	return c == '+' || c == '-'
}

func (l *lexer) error(start, end int, kind string) error {
	if end > len(l.src) {
		end = len(l.src)
	}
	return &LexError{
		Text: l.src[start:end],
		Kind: kind,
		Col:  l.base + end,
	}
}

// negate wraps each synthesized -1 * group in brackets so that the
// negation binds to the group alone.
func (l *lexer) negate() []Token {
	toks := l.toks
	for k := len(l.negs) - 1; k >= 0; k-- {
		i := l.negs[k]
		g := i + 2
		if g < len(toks) && toks[g].Kind == TokenFunc {
			g++
		}
		if g >= len(toks) || toks[g].Kind != TokenOpen {
			continue
		}
		e := closing(toks, g)
		if e < 0 {
			// Leave the brackets unbalanced for the parser to report.
			continue
		}
		open := Token{Text: "(", Kind: TokenOpen, Pos: toks[i].Pos}
		cls := Token{Text: ")", Kind: TokenClose, Pos: toks[e].Pos}
		r := make([]Token, 0, len(toks)+2)
		r = append(r, toks[:i]...)
		r = append(r, open)
		r = append(r, toks[i:e+1]...)
		r = append(r, cls)
		toks = append(r, toks[e+1:]...)
	}
	return toks
}

// closing finds the index of the token closing the bracket at toks[i].
func closing(toks []Token, i int) int {
	d := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].Kind {
		case TokenOpen:
			d++
		case TokenClose:
			d--
			if d == 0 {
				return j
			}
		}
	}
	return -1
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, including the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This may be "number",
	// "function", "constant", or the empty string if a token kind hadn't
	// been decided.
	Kind string
	// Col is the column of the error in the input with whitespace removed.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}
