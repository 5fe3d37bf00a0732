package lexer

import (
	"strconv"

	"github.com/kconner/goguash/internal/status"
)

// FunctionLookup lets the lexer decide whether an identifier names a
// currently-defined function (spec.md §4.2/§4.3): "When a Variable token is
// created by the lexer it stores a flag indicating whether it names a
// currently-defined function... this is how the single-pass evaluator
// distinguishes function calls from variable references." namespace.Namespace
// satisfies this interface; the lexer only depends on the narrow slice of it
// that it actually needs.
type FunctionLookup interface {
	IsFunction(name string) bool
}

// Option configures a Lexer at construction, grounded on the teacher's
// LexerOption functional-options pattern (CWBudde-go-dws/internal/lexer's
// WithPreserveComments/WithTracing).
type Option func(*Lexer)

// WithFunctionLookup supplies the namespace consulted for Variable/Function
// token classification. Without one, every identifier lexes as Variable.
func WithFunctionLookup(fl FunctionLookup) Option {
	return func(l *Lexer) { l.functions = fl }
}

// Lexer is a single-character-lookahead, byte-oriented scanner (spec.md
// §4.3: "Single-character lookahead scanner operating on a byte buffer").
// Unlike the teacher's rune-based, UTF-8-aware scanner, guash's Non-goals
// explicitly exclude Unicode-aware lexing, so positions here are byte
// offsets/counts, not rune counts.
type Lexer struct {
	src     string
	pos     int // offset of ch
	readPos int // offset of the next byte to read
	ch      byte
	line    int
	column  int

	functions FunctionLookup

	tokenBuffer []Token
	err         *status.Error
}

// New creates a Lexer over src.
func New(src string, opts ...Option) *Lexer {
	l := &Lexer{src: src, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, or nil. Unlike the
// teacher's accumulate-everything Errors() list, guash's single-pass
// parser-evaluator aborts on the first Error status (spec.md §4.4: "Errors
// abort up through recursive calls"), so the lexer only needs to remember
// one.
func (l *Lexer) Err() *status.Error { return l.err }

func (l *Lexer) setErr(st status.Status, msg string) {
	if l.err == nil {
		l.err = status.New(st, l.currentPos(), msg)
	}
}

func (l *Lexer) currentPos() status.Pos {
	return status.Pos{Line: l.line, Column: l.column, Offset: l.pos}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.src) {
		l.ch = 0
		l.pos = l.readPos
	} else {
		l.ch = l.src[l.readPos]
		l.pos = l.readPos
		l.readPos++
	}
	l.column++
}

func (l *Lexer) peekByte() byte {
	if l.readPos >= len(l.src) {
		return 0
	}
	return l.src[l.readPos]
}

func (l *Lexer) peekByteN(n int) byte {
	idx := l.readPos + n - 1
	if idx >= len(l.src) || idx < 0 {
		return 0
	}
	return l.src[idx]
}

func (l *Lexer) matchAndConsume(expected byte) bool {
	if l.ch != expected {
		return false
	}
	l.readChar()
	return true
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isIdentByte(c byte) bool { return isLetter(c) || isDigit(c) }

// skipWhitespaceAndComments skips spaces/tabs/carriage-returns and `#`-to-
// end-of-line comments (spec.md §4.3). Newline is NOT skipped here: it is a
// statement separator and is returned as a Semicolon token.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// tokenHandler dispatches a single operator-starting byte to its handler,
// grounded on the teacher's tokenHandlers dispatch-table pattern
// (CWBudde-go-dws/internal/lexer/lexer.go).
type tokenHandler func(*Lexer, status.Pos) Token

var tokenHandlers = map[byte]tokenHandler{
	'!': (*Lexer).handleNot,
	'~': (*Lexer).handleTilde,
	'*': (*Lexer).handleStar,
	'<': (*Lexer).handleLess,
	'>': (*Lexer).handleGreater,
	'=': (*Lexer).handleEquals,
	'&': (*Lexer).handleAmp,
	'^': (*Lexer).handleCaret,
	'|': (*Lexer).handlePipe,
}

func simple(k Kind, lit string, pos status.Pos) Token {
	return Token{Kind: k, Literal: lit, Pos: pos}
}

func (l *Lexer) handleNot(pos status.Pos) Token {
	l.readChar() // consume '!'
	if l.matchAndConsume('=') {
		return simple(NotEq, "!=", pos)
	}
	return simple(Not, "!", pos)
}

func (l *Lexer) handleTilde(pos status.Pos) Token {
	l.readChar()
	return simple(BitNot, "~", pos)
}

func (l *Lexer) handleStar(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('*') {
		return simple(Pow, "**", pos)
	}
	return simple(Star, "*", pos)
}

func (l *Lexer) handleLess(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('=') {
		return simple(LessEq, "<=", pos)
	}
	if l.matchAndConsume('<') {
		return simple(Shl, "<<", pos)
	}
	return simple(Less, "<", pos)
}

func (l *Lexer) handleGreater(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('=') {
		return simple(GreaterEq, ">=", pos)
	}
	if l.matchAndConsume('>') {
		return simple(Shr, ">>", pos)
	}
	return simple(Greater, ">", pos)
}

func (l *Lexer) handleEquals(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('=') {
		return simple(Eq, "==", pos)
	}
	return simple(Assign, "=", pos)
}

// handleAmp handles `&`, `&&`, and `&~|` (spec.md §4.3's AND-OR operator).
func (l *Lexer) handleAmp(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('&') {
		return simple(AndAnd, "&&", pos)
	}
	if l.ch == '~' && l.peekByte() == '|' {
		l.readChar() // consume '~'
		l.readChar() // consume '|'
		return simple(AndOrXor, "&~|", pos)
	}
	return simple(Amp, "&", pos)
}

func (l *Lexer) handleCaret(pos status.Pos) Token {
	l.readChar()
	return simple(Caret, "^", pos)
}

func (l *Lexer) handlePipe(pos status.Pos) Token {
	l.readChar()
	if l.matchAndConsume('|') {
		return simple(OrOr, "||", pos)
	}
	return simple(Pipe, "|", pos)
}

// readIdentifier reads [A-Za-z_][A-Za-z0-9_]*.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isIdentByte(l.ch) {
		l.readChar()
	}
	return l.src[start:l.pos]
}

// identifierToken classifies identifier text per spec.md §4.3: reserved
// words first, then TRUE/FALSE/NULL, then the bare imaginary unit `i`
// (only when it doesn't resolve to a function), then Variable/Function via
// namespace lookup.
func (l *Lexer) identifierToken(text string, pos status.Pos) Token {
	if k, ok := keywords[text]; ok {
		return simple(k, text, pos)
	}
	switch text {
	case "TRUE":
		return Token{Kind: Integer, Literal: text, IntVal: 1, Pos: pos}
	case "FALSE":
		return Token{Kind: Integer, Literal: text, IntVal: 0, Pos: pos}
	case "NULL":
		return simple(KwNull, text, pos)
	}

	isFunc := l.functions != nil && l.functions.IsFunction(text)
	if text == "i" && !isFunc {
		return simple(ImaginaryUnit, text, pos)
	}
	if isFunc {
		return simple(Function, text, pos)
	}
	return simple(Variable, text, pos)
}

// readNumber reads an Integer or Real literal per spec.md §4.3: hex `0x…`,
// octal (leading `0` then digits), or decimal with optional fractional part
// and `e`/`E` exponent (which forces Real). A trailing `i` marks the literal
// imaginary.
func (l *Lexer) readNumber(pos status.Pos) Token {
	start := l.pos

	if l.ch == '0' && (l.peekByte() == 'x' || l.peekByte() == 'X') {
		l.readChar() // '0'
		l.readChar() // 'x'
		for isHexDigit(l.ch) {
			l.readChar()
		}
		lit := l.src[start:l.pos]
		n, _ := strconv.ParseInt(lit[2:], 16, 64)
		return l.maybeImaginary(Token{Kind: Integer, Literal: lit, IntVal: n, Pos: pos})
	}

	isOctal := l.ch == '0' && isDigit(l.peekByte())
	isFloat := false

	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekByte()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lit := l.src[start:l.pos]
	if isFloat {
		f, _ := strconv.ParseFloat(lit, 64)
		return l.maybeImaginary(Token{Kind: Real, Literal: lit, RealVal: f, Pos: pos})
	}
	if isOctal {
		n, err := strconv.ParseInt(lit, 8, 64)
		if err != nil {
			l.setErr(status.ErrorUnexpectedToken, "invalid octal literal: "+lit)
		}
		return l.maybeImaginary(Token{Kind: Integer, Literal: lit, IntVal: n, Pos: pos})
	}
	n, _ := strconv.ParseInt(lit, 10, 64)
	return l.maybeImaginary(Token{Kind: Integer, Literal: lit, IntVal: n, Pos: pos})
}

// maybeImaginary checks for a trailing `i` (spec.md §4.3: "An `i`
// immediately following a numeric literal marks it imaginary").
func (l *Lexer) maybeImaginary(tok Token) Token {
	if l.ch == 'i' && !isIdentByte(l.peekByte()) {
		tok.Imaginary = true
		l.readChar()
	}
	return tok
}

// readString reads a double-quoted string literal with `\\ \" \n \t \r \0`
// escapes (spec.md §4.3). Unterminated strings report
// status.ErrorUnterminatedString.
func (l *Lexer) readString(pos status.Pos) Token {
	l.readChar() // consume opening '"'
	buf := make([]byte, 0, 16)

	for l.ch != '"' {
		if l.ch == 0 {
			l.setErr(status.ErrorUnterminatedString, "unterminated string literal")
			return Token{Kind: String, Literal: string(buf), Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case '\\':
				buf = append(buf, '\\')
			case '"':
				buf = append(buf, '"')
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case 'r':
				buf = append(buf, '\r')
			case '0':
				buf = append(buf, 0)
			default:
				buf = append(buf, l.ch)
			}
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		buf = append(buf, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing '"'
	return Token{Kind: String, Literal: string(buf), Pos: pos}
}

// bracketPairs maps an opening delimiter byte to its matching closer, for
// the balanced-scan length computed by scanBracketSpan.
var bracketPairs = map[byte]byte{'(': ')', '[': ']', '{': '}'}

// scanBracketSpan computes the byte length of the bracketed sub-range
// starting at the opening delimiter currently under the cursor, up to and
// including its match, skipping over string literals and nested brackets of
// any kind (spec.md §4.3). It does not advance the lexer; it only measures.
func (l *Lexer) scanBracketSpan() int {
	open := l.ch
	closer := bracketPairs[open]
	depth := 0
	i := l.pos
	for i < len(l.src) {
		c := l.src[i]
		switch {
		case c == '"':
			i++
			for i < len(l.src) && l.src[i] != '"' {
				if l.src[i] == '\\' {
					i++
				}
				i++
			}
		case c == open:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				return i - l.pos + 1
			}
		}
		i++
	}
	l.setErr(status.ErrorUnclosedExpression, "unbalanced "+string(open))
	return len(l.src) - l.pos
}

func (l *Lexer) delimiterToken(kind Kind, pos status.Pos) Token {
	span := 0
	if _, ok := bracketPairs[l.ch]; ok {
		span = l.scanBracketSpan()
	}
	lit := string(l.ch)
	l.readChar()
	return Token{Kind: kind, Literal: lit, SpanLen: span, Pos: pos}
}

// nextTokenInternal produces the next token without consulting the peek
// buffer.
func (l *Lexer) nextTokenInternal() Token {
	l.skipWhitespaceAndComments()
	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return simple(EOF, "", pos)
	case l.ch == '\n':
		l.readChar()
		l.line++
		l.column = 0
		return simple(Semicolon, "\n", pos)
	case l.ch == ';':
		l.readChar()
		return simple(Semicolon, ";", pos)
	case l.ch == ',':
		l.readChar()
		return simple(Comma, ",", pos)
	case l.ch == '(':
		return l.delimiterToken(LParen, pos)
	case l.ch == ')':
		l.readChar()
		return simple(RParen, ")", pos)
	case l.ch == '[':
		return l.delimiterToken(LBrack, pos)
	case l.ch == ']':
		l.readChar()
		return simple(RBrack, "]", pos)
	case l.ch == '{':
		return l.delimiterToken(LBrace, pos)
	case l.ch == '}':
		l.readChar()
		return simple(RBrace, "}", pos)
	case l.ch == '+':
		l.readChar()
		return simple(Plus, "+", pos)
	case l.ch == '-':
		l.readChar()
		return simple(Minus, "-", pos)
	case l.ch == '/':
		l.readChar()
		return simple(Slash, "/", pos)
	case l.ch == '%':
		l.readChar()
		return simple(Percent, "%", pos)
	case l.ch == '$':
		l.readChar()
		return simple(Dollar, "$", pos)
	case l.ch == '@':
		l.readChar()
		return simple(At, "@", pos)
	case l.ch == '"':
		return l.readString(pos)
	}

	if handler, ok := tokenHandlers[l.ch]; ok {
		return handler(l, pos)
	}
	if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekByte())) {
		return l.readNumber(pos)
	}
	if isLetter(l.ch) {
		return l.identifierToken(l.readIdentifier(), pos)
	}

	bad := string(l.ch)
	l.setErr(status.ErrorUnexpectedToken, "illegal character: "+bad)
	l.readChar()
	return simple(Illegal, bad, pos)
}

// NextToken returns (and consumes) the next token, draining the peek buffer
// first.
func (l *Lexer) NextToken() Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.nextTokenInternal()
}

// Peek returns the token n positions ahead without consuming it; Peek(0) is
// equivalent to what NextToken would return next. Grounded on the teacher's
// Peek(n) lazy token-buffer pattern.
func (l *Lexer) Peek(n int) Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.nextTokenInternal())
	}
	return l.tokenBuffer[n]
}

// SourceSlice returns the raw source bytes [offset, offset+length), for
// callers that capture a sub-range by position (a statement block's body, a
// loop's condition, a parameter's default expression) to re-lex later
// (spec.md §4.4: "the interpreter re-parses the captured span on each
// iteration/call").
func (l *Lexer) SourceSlice(offset, length int) string {
	return l.src[offset : offset+length]
}

// SeekTo resets the read cursor to offset and drops any buffered lookahead,
// so scanning can resume past a span a caller captured and consumed by
// position rather than by token (e.g. after skipping over a block body via
// its LBrace token's SpanLen). Line/column bookkeeping is not reconstructed
// across the jump — only byte offsets matter to the span-capture mechanism,
// and diagnostics for code inside a re-lexed span are produced by a fresh
// Lexer positioned at offset 0 of that span instead.
func (l *Lexer) SeekTo(offset int) {
	l.tokenBuffer = nil
	l.readPos = offset
	l.readChar()
}
