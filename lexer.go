package wavefront

// A lexer tokenizes OBJ and MTL source text. Both file formats share the
// same lexical conventions: space, tab and backslash separate tokens,
// carriage return and line feed are tokens in their own right, and a '#'
// starts a comment that runs to (but excludes) the next newline.
//
// The lexer scans its own byte copy of the input, and each token is copied
// out of that buffer into a new string; tokens do not share memory with the
// input string.

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\\' || ch == '\t'
}

func isNewline(ch byte) bool {
	return ch == '\n' || ch == '\r'
}

func isWhitespaceOrNewline(ch byte) bool {
	return isWhitespace(ch) || isNewline(ch)
}

// lexer scans a byte stream into whitespace/newline/comment-aware tokens.
type lexer struct {
	lineNumber int
	pos        int
	stream     []byte
}

func newLexer(input string) *lexer {
	return &lexer{lineNumber: 1, stream: []byte(input)}
}

func (l *lexer) peek() (byte, bool) {
	if l.pos >= len(l.stream) {
		return 0, false
	}
	return l.stream[l.pos], true
}

func (l *lexer) advance() {
	if ch, ok := l.peek(); ok && isNewline(ch) {
		l.lineNumber++
	}
	l.pos++
}

func (l *lexer) skipWhile(predicate func(byte) bool) int {
	skipped := 0
	for {
		ch, ok := l.peek()
		if !ok || !predicate(ch) {
			break
		}
		l.advance()
		skipped++
	}
	return skipped
}

func (l *lexer) skipUnless(notPredicate func(byte) bool) int {
	return l.skipWhile(func(ch byte) bool { return !notPredicate(ch) })
}

func (l *lexer) skipComment() int {
	if ch, ok := l.peek(); ok && ch == '#' {
		return l.skipUnless(isNewline)
	}
	return 0
}

func (l *lexer) skipWhitespace() int {
	return l.skipWhile(isWhitespace)
}

// nextToken returns the next raw token and whether one was found.
func (l *lexer) nextToken() (string, bool) {
	l.skipWhitespace()
	l.skipComment()

	start := l.pos

	ch, ok := l.peek()
	if !ok {
		return "", false
	}
	if isNewline(ch) {
		l.advance()
		return string(l.stream[start:l.pos]), true
	}

	skipped := l.skipUnless(func(c byte) bool { return isWhitespaceOrNewline(c) || c == '#' })
	if skipped > 0 {
		return string(l.stream[start:l.pos]), true
	}
	return "", false
}

// tokenStream wraps a lexer with one token of lookahead, the only lookahead
// the parsers ever need.
type tokenStream struct {
	inner       *lexer
	hasCached   bool
	cachedTok   string
	cachedFound bool
}

func newTokenStream(input string) *tokenStream {
	return &tokenStream{inner: newLexer(input)}
}

func (t *tokenStream) next() (string, bool) {
	if t.hasCached {
		t.hasCached = false
		return t.cachedTok, t.cachedFound
	}
	return t.inner.nextToken()
}

func (t *tokenStream) peek() (string, bool) {
	if t.hasCached {
		return t.cachedTok, t.cachedFound
	}
	tok, ok := t.inner.nextToken()
	t.hasCached = true
	t.cachedTok = tok
	t.cachedFound = ok
	return tok, ok
}

func (t *tokenStream) line() int {
	return t.inner.lineNumber
}
