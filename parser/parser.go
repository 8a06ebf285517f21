package parser

import (
	"github.com/RembrandtK/ason/internal/peek"
	"github.com/RembrandtK/ason/internal/source"
	"github.com/RembrandtK/ason/token"
	"github.com/RembrandtK/ason/value"
)

// Parser is a recursive-descent parser driven by a 3-token lookahead ring
// buffer, following the teacher's runeReader mark/restore idiom generalized
// from runes to tokens (internal/peek.Buffer[token.WithRange]). 3 tokens of
// lookahead covers the deepest grammar decision: a NewLine followed by a
// Colon, checked past an already-parsed value inside "[...]".
type Parser struct {
	buf      *peek.Buffer[token.WithRange]
	maxDepth int
	depth    int
}

// Parse consumes upstream (expected to be the fully normalized token
// stream: comments stripped, blanks collapsed, signs applied, trimmed) and
// produces the root value.Node. After parsing the root node, Parse verifies
// the stream is exhausted; a surviving token yields "document has more than
// one node" at that token's start.
func Parse(upstream peek.Source[token.WithRange], opts ...Option) (value.Node, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Parser{buf: peek.New[token.WithRange](upstream, 3), maxDepth: cfg.maxDepth}
	n, err := p.parseNode()
	if err != nil {
		return value.Node{}, err
	}
	tok, ok, err := p.peekTok(0)
	if err != nil {
		return value.Node{}, err
	}
	if ok {
		return value.Node{}, errAt(tok.Range, "document has more than one node")
	}
	return n, nil
}

func (p *Parser) peekTok(offset int) (token.WithRange, bool, error) {
	return p.buf.Peek(offset)
}

func (p *Parser) nextTok() (token.WithRange, bool, error) {
	return p.buf.Next()
}

func (p *Parser) consumeOptionalNewline() error {
	tok, ok, err := p.peekTok(0)
	if err != nil {
		return err
	}
	if ok && tok.Token.Kind == token.NewLine {
		p.nextTok()
	}
	return nil
}

// expectKind consumes the next token if it has kind k, or fails with msg
// (as a located error if a token was present, as an end-of-document error
// otherwise).
func (p *Parser) expectKind(k token.Kind, msg string) (token.WithRange, error) {
	tok, ok, err := p.peekTok(0)
	if err != nil {
		return token.WithRange{}, err
	}
	if !ok {
		return token.WithRange{}, errEOF("%s", msg)
	}
	if tok.Token.Kind != k {
		return token.WithRange{}, errAt(tok.Range, "%s", msg)
	}
	p.nextTok()
	return tok, nil
}

// enterContainer charges one level of nesting depth against maxDepth
// (0 = unlimited), returning a func to release it. Called once per opened
// List/Map/Tuple/Object/Variant-payload bracket.
func (p *Parser) enterContainer(openTok token.WithRange) (func(), error) {
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		return nil, errAt(openTok.Range, "exceeds maximum nesting depth")
	}
	p.depth++
	return func() { p.depth-- }, nil
}

// parseBracketed implements the grammar's uniform separator policy for a
// bracketed production whose opener has already been consumed: optional
// NewLine, then repeatedly parseOne (one element) followed by an optional
// Comma/NewLine separator, until the closer is seen, then the closer is
// consumed. Emptiness is the caller's concern (Tuple and the variant tuple
// payload reject zero elements; List, Map and Object accept it).
func (p *Parser) parseBracketed(closer token.Kind, closerName string, parseOne func() error) (source.Range, error) {
	if err := p.consumeOptionalNewline(); err != nil {
		return source.Range{}, err
	}
	for {
		tok, ok, err := p.peekTok(0)
		if err != nil {
			return source.Range{}, err
		}
		if ok && tok.Token.Kind == closer {
			break
		}
		if !ok {
			return source.Range{}, errEOF("expect %s", closerName)
		}
		if err := parseOne(); err != nil {
			return source.Range{}, err
		}
		sep, ok, err := p.peekTok(0)
		if err != nil {
			return source.Range{}, err
		}
		if ok && (sep.Token.Kind == token.Comma || sep.Token.Kind == token.NewLine) {
			p.nextTok()
			continue
		}
		break
	}
	closeTok, err := p.expectKind(closer, "expect "+closerName)
	if err != nil {
		return source.Range{}, err
	}
	return closeTok.Range, nil
}

// parseNode implements the Node production.
func (p *Parser) parseNode() (value.Node, error) {
	tok, ok, err := p.peekTok(0)
	if err != nil {
		return value.Node{}, err
	}
	if !ok {
		return value.Node{}, errEOF("expected a value")
	}

	switch tok.Token.Kind {
	case token.Number:
		p.nextTok()
		return value.Node{Kind: value.Number, Num: value.NumberFromToken(tok.Token.Num), Range: tok.Range}, nil
	case token.Boolean:
		p.nextTok()
		return value.Node{Kind: value.Boolean, Bool: tok.Token.Bool, Range: tok.Range}, nil
	case token.Char:
		p.nextTok()
		return value.Node{Kind: value.Char, Rune: tok.Token.Rune, Range: tok.Range}, nil
	case token.String:
		p.nextTok()
		return value.Node{Kind: value.String, Str: tok.Token.Str, Range: tok.Range}, nil
	case token.Date:
		p.nextTok()
		return value.Node{Kind: value.DateTime, DateVal: tok.Token.DateVal, Range: tok.Range}, nil
	case token.HexByteData:
		p.nextTok()
		return value.Node{Kind: value.HexByteData, Bytes: tok.Token.Bytes, Range: tok.Range}, nil
	case token.Variant:
		p.nextTok()
		return p.parseVariant(tok)
	case token.LeftBrace:
		return p.parseObject()
	case token.LeftBracket:
		return p.parseListOrMap()
	case token.LeftParen:
		return p.parseTuple()
	default:
		return value.Node{}, errAt(tok.Range, "unexpected token")
	}
}

// parseObject implements the Object production and is reused for a
// struct-shaped variant payload.
func (p *Parser) parseObject() (value.Node, error) {
	openTok, _, err := p.nextTok()
	if err != nil {
		return value.Node{}, err
	}
	leave, err := p.enterContainer(openTok)
	if err != nil {
		return value.Node{}, err
	}
	defer leave()
	var fields []value.Field
	closeRange, err := p.parseBracketed(token.RightBrace, "close brace", func() error {
		keyTok, ok, err := p.peekTok(0)
		if err != nil {
			return err
		}
		if !ok {
			return errEOF("expect a key name for object")
		}
		if keyTok.Token.Kind != token.Identifier {
			return errAt(keyTok.Range, "expect a key name for object")
		}
		p.nextTok()
		if err := p.consumeOptionalNewline(); err != nil {
			return err
		}
		if _, err := p.expectKind(token.Colon, "expect colon sign"); err != nil {
			return err
		}
		if err := p.consumeOptionalNewline(); err != nil {
			return err
		}
		v, err := p.parseNode()
		if err != nil {
			return err
		}
		fields = append(fields, value.Field{Key: keyTok.Token.Ident, Value: v})
		return nil
	})
	if err != nil {
		return value.Node{}, err
	}
	return value.Node{Kind: value.Object, ObjectItems: fields, Range: source.Join(openTok.Range, closeRange)}, nil
}

// parseTuple implements the (non-empty) Tuple production.
func (p *Parser) parseTuple() (value.Node, error) {
	openTok, _, err := p.nextTok()
	if err != nil {
		return value.Node{}, err
	}
	leave, err := p.enterContainer(openTok)
	if err != nil {
		return value.Node{}, err
	}
	defer leave()
	var items []value.Node
	closeRange, err := p.parseBracketed(token.RightParen, "close paren", func() error {
		n, err := p.parseNode()
		if err != nil {
			return err
		}
		items = append(items, n)
		return nil
	})
	if err != nil {
		return value.Node{}, err
	}
	if len(items) == 0 {
		return value.Node{}, errAt(openTok.Range, "tuple cannot be empty")
	}
	return value.Node{Kind: value.Tuple, TupleItems: items, Range: source.Join(openTok.Range, closeRange)}, nil
}

// parseListOrMap implements the ListOrMap production and its disambiguation
// rule (§4.4.1): after the first value, look ahead past an optional
// NewLine for a Colon. Its presence makes the whole container a Map (the
// first value becomes the first key); its absence makes it a List.
func (p *Parser) parseListOrMap() (value.Node, error) {
	openTok, _, err := p.nextTok()
	if err != nil {
		return value.Node{}, err
	}
	leave, err := p.enterContainer(openTok)
	if err != nil {
		return value.Node{}, err
	}
	defer leave()
	if err := p.consumeOptionalNewline(); err != nil {
		return value.Node{}, err
	}

	tok, ok, err := p.peekTok(0)
	if err != nil {
		return value.Node{}, err
	}
	if ok && tok.Token.Kind == token.RightBracket {
		p.nextTok()
		return value.Node{Kind: value.List, Range: source.Join(openTok.Range, tok.Range)}, nil
	}
	if !ok {
		return value.Node{}, errEOF("expect close bracket")
	}

	first, err := p.parseNode()
	if err != nil {
		return value.Node{}, err
	}

	isMap, err := p.lookaheadMapColon()
	if err != nil {
		return value.Node{}, err
	}

	if isMap {
		return p.finishMap(openTok.Range, first)
	}
	return p.finishList(openTok.Range, first)
}

// lookaheadMapColon implements the lookahead rule, peeking up to two
// tokens: a Colon either directly, or after a single NewLine (which is consumed along with the
// colon when found, since the newline was merely separating the value from
// its key-marker and is not itself significant once the Map form is
// chosen).
func (p *Parser) lookaheadMapColon() (bool, error) {
	tok, ok, err := p.peekTok(0)
	if err != nil {
		return false, err
	}
	if ok && tok.Token.Kind == token.NewLine {
		cn, ok2, err2 := p.peekTok(1)
		if err2 != nil {
			return false, err2
		}
		if ok2 && cn.Token.Kind == token.Colon {
			p.nextTok() // newline
			p.nextTok() // colon
			return true, nil
		}
		return false, nil
	}
	if ok && tok.Token.Kind == token.Colon {
		p.nextTok() // colon
		return true, nil
	}
	return false, nil
}

func (p *Parser) finishMap(openRange source.Range, firstKey value.Node) (value.Node, error) {
	if err := p.consumeOptionalNewline(); err != nil {
		return value.Node{}, err
	}
	firstValue, err := p.parseNode()
	if err != nil {
		return value.Node{}, err
	}
	pairs := []value.Pair{{Key: firstKey, Value: firstValue}}

	for {
		sep, ok, err := p.peekTok(0)
		if err != nil {
			return value.Node{}, err
		}
		if !ok || (sep.Token.Kind != token.Comma && sep.Token.Kind != token.NewLine) {
			break
		}
		p.nextTok()
		nxt, ok, err := p.peekTok(0)
		if err != nil {
			return value.Node{}, err
		}
		if ok && nxt.Token.Kind == token.RightBracket {
			break
		}
		if !ok {
			return value.Node{}, errEOF("expect close bracket")
		}
		k, err := p.parseNode()
		if err != nil {
			return value.Node{}, err
		}
		if err := p.consumeOptionalNewline(); err != nil {
			return value.Node{}, err
		}
		if _, err := p.expectKind(token.Colon, "expect colon sign"); err != nil {
			return value.Node{}, err
		}
		if err := p.consumeOptionalNewline(); err != nil {
			return value.Node{}, err
		}
		v, err := p.parseNode()
		if err != nil {
			return value.Node{}, err
		}
		pairs = append(pairs, value.Pair{Key: k, Value: v})
	}

	closeTok, err := p.expectKind(token.RightBracket, "expect close bracket")
	if err != nil {
		return value.Node{}, err
	}
	return value.Node{Kind: value.Map, MapPairs: pairs, Range: source.Join(openRange, closeTok.Range)}, nil
}

func (p *Parser) finishList(openRange source.Range, first value.Node) (value.Node, error) {
	items := []value.Node{first}
	for {
		sep, ok, err := p.peekTok(0)
		if err != nil {
			return value.Node{}, err
		}
		if !ok || (sep.Token.Kind != token.Comma && sep.Token.Kind != token.NewLine) {
			break
		}
		p.nextTok()
		nxt, ok, err := p.peekTok(0)
		if err != nil {
			return value.Node{}, err
		}
		if ok && nxt.Token.Kind == token.RightBracket {
			break
		}
		if !ok {
			return value.Node{}, errEOF("expect close bracket")
		}
		n, err := p.parseNode()
		if err != nil {
			return value.Node{}, err
		}
		items = append(items, n)
	}
	closeTok, err := p.expectKind(token.RightBracket, "expect close bracket")
	if err != nil {
		return value.Node{}, err
	}
	return value.Node{Kind: value.List, ListItems: items, Range: source.Join(openRange, closeTok.Range)}, nil
}

// parseVariant implements the Variant production; variantTok is the
// already-consumed Variant token.
func (p *Parser) parseVariant(variantTok token.WithRange) (value.Node, error) {
	typeName := variantTok.Token.VariantType
	member := variantTok.Token.VariantMember

	next, ok, err := p.peekTok(0)
	if err != nil {
		return value.Node{}, err
	}

	if ok && next.Token.Kind == token.LeftParen {
		openTok, _, err := p.nextTok()
		if err != nil {
			return value.Node{}, err
		}
		leave, err := p.enterContainer(openTok)
		if err != nil {
			return value.Node{}, err
		}
		defer leave()
		var items []value.Node
		closeRange, err := p.parseBracketed(token.RightParen, "close paren", func() error {
			n, err := p.parseNode()
			if err != nil {
				return err
			}
			items = append(items, n)
			return nil
		})
		if err != nil {
			return value.Node{}, err
		}
		if len(items) == 0 {
			return value.Node{}, errAt(openTok.Range, "value of tuple-style variant cannot be empty")
		}
		payload := value.NewVariantTuplePayload(items)
		return value.Node{
			Kind: value.Variant, VariantType: typeName, VariantMember: member,
			VariantPayload: payload, Range: source.Join(variantTok.Range, closeRange),
		}, nil
	}

	if ok && next.Token.Kind == token.LeftBrace {
		obj, err := p.parseObject()
		if err != nil {
			return value.Node{}, err
		}
		payload := value.VariantPayload{Form: value.VariantObject, Object: obj.ObjectItems}
		return value.Node{
			Kind: value.Variant, VariantType: typeName, VariantMember: member,
			VariantPayload: payload, Range: source.Join(variantTok.Range, obj.Range),
		}, nil
	}

	return value.Node{
		Kind: value.Variant, VariantType: typeName, VariantMember: member,
		VariantPayload: value.VariantPayload{Form: value.VariantNone}, Range: variantTok.Range,
	}, nil
}
