package css

import (
	"strconv"
	"strings"

	"github.com/MeKo-Christian/htmlkit/errors"
)

// nthPseudos lists pseudo-classes whose argument is an An+B expression
// rather than a selector list (§4.4.1).
var nthPseudos = map[string]bool{
	"nth-child": true, "nth-last-child": true,
	"nth-of-type": true, "nth-last-of-type": true,
}

// selectorListPseudos lists pseudo-classes whose argument is itself a
// selector list, compiled recursively (§4.4).
var selectorListPseudos = map[string]bool{
	"not": true, "is": true, "where": true, "has": true,
}

var noArgPseudos = map[string]bool{
	"first-child": true, "last-child": true, "only-child": true, "empty": true,
	"root": true, "first-of-type": true, "last-of-type": true, "only-of-type": true,
	"disabled": true, "enabled": true, "checked": true, "link": true,
	"hover": true, "active": true, "focus": true, "visited": true,
}

var pseudoElements = map[string]bool{
	"before": true, "after": true, "first-line": true, "first-letter": true,
}

// parser compiles a selector string into a SelectorList.
type parser struct {
	toks     []token
	pos      int
	raw      string
	policy   *errors.Policy
	errCount int
}

// Compile parses and compiles selector text into a SelectorList, recording
// errors through policy. In Strict mode the first error returned from
// policy.Record aborts compilation and Compile returns that error.
func Compile(selector string, policy *errors.Policy) (*SelectorList, error) {
	normalized := normalizeSelector(selector)
	l := newLexer(normalized)
	var toks []token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.kind == tEOF {
			break
		}
	}
	p := &parser{toks: toks, raw: selector, policy: policy}
	list, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	if p.errCount > 0 && policy.Mode() == errors.Strict {
		return nil, p.fail(errors.InvalidSelector, "selector contains errors")
	}
	return list, nil
}

// normalizeSelector lowercases outside of string literals and collapses
// whitespace runs to a single space (§4.3 caching/normalization pass).
func normalizeSelector(s string) string {
	var sb strings.Builder
	inString := false
	var quote rune
	lastWasSpace := false
	for _, r := range s {
		if inString {
			sb.WriteRune(r)
			if r == quote {
				inString = false
			}
			continue
		}
		if r == '"' || r == '\'' {
			inString = true
			quote = r
			sb.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if isSpace(r) {
			if !lastWasSpace {
				sb.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		if r >= 'A' && r <= 'Z' {
			r = r - 'A' + 'a'
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func (p *parser) cur() token {
	if p.pos >= len(p.toks) {
		return token{kind: tEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) at(k tokKind) bool { return p.cur().kind == k }

func (p *parser) advance() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) skipWhitespace() bool {
	saw := false
	for p.at(tWhitespace) {
		p.advance()
		saw = true
	}
	return saw
}

func (p *parser) fail(code errors.Code, msg string) error {
	p.errCount++
	loc := errors.Location{ByteOffset: p.cur().pos}
	pe := errors.ParseError{Code: code, Message: msg, Location: loc}
	se := &errors.SelectorError{ParseError: pe, Selector: p.raw}
	if err := p.policy.Record(&pe); err != nil {
		return se
	}
	return nil
}

func (p *parser) parseSelectorList() (*SelectorList, error) {
	list := &SelectorList{}
	for {
		p.skipWhitespace()
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		list.Selectors = append(list.Selectors, sel)
		p.skipWhitespace()
		if p.at(tComma) {
			p.advance()
			p.skipWhitespace()
			if p.at(tEOF) {
				if err := p.fail(errors.InvalidSelector, "trailing comma in selector list"); err != nil {
					return nil, err
				}
				break
			}
			continue
		}
		break
	}
	return list, nil
}

func (p *parser) parseSelector() (Selector, error) {
	var sel Selector

	// A selector may open with an explicit combinator only inside a
	// relative-selector argument (:has(> p), :has(+ p), :has(~ p)); the
	// combinator then describes the anchor's relationship to the first
	// compound instead of joining two compounds (§4.4.2).
	var leading Combinator
	switch {
	case p.at(tGT):
		p.advance()
		leading = Child
	case p.at(tPlus):
		p.advance()
		leading = Adjacent
	case p.at(tTilde):
		p.advance()
		leading = General
	default:
		leading = Descendant
	}
	if leading != Descendant {
		p.skipWhitespace()
	}

	compound, err := p.parseCompound()
	if err != nil {
		return sel, err
	}
	sel.Parts = append(sel.Parts, SelectorPart{Combinator: leading, Compound: compound})

	for {
		sawSpace := p.skipWhitespace()
		var comb Combinator
		haveComb := false
		switch {
		case p.at(tGT):
			p.advance()
			comb, haveComb = Child, true
		case p.at(tPlus):
			p.advance()
			comb, haveComb = Adjacent, true
		case p.at(tTilde):
			p.advance()
			comb, haveComb = General, true
		}
		if haveComb {
			p.skipWhitespace()
		} else if sawSpace {
			comb, haveComb = Descendant, true
		}
		if !haveComb {
			break
		}
		if p.at(tEOF) || p.at(tComma) || p.at(tRParen) {
			if err := p.fail(errors.InvalidSelector, "combinator with no following compound"); err != nil {
				return sel, err
			}
			break
		}
		next, err := p.parseCompound()
		if err != nil {
			return sel, err
		}
		sel.Parts = append(sel.Parts, SelectorPart{Combinator: comb, Compound: next})
	}

	var total Specificity
	for _, part := range sel.Parts {
		total = total.add(part.Compound.specificity())
	}
	sel.Specificity = total
	return sel, nil
}

func (p *parser) parseCompound() (CompoundSelector, error) {
	var c CompoundSelector
	for {
		switch {
		case p.at(tStar):
			p.advance()
			c.Simples = append(c.Simples, SimpleSelector{Kind: Universal})
		case p.at(tIdent):
			name := p.advance().text
			c.Simples = append(c.Simples, SimpleSelector{Kind: Type, Name: name})
		case p.at(tDot):
			p.advance()
			if !p.at(tIdent) {
				if err := p.fail(errors.InvalidSelector, "expected class name after '.'"); err != nil {
					return c, err
				}
				return c, nil
			}
			c.Simples = append(c.Simples, SimpleSelector{Kind: Class, Name: p.advance().text})
		case p.at(tHash):
			c.Simples = append(c.Simples, SimpleSelector{Kind: ID, Name: p.advance().text})
		case p.at(tLBracket):
			simple, err := p.parseAttribute()
			if err != nil {
				return c, err
			}
			c.Simples = append(c.Simples, simple)
		case p.at(tColon) || p.at(tDoubleColon):
			simple, err := p.parsePseudo()
			if err != nil {
				return c, err
			}
			c.Simples = append(c.Simples, simple)
		default:
			if len(c.Simples) == 0 {
				if err := p.fail(errors.InvalidSelector, "empty compound selector"); err != nil {
					return c, err
				}
			}
			return c, nil
		}
	}
}

func (p *parser) parseAttribute() (SimpleSelector, error) {
	p.advance() // '['
	if !p.at(tIdent) {
		if err := p.fail(errors.InvalidSelector, "expected attribute name"); err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: Attribute}, nil
	}
	name := p.advance().text
	sel := SimpleSelector{Kind: Attribute, Name: name, Op: AttrExists}

	var op AttrOp
	haveOp := true
	switch {
	case p.at(tEquals):
		op = AttrEquals
	case p.at(tContains):
		op = AttrContains
	case p.at(tPrefix):
		op = AttrStartsWith
	case p.at(tSuffix):
		op = AttrEndsWith
	case p.at(tIncludes):
		op = AttrWordMatch
	case p.at(tDashMatch):
		op = AttrLangMatch
	default:
		haveOp = false
	}
	if haveOp {
		p.advance()
		sel.Op = op
		switch {
		case p.at(tString):
			sel.Val = p.advance().text
		case p.at(tIdent), p.at(tNumber):
			sel.Val = p.advance().text
		default:
			if err := p.fail(errors.InvalidSelector, "expected attribute value"); err != nil {
				return sel, err
			}
		}
	}
	if !p.at(tRBracket) {
		if err := p.fail(errors.InvalidSelector, "unterminated attribute selector"); err != nil {
			return sel, err
		}
		return sel, nil
	}
	p.advance()
	return sel, nil
}

func (p *parser) parsePseudo() (SimpleSelector, error) {
	isElement := p.at(tDoubleColon)
	p.advance()
	if !p.at(tIdent) {
		if err := p.fail(errors.InvalidSelector, "expected pseudo-class name"); err != nil {
			return SimpleSelector{}, err
		}
		return SimpleSelector{Kind: PseudoClass}, nil
	}
	name := p.advance().text

	if isElement || pseudoElements[name] {
		return SimpleSelector{Kind: PseudoElement, Name: name}, nil
	}

	sel := SimpleSelector{Kind: PseudoClass, Name: name}

	if !p.at(tLParen) {
		if noArgPseudos[name] || !nthPseudos[name] && !selectorListPseudos[name] {
			return sel, nil
		}
		if err := p.fail(errors.InvalidSelector, "pseudo-class "+name+"() requires an argument"); err != nil {
			return sel, err
		}
		return sel, nil
	}
	p.advance() // '('
	p.skipWhitespace()

	switch {
	case nthPseudos[name]:
		arg := p.collectUntilCloseParen()
		a, b, ok := parseNth(arg)
		if !ok {
			if err := p.fail(errors.InvalidSelector, "malformed nth expression: "+arg); err != nil {
				return sel, err
			}
		}
		sel.NthA, sel.NthB, sel.HasNth = a, b, true
		sel.Val = arg
	case selectorListPseudos[name]:
		nested, err := p.parseSelectorList()
		if err != nil {
			return sel, err
		}
		sel.Nested = nested
	default:
		sel.Val = p.collectUntilCloseParen()
	}

	p.skipWhitespace()
	if !p.at(tRParen) {
		if err := p.fail(errors.InvalidSelector, "unterminated pseudo-class argument"); err != nil {
			return sel, err
		}
		return sel, nil
	}
	p.advance()
	return sel, nil
}

// collectUntilCloseParen renders remaining tokens up to (not including) the
// matching ')' back to text, for pseudo arguments the parser does not
// itself structure (nth expressions).
func (p *parser) collectUntilCloseParen() string {
	var sb strings.Builder
	for !p.at(tRParen) && !p.at(tEOF) {
		t := p.advance()
		switch t.kind {
		case tWhitespace:
			continue
		case tIdent, tNumber, tString:
			sb.WriteString(t.text)
		case tPlus:
			sb.WriteByte('+')
		default:
		}
	}
	return sb.String()
}

// parseNth parses the An+B grammar of §4.4.1.
func parseNth(expr string) (int, int, bool) {
	expr = strings.TrimSpace(strings.ToLower(expr))
	switch expr {
	case "odd":
		return 2, 1, true
	case "even":
		return 2, 0, true
	}
	if n, err := strconv.Atoi(expr); err == nil {
		return 0, n, true
	}
	nIdx := strings.Index(expr, "n")
	if nIdx == -1 {
		return 0, 0, false
	}
	aStr := expr[:nIdx]
	var a int
	switch aStr {
	case "", "+":
		a = 1
	case "-":
		a = -1
	default:
		v, err := strconv.Atoi(aStr)
		if err != nil {
			return 0, 0, false
		}
		a = v
	}
	bStr := strings.TrimSpace(expr[nIdx+1:])
	b := 0
	if bStr != "" {
		bStr = strings.TrimPrefix(bStr, "+")
		v, err := strconv.Atoi(bStr)
		if err != nil {
			return 0, 0, false
		}
		b = v
	}
	return a, b, true
}
