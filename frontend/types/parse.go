package types

import (
	"fmt"
	"github.com/cottand/narrow/frontend/checkerr"
	"unicode"
)

// Parse reads canonical type text:
//
//	Union ::= Atom ('|' Atom)*
//	Atom  ::= keyword | Identifier ('<' Union (',' Union)? '>')?
//
// where keyword is one of mixed, null, true, false, bool, int, float, string,
// array, object and numeric. Identifiers may contain letters, digits, '_' and '\'.
//
// Unparseable text fails with a checkerr.NewMalformedType.
func Parse(text string) (Union, error) {
	p := &typeParser{text: []rune(text), src: text}
	u, err := p.union()
	if err != nil {
		return Union{}, err
	}
	p.skipSpace()
	if !p.done() {
		return Union{}, p.fail(fmt.Sprintf("unexpected '%c'", p.peek()))
	}
	return u, nil
}

// MustParse is Parse for text known to be well-formed; it panics otherwise
func MustParse(text string) Union {
	u, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}

type typeParser struct {
	src  string
	text []rune
	pos  int
}

func (p *typeParser) done() bool { return p.pos >= len(p.text) }

func (p *typeParser) peek() rune {
	if p.done() {
		return 0
	}
	return p.text[p.pos]
}

func (p *typeParser) skipSpace() {
	for !p.done() && unicode.IsSpace(p.text[p.pos]) {
		p.pos++
	}
}

func (p *typeParser) accept(r rune) bool {
	p.skipSpace()
	if p.peek() == r && !p.done() {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) fail(reason string) error {
	return checkerr.New(checkerr.NewMalformedType{
		Text:   p.src,
		Offset: p.pos,
		Reason: reason,
	})
}

func (p *typeParser) union() (Union, error) {
	var atomics []Atomic
	for {
		a, err := p.atom()
		if err != nil {
			return Union{}, err
		}
		atomics = append(atomics, a)
		if !p.accept('|') {
			break
		}
	}
	return NewUnion(atomics...), nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '\\' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *typeParser) ident() (string, error) {
	p.skipSpace()
	start := p.pos
	for !p.done() && isIdentRune(p.text[p.pos]) {
		p.pos++
	}
	if start == p.pos {
		if p.done() {
			return "", p.fail("expected a type, found end of input")
		}
		return "", p.fail(fmt.Sprintf("expected a type, found '%c'", p.peek()))
	}
	if unicode.IsDigit(p.text[start]) {
		p.pos = start
		return "", p.fail("type names cannot start with a digit")
	}
	return string(p.text[start:p.pos]), nil
}

func (p *typeParser) atom() (Atomic, error) {
	start := p.pos
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if !p.accept('<') {
		return AtomicFromName(name), nil
	}

	var params []Union
	for {
		param, err := p.union()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.accept(',') {
			break
		}
	}
	if !p.accept('>') {
		return nil, p.fail("expected '>' to close type parameters")
	}
	if len(params) > 2 {
		p.pos = start
		return nil, p.fail(fmt.Sprintf("'%s' takes at most 2 type parameters, found %d", name, len(params)))
	}

	switch {
	case name == "array" && len(params) == 1:
		return ArrayLike{Value: params[0]}, nil
	case name == "array":
		return ArrayLike{Key: &params[0], Value: params[1]}, nil
	case IsKeyword(name):
		p.pos = start
		return nil, p.fail(fmt.Sprintf("'%s' does not take type parameters", name))
	default:
		return NamedClass{ClassName: name, Params: params}, nil
	}
}
