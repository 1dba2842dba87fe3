package schemafile

import (
	"fmt"
	"strings"
)

// typeExpr is a parsed type expression before name resolution:
// "map<string, list<test.Item>>" has name "map" and two arguments.
type typeExpr struct {
	name string
	args []*typeExpr
}

// String formats the expression in canonical spelling.
func (e *typeExpr) String() string {
	if len(e.args) == 0 {
		return e.name
	}
	parts := make([]string, len(e.args))
	for i, a := range e.args {
		parts[i] = a.String()
	}
	return e.name + "<" + strings.Join(parts, ", ") + ">"
}

// arity of the generic collection names.
var collectionArity = map[string]int{
	"list": 1,
	"set":  1,
	"map":  2,
}

// parseTypeExpr parses a type expression.
func parseTypeExpr(s string) (*typeExpr, error) {
	p := &exprParser{src: s}
	e, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: type %q at offset %d: %s", ErrSyntax, p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) parse() (*typeExpr, error) {
	p.skipSpace()
	name := p.ident()
	if name == "" {
		if p.pos == len(p.src) {
			return nil, p.errorf("missing type name")
		}
		return nil, p.errorf("unexpected %q", p.src[p.pos:p.pos+1])
	}
	e := &typeExpr{name: name}

	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '<' {
		p.pos++
		for {
			arg, err := p.parse()
			if err != nil {
				return nil, err
			}
			e.args = append(e.args, arg)
			p.skipSpace()
			if p.pos == len(p.src) {
				return nil, p.errorf("missing '>'")
			}
			c := p.src[p.pos]
			p.pos++
			if c == '>' {
				break
			}
			if c != ',' {
				return nil, p.errorf("unexpected %q", string(c))
			}
		}
	}

	want, generic := collectionArity[name]
	switch {
	case generic && len(e.args) != want:
		return nil, p.errorf("%s takes %d type argument(s), got %d", name, want, len(e.args))
	case !generic && len(e.args) > 0:
		return nil, p.errorf("%s does not take type arguments", name)
	}
	return e, nil
}

// ident scans a dotted identifier such as "test.module.Item". A dot is
// consumed only when another segment follows it.
func (p *exprParser) ident() string {
	start := p.pos
	for {
		if p.pos >= len(p.src) || !isIdentStart(p.src[p.pos]) {
			break
		}
		for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
			p.pos++
		}
		if p.pos+1 < len(p.src) && p.src[p.pos] == '.' && isIdentStart(p.src[p.pos+1]) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}
