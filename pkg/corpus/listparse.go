package corpus

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedList is returned when an ingredient field is not a list of strings
	ErrMalformedList = errors.New("malformed ingredient list")
	// ErrEmptyIngredients is returned for a list with no ingredients
	ErrEmptyIngredients = errors.New("empty ingredient list")
)

// ParseIngredientList decodes a list literal such as "['egg', \"milk\"]" into
// its string items. Only a flat list of quoted strings is accepted.
func ParseIngredientList(s string) ([]string, error) {
	p := listParser{src: strings.TrimSpace(s)}
	items, err := p.parse()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedList, "%s at offset %d", err.Error(), p.pos)
	}
	return items, nil
}

type listParser struct {
	src string
	pos int
}

type parseError string

func (e parseError) Error() string { return string(e) }

func (p *listParser) parse() ([]string, error) {
	if !p.consume('[') {
		return nil, parseError("expected '['")
	}

	items := []string{}
	for {
		p.skipSpace()
		if p.consume(']') {
			break
		}
		item, err := p.quoted()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		p.skipSpace()
		if p.consume(',') {
			continue
		}
		if p.consume(']') {
			break
		}
		return nil, parseError("expected ',' or ']'")
	}

	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, parseError("trailing characters")
	}
	return items, nil
}

func (p *listParser) quoted() (string, error) {
	if p.pos >= len(p.src) {
		return "", parseError("unexpected end of input")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", parseError("expected quoted string")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			p.pos++
			b.WriteByte(unescape(p.src[p.pos]))
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", parseError("unterminated string")
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

func (p *listParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *listParser) consume(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}
