package pbxparser

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	HeadCommentKey = "headComment"
	ProjectKey     = "project"
	ObjectsKey     = "objects"
)

// SyntaxError reports where the input stopped looking like a project file.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("pbxparser: %d:%d: %s", e.Line, e.Column, e.Msg)
}

// ParseReader reads a whole project file and parses it. The result holds the
// head comment under "headComment" and the root dictionary under "project".
func ParseReader(r io.Reader) (Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Object{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Object, error) {
	p := &parser{data: data, line: 1, col: 1}
	contents := NewObject()

	p.skipSpace()
	if p.hasPrefix("//") {
		p.advance(2)
		start := p.pos
		for !p.eof() && p.peek() != '\n' {
			p.advance(1)
		}
		contents.Set(HeadCommentKey, strings.TrimSpace(string(p.data[start:p.pos])))
	}

	if err := p.skipSpaceAndComments(); err != nil {
		return Object{}, err
	}
	if p.eof() || p.peek() != '{' {
		return Object{}, p.errorf("expected root dictionary")
	}
	root, err := p.parseDict(0)
	if err != nil {
		return Object{}, err
	}
	if err := p.skipSpaceAndComments(); err != nil {
		return Object{}, err
	}
	if !p.eof() {
		return Object{}, p.errorf("unexpected %q after root dictionary", p.peek())
	}

	if objects := root.GetObject(ObjectsKey); !objects.IsNil() {
		root.Set(ObjectsKey, groupByIsa(objects))
	}
	contents.Set(ProjectKey, root)
	return contents, nil
}

// groupByIsa turns the flat id → object table into isa → (id → object)
// sections, which is how the rest of the program addresses it.
func groupByIsa(objects Object) Object {
	sections := NewObject()
	objects.ForeachWithFilter(func(key string, val interface{}) IterateActionType {
		obj, ok := val.(Object)
		if !ok {
			return IterateActionContinue
		}
		isa := obj.GetString("isa")
		section := sections.GetObject(isa)
		if section.IsNil() {
			section = NewObject()
			sections.Set(isa, section)
		}
		section.Set(key, obj)
		if comment, ok := objects.Get(ToCommentKey(key)); ok {
			section.Set(ToCommentKey(key), comment)
		}
		return IterateActionContinue
	}, NonCommentsFilter)
	return sections
}

var commentEnd = []byte("*/")

type parser struct {
	data []byte
	pos  int
	line int
	col  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.data)
}

func (p *parser) peek() byte {
	return p.data[p.pos]
}

func (p *parser) hasPrefix(s string) bool {
	return bytes.HasPrefix(p.data[p.pos:], []byte(s))
}

func (p *parser) advance(n int) {
	for i := 0; i < n && !p.eof(); i++ {
		if p.data[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Column: p.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.advance(1)
		default:
			return
		}
	}
}

// skipSpaceAndComments drops whitespace, line comments and block comments.
// Section markers such as "/* Begin PBXBuildFile section */" go through here.
func (p *parser) skipSpaceAndComments() error {
	for {
		p.skipSpace()
		switch {
		case p.hasPrefix("/*"):
			if _, err := p.blockComment(); err != nil {
				return err
			}
		case p.hasPrefix("//"):
			for !p.eof() && p.peek() != '\n' {
				p.advance(1)
			}
		default:
			return nil
		}
	}
}

func (p *parser) blockComment() (string, error) {
	p.advance(2)
	start := p.pos
	end := bytes.Index(p.data[p.pos:], commentEnd)
	if end < 0 {
		return "", p.errorf("unterminated comment")
	}
	text := string(p.data[start : start+end])
	p.advance(end + 2)
	return strings.TrimSpace(text), nil
}

// trailingComment consumes one inline comment following a token, if any.
func (p *parser) trailingComment() (string, error) {
	p.skipSpace()
	if !p.hasPrefix("/*") {
		return "", nil
	}
	return p.blockComment()
}

func (p *parser) expect(c byte) error {
	if err := p.skipSpaceAndComments(); err != nil {
		return err
	}
	if p.eof() {
		return p.errorf("expected %q, found end of input", c)
	}
	if p.peek() != c {
		return p.errorf("expected %q, found %q", c, p.peek())
	}
	p.advance(1)
	return nil
}

func (p *parser) parseValue(depth int) (interface{}, error) {
	if err := p.skipSpaceAndComments(); err != nil {
		return nil, err
	}
	if p.eof() {
		return nil, p.errorf("expected value, found end of input")
	}
	switch p.peek() {
	case '{':
		return p.parseDict(depth + 1)
	case '(':
		return p.parseArray(depth + 1)
	default:
		return p.parseScalar()
	}
}

func (p *parser) parseDict(depth int) (Object, error) {
	obj := NewObject()
	p.advance(1) // {
	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return Object{}, err
		}
		if p.eof() {
			return Object{}, p.errorf("unterminated dictionary")
		}
		if p.peek() == '}' {
			p.advance(1)
			return obj, nil
		}

		key, err := p.parseScalar()
		if err != nil {
			return Object{}, err
		}
		keyComment, err := p.trailingComment()
		if err != nil {
			return Object{}, err
		}
		if err := p.expect('='); err != nil {
			return Object{}, err
		}
		value, err := p.parseValue(depth)
		if err != nil {
			return Object{}, err
		}
		valueComment, err := p.trailingComment()
		if err != nil {
			return Object{}, err
		}
		if err := p.expect(';'); err != nil {
			return Object{}, err
		}

		obj.Set(key, value)
		if keyComment != "" {
			obj.Set(ToCommentKey(key), keyComment)
		} else if valueComment != "" {
			obj.Set(ToCommentKey(key), valueComment)
		}
	}
}

func (p *parser) parseArray(depth int) ([]interface{}, error) {
	arr := []interface{}{}
	p.advance(1) // (
	for {
		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if p.eof() {
			return nil, p.errorf("unterminated array")
		}
		if p.peek() == ')' {
			p.advance(1)
			return arr, nil
		}

		value, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		comment, err := p.trailingComment()
		if err != nil {
			return nil, err
		}
		if str, ok := value.(string); ok && comment != "" {
			value = CommentValueObject(str, comment)
		}
		arr = append(arr, value)

		if err := p.skipSpaceAndComments(); err != nil {
			return nil, err
		}
		if !p.eof() && p.peek() == ',' {
			p.advance(1)
		}
	}
}

// parseScalar returns quoted strings with their quotes and escapes intact so
// that writing the project back reproduces the original bytes.
func (p *parser) parseScalar() (string, error) {
	if p.peek() == '"' {
		start := p.pos
		p.advance(1)
		for {
			if p.eof() {
				return "", p.errorf("unterminated string")
			}
			c := p.peek()
			if c == '\\' {
				p.advance(2)
				continue
			}
			p.advance(1)
			if c == '"' {
				return string(p.data[start:p.pos]), nil
			}
		}
	}

	start := p.pos
	for !p.eof() && isLiteralByte(p.peek()) {
		if p.peek() == '/' && (p.hasPrefix("/*") || p.hasPrefix("//")) {
			break
		}
		p.advance(1)
	}
	if p.pos == start {
		return "", p.errorf("unexpected %q", p.peek())
	}
	return string(p.data[start:p.pos]), nil
}

func isLiteralByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '{', '}', '(', ')', ';', ',', '=', '"':
		return false
	}
	return true
}

// CommentValueObject is the array item shape for "value /* comment */".
func CommentValueObject(value, comment string) Object {
	return NewObjectWithData([]ObjectItem{
		NewObjectItem("value", value),
		NewObjectItem("comment", comment),
	})
}
