package dsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vegasq/parframe/schema"
	"github.com/vegasq/parframe/selector"
)

// maxDepth bounds the nesting of parentheses and argument lists.
const maxDepth = 64

// SyntaxError reports malformed input with the byte offset it was found at.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

// Parser parses selector expressions into selector.Columns
type Parser struct {
	tokens []Token
	pos    int
	depth  int
}

// NewParser creates a new parser
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses a selector expression such as
//
//	col("id") and address.colsAtAnyDepth().except(path("address", "zip"))
func Parse(input string) (selector.Columns, error) {
	if strings.TrimSpace(input) == "" {
		return selector.Columns{}, &SyntaxError{Pos: 0, Msg: "empty selector"}
	}
	p := NewParser(Tokenize(input))
	cols, err := p.parseExpr()
	if err != nil {
		return selector.Columns{}, err
	}
	if tok := p.current(); tok.Type != TokenEOF {
		return selector.Columns{}, p.unexpected(tok, "end of input")
	}
	return cols, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) selector.Columns {
	cols, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return cols
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) expect(t TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != t {
		return tok, p.unexpected(tok, t.String())
	}
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected(tok Token, want string) error {
	got := tok.Type.String()
	if tok.Type == TokenIllegal || tok.Type == TokenIdent || tok.Type == TokenNumber {
		got += " " + strconv.Quote(tok.Value)
	}
	return &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("expected %s, got %s", want, got)}
}

// parseExpr parses operands joined with "and".
func (p *Parser) parseExpr() (selector.Columns, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return selector.Columns{}, &SyntaxError{Pos: p.current().Pos, Msg: "expression nested too deeply"}
	}

	first, err := p.parsePostfix()
	if err != nil {
		return selector.Columns{}, err
	}
	operands := []selector.Columns{first}
	for p.current().Type == TokenAnd {
		p.advance()
		next, err := p.parsePostfix()
		if err != nil {
			return selector.Columns{}, err
		}
		operands = append(operands, next)
	}
	return selector.And(operands...), nil
}

// parsePostfix parses a primary followed by method calls.
func (p *Parser) parsePostfix() (selector.Columns, error) {
	cols, err := p.parsePrimary()
	if err != nil {
		return selector.Columns{}, err
	}
	for p.current().Type == TokenDot {
		p.advance()
		if p.current().Type == TokenAnd {
			// .and(...) is a method, not the operator.
			p.tokens[p.pos].Type = TokenIdent
		}
		name, err := p.expect(TokenIdent)
		if err != nil {
			return selector.Columns{}, err
		}
		if p.current().Type != TokenLParen {
			// address.city.zip style paths only appear before any call.
			return selector.Columns{}, p.unexpected(p.current(), "'(' after method name "+strconv.Quote(name.Value))
		}
		args, err := p.parseArgs()
		if err != nil {
			return selector.Columns{}, err
		}
		if cols, err = applyMethod(cols, name, args); err != nil {
			return selector.Columns{}, err
		}
	}
	return cols, nil
}

func (p *Parser) parsePrimary() (selector.Columns, error) {
	tok := p.current()
	switch tok.Type {
	case TokenLParen:
		p.advance()
		cols, err := p.parseExpr()
		if err != nil {
			return selector.Columns{}, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return selector.Columns{}, err
		}
		return cols, nil

	case TokenString:
		p.advance()
		return selector.Col(tok.Value), nil

	case TokenIdent:
		if p.peek().Type == TokenLParen {
			p.advance()
			args, err := p.parseArgs()
			if err != nil {
				return selector.Columns{}, err
			}
			return applyFunction(tok, args)
		}
		return p.parseBarePath()

	default:
		return selector.Columns{}, p.unexpected(tok, "a column selector")
	}
}

// parseBarePath reads name or name.name... as a column path. A segment that
// is followed by '(' is left for parsePostfix as a method call.
func (p *Parser) parseBarePath() (selector.Columns, error) {
	first, _ := p.expect(TokenIdent)
	path := schema.Path{first.Value}
	for p.current().Type == TokenDot && p.peek().Type == TokenIdent {
		if p.pos+2 < len(p.tokens) && p.tokens[p.pos+2].Type == TokenLParen {
			break
		}
		p.advance()
		seg, _ := p.expect(TokenIdent)
		path = append(path, seg.Value)
	}
	if len(path) == 1 {
		return selector.Col(path[0]), nil
	}
	return selector.At(path), nil
}

// arg is one call argument: a selector, a string or a number. Strings and
// bare identifiers are also valid selectors.
type arg struct {
	tok  Token
	cols selector.Columns
	str  string
	num  int
	kind argKind
}

type argKind int

const (
	argColumns argKind = iota
	argString
	argNumber
	argIdent
)

func (p *Parser) parseArgs() ([]arg, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	var args []arg
	if p.current().Type == TokenRParen {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.current().Type == TokenComma {
			p.advance()
			continue
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *Parser) parseArg() (arg, error) {
	tok := p.current()
	next := p.peek().Type
	atEnd := next == TokenComma || next == TokenRParen

	switch {
	case tok.Type == TokenNumber:
		p.advance()
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return arg{}, &SyntaxError{Pos: tok.Pos, Msg: fmt.Sprintf("invalid number %q", tok.Value)}
		}
		return arg{tok: tok, num: n, kind: argNumber}, nil
	case tok.Type == TokenString && atEnd:
		p.advance()
		return arg{tok: tok, str: tok.Value, cols: selector.Col(tok.Value), kind: argString}, nil
	case tok.Type == TokenIdent && atEnd:
		p.advance()
		return arg{tok: tok, str: tok.Value, cols: selector.Col(tok.Value), kind: argIdent}, nil
	}

	cols, err := p.parseExpr()
	if err != nil {
		return arg{}, err
	}
	return arg{tok: tok, cols: cols, kind: argColumns}, nil
}

func argError(name Token, msg string) error {
	return &SyntaxError{Pos: name.Pos, Msg: name.Value + ": " + msg}
}

func wantCount(name Token, args []arg, n int) error {
	if len(args) != n {
		return argError(name, fmt.Sprintf("expected %d argument(s), got %d", n, len(args)))
	}
	return nil
}

func stringArg(name Token, args []arg) (string, error) {
	if err := wantCount(name, args, 1); err != nil {
		return "", err
	}
	if args[0].kind != argString && args[0].kind != argIdent {
		return "", argError(name, "expected a string argument")
	}
	return args[0].str, nil
}

func numberArg(name Token, args []arg) (int, error) {
	if err := wantCount(name, args, 1); err != nil {
		return 0, err
	}
	if args[0].kind != argNumber {
		return 0, argError(name, "expected a number argument")
	}
	return args[0].num, nil
}

func columnArgs(name Token, args []arg, least int) ([]selector.Columns, error) {
	if len(args) < least {
		return nil, argError(name, fmt.Sprintf("expected at least %d argument(s), got %d", least, len(args)))
	}
	cols := make([]selector.Columns, len(args))
	for i, a := range args {
		if a.kind == argNumber {
			cols[i] = selector.ColIndex(a.num)
			continue
		}
		cols[i] = a.cols
	}
	return cols, nil
}

func depthOptions(name Token, args []arg) ([]selector.DepthOption, error) {
	switch {
	case len(args) == 0:
		return nil, nil
	case len(args) == 1 && args[0].kind == argIdent && args[0].str == "groups":
		return []selector.DepthOption{selector.IncludeGroups()}, nil
	default:
		return nil, argError(name, "the only option is groups")
	}
}

// applyFunction builds the selection for a call at the start of an operand.
func applyFunction(name Token, args []arg) (selector.Columns, error) {
	switch name.Value {
	case "col":
		if err := wantCount(name, args, 1); err != nil {
			return selector.Columns{}, err
		}
		if args[0].kind == argNumber {
			return selector.ColIndex(args[0].num), nil
		}
		return args[0].cols, nil
	case "cols":
		cols, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return selector.And(cols...), nil
	case "path":
		if len(args) == 0 {
			return selector.Columns{}, argError(name, "expected at least 1 argument")
		}
		path := make(schema.Path, len(args))
		for i, a := range args {
			if a.kind != argString && a.kind != argIdent {
				return selector.Columns{}, argError(name, "path segments must be strings")
			}
			path[i] = a.str
		}
		return selector.At(path), nil
	case "valueCol", "colGroup", "frameCol":
		s, err := stringArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		switch name.Value {
		case "valueCol":
			return selector.ValueCol(s), nil
		case "colGroup":
			return selector.ColGroup(s), nil
		default:
			return selector.FrameCol(s), nil
		}
	case "all":
		return selector.All(), wantCount(name, args, 0)
	case "none":
		return selector.None(), wantCount(name, args, 0)
	case "allExcept":
		cols, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return selector.AllExcept(cols...), nil
	case "match":
		if err := wantCount(name, args, 2); err != nil {
			return selector.Columns{}, err
		}
		cols, err := columnArgs(name, args, 2)
		if err != nil {
			return selector.Columns{}, err
		}
		return selector.Match(cols[0], cols[1]), nil
	}
	// Every other call is a method applied to all().
	return applyMethod(selector.All(), name, args)
}

// applyMethod builds the selection for cols.name(args...).
func applyMethod(cols selector.Columns, name Token, args []arg) (selector.Columns, error) {
	switch name.Value {
	case "and":
		others, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.And(others...), nil
	case "except":
		removed, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.Except(removed...), nil
	case "allColsExcept":
		removed, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.AllColsExcept(removed...), nil
	case "match":
		right, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		if len(right) != 1 {
			return selector.Columns{}, argError(name, "expected 1 argument")
		}
		return cols.Match(right[0]), nil
	case "select":
		inner, err := columnArgs(name, args, 1)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.Select(selector.And(inner...)), nil
	case "col":
		s, err := stringArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.Col(s), nil
	case "named", "into":
		s, err := stringArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.Named(s), nil
	case "colsOf":
		s, err := stringArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.ColsOf(schema.ValueType(strings.ToUpper(s))), nil
	case "nameContains":
		s, err := stringArg(name, args)
		return cols.NameContains(s), err
	case "nameStartsWith":
		s, err := stringArg(name, args)
		return cols.NameStartsWith(s), err
	case "nameEndsWith":
		s, err := stringArg(name, args)
		return cols.NameEndsWith(s), err
	case "nameMatches":
		s, err := stringArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return selector.Columns{}, argError(name, err.Error())
		}
		return cols.NameMatches(re), nil
	case "take", "takeLast", "drop", "dropLast":
		n, err := numberArg(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		switch name.Value {
		case "take":
			return cols.Take(n), nil
		case "takeLast":
			return cols.TakeLast(n), nil
		case "drop":
			return cols.Drop(n), nil
		default:
			return cols.DropLast(n), nil
		}
	case "colsAtAnyDepth":
		opts, err := depthOptions(name, args)
		if err != nil {
			return selector.Columns{}, err
		}
		return cols.ColsAtAnyDepth(opts...), nil
	}

	noArgs := map[string]func(selector.Columns) selector.Columns{
		"distinct":     selector.Columns.Distinct,
		"valueCols":    selector.Columns.ValueCols,
		"colGroups":    selector.Columns.ColGroups,
		"frameCols":    selector.Columns.FrameCols,
		"children":     selector.Columns.Children,
		"colsInGroups": selector.Columns.ColsInGroups,
		"simplify":     selector.Columns.Simplify,
	}
	if fn, ok := noArgs[name.Value]; ok {
		if err := wantCount(name, args, 0); err != nil {
			return selector.Columns{}, err
		}
		return fn(cols), nil
	}
	return selector.Columns{}, &SyntaxError{Pos: name.Pos, Msg: fmt.Sprintf("unknown function %q", name.Value)}
}
