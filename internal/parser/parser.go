// Package parser builds the ast data model from Siml source text.
//
// The parser is a hand-written recursive descent over the token stream.
// Expressions are parsed by precedence climbing and pushed straight into
// an RPN formula, so no separate expression tree exists. Parse problems
// are recorded in the diagnostic sink and the parser resynchronizes at
// the next statement terminator, so one run reports many errors.
package parser

import (
	"github.com/simlang/similc/internal/ast"
	"github.com/simlang/similc/internal/diag"
	"github.com/simlang/similc/internal/lexer"
)

// Binary operator precedence. Unary sign binds tighter than '*' and '/'
// but looser than '^', which is right-associative.
var precedence = map[lexer.TokenType]int{
	lexer.TokenPlus:  1,
	lexer.TokenMinus: 1,
	lexer.TokenStar:  2,
	lexer.TokenSlash: 2,
	lexer.TokenCaret: 4,
}

const unaryPrecedence = 3

// Parser consumes one token stream and registers the declared models and
// processes in a repository.
type Parser struct {
	tokens  []lexer.Token
	current int
	repo    *ast.Repository
	sink    *diag.Sink
}

// Parse scans and parses one source file into repo. It returns true when
// the file parsed without errors.
func Parse(src, file string, repo *ast.Repository, sink *diag.Sink) bool {
	tokens := lexer.NewScanner(src, file).ScanAll()
	p := &Parser{tokens: tokens, repo: repo, sink: sink}
	return p.parseTopLevel()
}

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *Parser) at(typ lexer.TokenType) bool { return p.peek().Type == typ }

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	if tok.Type != lexer.TokenEOF {
		p.current++
	}
	return tok
}

func (p *Parser) match(typ lexer.TokenType) bool {
	if !p.at(typ) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) span() diag.Span {
	tok := p.peek()
	return diag.Span{File: tok.File, Line: tok.Line}
}

// errorf records a parse error at the current token.
func (p *Parser) errorf(format string, args ...interface{}) {
	p.sink.Errorf(p.span(), format, args...)
}

// synchronize skips ahead to just past the next statement terminator.
func (p *Parser) synchronize() {
	for !p.at(lexer.TokenEOF) {
		if p.advance().Type == lexer.TokenTerminator {
			return
		}
	}
}

func (p *Parser) skipTerminators() {
	for p.match(lexer.TokenTerminator) {
	}
}

// expectTerminator requires the end of a statement.
func (p *Parser) expectTerminator() bool {
	if p.at(lexer.TokenEOF) || p.match(lexer.TokenTerminator) {
		return true
	}
	p.errorf("expected end of statement, found %q", p.peek().String())
	p.synchronize()
	return false
}

// parseTopLevel parses MODEL and PROCESS blocks until end of input.
func (p *Parser) parseTopLevel() bool {
	before := p.sink.Len()
	for {
		p.skipTerminators()
		if p.at(lexer.TokenEOF) {
			break
		}
		switch p.peek().Type {
		case lexer.TokenModel:
			p.parseBlock(false)
		case lexer.TokenProcess:
			p.parseBlock(true)
		default:
			p.errorf("expected MODEL or PROCESS, found %q", p.peek().String())
			p.synchronize()
		}
	}
	return p.sink.Len() == before
}

// parseBlock parses "MODEL name ... END" or "PROCESS name ... END" and
// registers the result in the repository.
func (p *Parser) parseBlock(isProcess bool) {
	span := p.span()
	p.advance() // MODEL or PROCESS
	model := &ast.Model{IsProcess: isProcess, Span: span}

	if !p.at(lexer.TokenIdent) {
		p.errorf("expected name after %s, found %q", blockKind(isProcess), p.peek().String())
		p.synchronize()
		return
	}
	model.Name = p.advance().Lexeme
	p.skipTerminators()

	for !p.at(lexer.TokenEOF) && !p.at(lexer.TokenEnd) {
		switch p.peek().Type {
		case lexer.TokenParameter:
			p.advance()
			p.parseMemorySection(model, true)
		case lexer.TokenVariable:
			p.advance()
			p.parseMemorySection(model, false)
		case lexer.TokenUnit:
			p.advance()
			p.parseUnitSection(model)
		case lexer.TokenSet:
			p.advance()
			model.ParameterAssignments = p.parseEquationSection(model, model.ParameterAssignments)
		case lexer.TokenEquation:
			p.advance()
			model.Equations = p.parseEquationSection(model, model.Equations)
		case lexer.TokenInitial:
			p.advance()
			model.InitialEquations = p.parseEquationSection(model, model.InitialEquations)
		case lexer.TokenSolutionParameters:
			p.advance()
			p.parseSolutionParameters(model)
		default:
			p.errorf("expected a section or END in %s %s, found %q",
				blockKind(isProcess), model.Name, p.peek().String())
			model.ErrorsDetected = true
			p.synchronize()
		}
		p.skipTerminators()
	}

	if !p.match(lexer.TokenEnd) {
		p.errorf("missing END for %s %s", blockKind(isProcess), model.Name)
		model.ErrorsDetected = true
	}

	var err error
	if isProcess {
		err = p.repo.AddProcess(model)
	} else {
		err = p.repo.AddModel(model)
	}
	if err != nil {
		p.sink.Errorf(span, "%s", err.Error())
	}
}

func blockKind(isProcess bool) string {
	if isProcess {
		return "PROCESS"
	}
	return "MODEL"
}

// parseMemorySection parses the statements of a PARAMETER or VARIABLE
// section: name [AS type] [DEFAULT expr | INITIAL expr].
func (p *Parser) parseMemorySection(model *ast.Model, isParameter bool) {
	p.skipTerminators()
	for p.at(lexer.TokenIdent) {
		span := p.span()
		mem := ast.Memory{Name: ast.NewPath(p.advance().Lexeme), Span: span}

		if p.match(lexer.TokenAs) {
			switch p.peek().Type {
			case lexer.TokenReal, lexer.TokenAny, lexer.TokenIdent:
				mem.Type = p.advance().Lexeme
			default:
				p.errorf("expected type after AS, found %q", p.peek().String())
				model.ErrorsDetected = true
				p.synchronize()
				continue
			}
		}

		if isParameter && p.match(lexer.TokenDefault) {
			f, ok := p.parseFormula()
			if !ok {
				model.ErrorsDetected = true
				continue
			}
			mem.Default = &f
		}
		if !isParameter && p.match(lexer.TokenInitial) {
			f, ok := p.parseFormula()
			if !ok {
				model.ErrorsDetected = true
				continue
			}
			mem.Initial = &f
		}

		if !p.expectTerminator() {
			model.ErrorsDetected = true
			continue
		}

		var err error
		if isParameter {
			err = model.AddParameter(mem)
		} else {
			err = model.AddVariable(mem)
		}
		if err != nil {
			p.sink.Errorf(span, "%s", err.Error())
			model.ErrorsDetected = true
		}
		p.skipTerminators()
	}
}

// parseUnitSection parses UNIT statements: name AS ModelType.
func (p *Parser) parseUnitSection(model *ast.Model) {
	p.skipTerminators()
	for p.at(lexer.TokenIdent) {
		span := p.span()
		sub := ast.SubModel{Name: p.advance().Lexeme, Span: span}

		if !p.match(lexer.TokenAs) {
			p.errorf("expected AS in unit declaration of %s", sub.Name)
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}
		if !p.at(lexer.TokenIdent) {
			p.errorf("expected model name after AS, found %q", p.peek().String())
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}
		sub.Type = p.advance().Lexeme

		if !p.expectTerminator() {
			model.ErrorsDetected = true
			continue
		}
		if err := model.AddSubModel(sub); err != nil {
			p.sink.Errorf(span, "%s", err.Error())
			model.ErrorsDetected = true
		}
		p.skipTerminators()
	}
}

// parseEquationSection parses SET, EQUATION or INITIAL statements:
// [$]path := expr.
func (p *Parser) parseEquationSection(model *ast.Model, table []ast.Equation) []ast.Equation {
	p.skipTerminators()
	for p.at(lexer.TokenIdent) || p.at(lexer.TokenDollar) {
		span := p.span()
		deriv := p.match(lexer.TokenDollar)

		path, ok := p.parsePath()
		if !ok {
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}
		lhs := ast.MemoryAccess{Path: path, TimeDerivative: deriv}

		if !p.match(lexer.TokenAssign) {
			p.errorf("expected := after %s", lhs.String())
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}

		rhs, ok := p.parseFormula()
		if !ok {
			model.ErrorsDetected = true
			p.skipTerminators()
			continue
		}
		if !p.expectTerminator() {
			model.ErrorsDetected = true
			continue
		}

		table = append(table, ast.Equation{LHS: lhs, RHS: rhs, Span: span})
		p.skipTerminators()
	}
	return table
}

// parseSolutionParameters parses the SOLUTIONPARAMETERS section:
// ReportingInterval := number; SimulationTime := number.
func (p *Parser) parseSolutionParameters(model *ast.Model) {
	p.skipTerminators()
	for p.at(lexer.TokenIdent) {
		name := p.advance().Lexeme
		if !p.match(lexer.TokenAssign) {
			p.errorf("expected := after %s", name)
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}
		if !p.at(lexer.TokenNumber) {
			p.errorf("expected number for %s, found %q", name, p.peek().String())
			model.ErrorsDetected = true
			p.synchronize()
			p.skipTerminators()
			continue
		}
		value := p.advance().Lexeme

		switch name {
		case "ReportingInterval":
			model.SolutionParameters.ReportingInterval = value
		case "SimulationTime":
			model.SolutionParameters.SimulationTime = value
		default:
			p.errorf("unknown solution parameter %s", name)
			model.ErrorsDetected = true
		}
		if !p.expectTerminator() {
			model.ErrorsDetected = true
			continue
		}
		p.skipTerminators()
	}
}

// parsePath parses a dotted identifier.
func (p *Parser) parsePath() (ast.Path, bool) {
	if !p.at(lexer.TokenIdent) {
		p.errorf("expected identifier, found %q", p.peek().String())
		return ast.Path{}, false
	}
	parts := []string{p.advance().Lexeme}
	for p.match(lexer.TokenDot) {
		if !p.at(lexer.TokenIdent) {
			p.errorf("expected identifier after '.', found %q", p.peek().String())
			return ast.Path{}, false
		}
		parts = append(parts, p.advance().Lexeme)
	}
	return ast.NewPath(parts...), true
}

// parseFormula parses one expression into a fresh RPN formula.
func (p *Parser) parseFormula() (ast.Formula, bool) {
	var f ast.Formula
	if !p.parseExpr(&f, 1) {
		return ast.Formula{}, false
	}
	return f, true
}

// parseExpr parses expressions whose operators bind at least as tightly
// as minPrec, appending atoms to f in postfix order: operands first, the
// right one immediately before its operator.
func (p *Parser) parseExpr(f *ast.Formula, minPrec int) bool {
	if !p.parseOperand(f) {
		return false
	}
	for {
		prec, ok := precedence[p.peek().Type]
		if !ok || prec < minPrec {
			return true
		}
		op := p.advance().Lexeme
		next := prec + 1
		if op == "^" { // right-associative
			next = prec
		}
		if !p.parseExpr(f, next) {
			return false
		}
		f.PushOperator(op, 2)
	}
}

// parseOperand parses a sign, number, memory access or parenthesized
// expression.
func (p *Parser) parseOperand(f *ast.Formula) bool {
	switch p.peek().Type {
	case lexer.TokenPlus, lexer.TokenMinus:
		op := p.advance().Lexeme
		if !p.parseExpr(f, unaryPrecedence) {
			return false
		}
		f.PushOperator(op, 1)
		return true

	case lexer.TokenNumber:
		f.PushNumber(p.advance().Lexeme)
		return true

	case lexer.TokenDollar:
		p.advance()
		path, ok := p.parsePath()
		if !ok {
			return false
		}
		f.PushAccess(ast.NewDerivative(path))
		return true

	case lexer.TokenIdent:
		path, ok := p.parsePath()
		if !ok {
			return false
		}
		f.PushAccess(ast.NewAccess(path))
		return true

	case lexer.TokenLParen:
		p.advance()
		if !p.parseExpr(f, 1) {
			return false
		}
		if !p.match(lexer.TokenRParen) {
			p.errorf("expected ')', found %q", p.peek().String())
			return false
		}
		f.PushBracket()
		return true
	}

	p.errorf("expected expression, found %q", p.peek().String())
	return false
}
