package parser

import (
	"slices"

	"golang.org/x/text/unicode/norm"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
	"strata/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File   ast.FileID
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	strings  *source.Interner
	file     ast.FileID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile parses one unit into arenas. Identifiers are NFC-normalised
// before interning, so composed and decomposed spellings share a StringID.
func ParseFile(
	file *source.File,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	strings *source.Interner,
	opts Options,
) Result {
	empty := source.Span{File: file.ID}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		strings:  strings,
		file:     arenas.Files.New(empty),
		opts:     opts,
		lastSpan: empty,
	}
	p.parseItems()
	end := uint32(len(file.Content)) //nolint:gosec // checked by FileSet.Add
	p.arenas.Files.Get(p.file).Span = source.Span{File: file.ID, Start: 0, End: end}
	return Result{
		File:   p.file,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems: основной цикл верхнего уровня: пока не EOF: parseItem.
func (p *Parser) parseItems() {
	for !p.at(token.EOF) {
		if p.opts.Enough() {
			p.report(diag.SynTooManyErrors, diag.SevError, p.lx.Peek().Span, "too many syntax errors, giving up on this unit")
			p.resyncUntil()
			return
		}
		before := p.lx.Peek().Span
		itemID, ok := p.parseItem()
		if ok {
			p.arenas.PushItem(p.file, itemID)
			continue
		}
		// гарантируем прогресс, иначе resync может встать на тот же стартер
		if p.lx.Peek().Span == before {
			p.advance()
		}
		p.resyncTop()
	}
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	first := p.lx.Peek()
	vis := ast.VisPrivate
	if first.Kind == token.KwPub {
		p.advance()
		vis = ast.VisPublic
	}

	switch p.lx.Peek().Kind {
	case token.KwLet:
		return p.parseLetItem(first, vis)
	case token.KwConst:
		return p.parseConstItem(first, vis)
	case token.KwFn:
		return p.parseFnItem(first, vis)
	}

	if vis.IsPublic() {
		p.errAtPeek(diag.SynUnexpectedToken, "expected 'let', 'const' or 'fn' after 'pub'")
		return ast.NoItemID, false
	}
	if !p.at(token.Invalid) {
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, first.Span,
			"unexpected top-level construct "+quote(first)+"; expected 'let', 'const' or 'fn'")
	}
	return ast.NoItemID, false
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	p.resyncUntil(token.Semicolon, token.KwLet, token.KwConst, token.KwFn, token.KwPub)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func isTopLevelStarter(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwConst, token.KwFn, token.KwPub:
		return true
	default:
		return false
	}
}

// parseIdent: ожидает Ident и интернирует его.
// На ошибке: репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.intern(tok.Text), tok.Span, true
	}
	p.errAtPeek(diag.SynExpectIdentifier, "expected identifier, got "+quote(p.lx.Peek()))
	return source.NoStringID, p.lx.Peek().Span, false
}

func (p *Parser) intern(text string) source.StringID {
	return p.strings.Intern(norm.NFC.String(text))
}
