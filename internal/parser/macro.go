package parser

import (
	"strings"

	"rdmd/internal/rd"
	"rdmd/internal/token"
)

// parseMacro dispatches on the macro name following a backslash. The
// current token is the backslash itself. Names the lexer mangled with
// trailing punctuation fall into the unknown bucket, where the greedy
// brace consumer naturally finds no arguments.
func (p *Parser) parseMacro() (rd.Node, error) {
	p.advance() // backslash

	name := ""
	if p.at(token.Text) {
		name = p.advance().Text
	}

	switch name {
	// bare specials
	case "R":
		return &rd.Special{Char: rd.SpecialR}, nil
	case "dots", "ldots":
		return &rd.Special{Char: rd.SpecialDots}, nil
	case "cr":
		return &rd.LineBreak{}, nil
	case "tab":
		return &rd.Tab{}, nil

	// inline with parsed children
	case "code":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Code{Children: c} })
	case "emph":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Emph{Children: c} })
	case "strong", "bold":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Strong{Children: c} })
	case "samp":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Samp{Children: c} })
	case "file":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.File{Children: c} })
	case "dfn":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Dfn{Children: c} })
	case "kbd":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.Kbd{Children: c} })
	case "sQuote":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.SQuote{Children: c} })
	case "dQuote":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.DQuote{Children: c} })

	// inline verbatim
	case "verb":
		return p.inlineString(func(s string) rd.Node { return &rd.Verb{Value: s} })

	// inline strings
	case "url":
		return p.inlineString(func(s string) rd.Node { return &rd.URL{Value: s} })
	case "email":
		return p.inlineString(func(s string) rd.Node { return &rd.Email{Value: s} })
	case "pkg":
		return p.inlineString(func(s string) rd.Node { return &rd.Pkg{Value: s} })
	case "var":
		return p.inlineString(func(s string) rd.Node { return &rd.Var{Value: s} })
	case "env":
		return p.inlineString(func(s string) rd.Node { return &rd.Env{Value: s} })
	case "option":
		return p.inlineString(func(s string) rd.Node { return &rd.Option{Value: s} })
	case "command":
		return p.inlineString(func(s string) rd.Node { return &rd.Command{Value: s} })
	case "acronym":
		return p.inlineString(func(s string) rd.Node { return &rd.Acronym{Value: s} })
	case "abbr":
		return p.inlineString(func(s string) rd.Node { return &rd.Abbr{Value: s} })
	case "cite":
		return p.inlineString(func(s string) rd.Node { return &rd.Cite{Value: s} })
	case "doi":
		return p.inlineString(func(s string) rd.Node { return &rd.DOI{Value: s} })

	// blocks
	case "item":
		// Outside \itemize and friends, as in \arguments bodies.
		item, err := p.parseItemBody()
		if err != nil {
			return nil, err
		}
		return item, nil
	case "preformatted":
		return p.inlineString(func(s string) rd.Node { return &rd.Preformatted{Value: s} })
	case "itemize":
		items, err := p.parseItemList()
		if err != nil {
			return nil, err
		}
		return &rd.Itemize{Items: items}, nil
	case "enumerate":
		items, err := p.parseItemList()
		if err != nil {
			return nil, err
		}
		return &rd.Enumerate{Items: items}, nil
	case "describe":
		return p.parseDescribe()
	case "tabular":
		return p.parseTabular()
	case "subsection":
		title, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		content, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &rd.Subsection{Title: title, Content: content}, nil
	case "section":
		title, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		content, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &rd.SectionNode{Title: title, Content: content}, nil

	// link-like
	case "href":
		url, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		text, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &rd.Href{URL: url, Text: text}, nil
	case "link":
		return p.parseLink()
	case "linkS4class":
		pkg, _, err := p.parseOptionalBracket()
		if err != nil {
			return nil, err
		}
		class, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		return &rd.LinkS4Class{Package: pkg, Class: class}, nil
	case "Sexpr":
		opts, _, err := p.parseOptionalBracket()
		if err != nil {
			return nil, err
		}
		code, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		return &rd.Sexpr{Options: opts, Code: code}, nil

	// math
	case "eqn":
		latex, ascii, err := p.parseMathArgs()
		if err != nil {
			return nil, err
		}
		return &rd.Eqn{Latex: latex, ASCII: ascii}, nil
	case "deqn":
		latex, ascii, err := p.parseMathArgs()
		if err != nil {
			return nil, err
		}
		return &rd.Deqn{Latex: latex, ASCII: ascii}, nil

	// conditionals
	case "if":
		format, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		content, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &rd.If{Format: format, Content: content}, nil
	case "ifelse":
		format, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		then, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		els, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		return &rd.IfElse{Format: format, Then: then, Else: els}, nil
	case "out":
		return p.inlineString(func(s string) rd.Node { return &rd.Out{Value: s} })

	// usage method declarations
	case "method", "S3method":
		generic, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		class, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		if name == "S3method" {
			return &rd.S3Method{Generic: generic, Class: class}, nil
		}
		return &rd.Method{Generic: generic, Class: class}, nil
	case "S4method":
		generic, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		signature, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		return &rd.S4Method{Generic: generic, Signature: signature}, nil

	// example control
	case "dontrun":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.DontRun{Children: c} })
	case "donttest":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.DontTest{Children: c} })
	case "dontshow", "testonly":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.DontShow{Children: c} })
	case "dontdiff":
		return p.inlineChildren(func(c []rd.Node) rd.Node { return &rd.DontDiff{Children: c} })

	case "figure":
		return p.parseFigure()
	}

	// unknown: greedily consume as many brace groups as follow
	var args [][]rd.Node
	for p.at(token.OpenBrace) {
		arg, err := p.parseGroup()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return &rd.Macro{Name: name, Args: args}, nil
}

func (p *Parser) inlineChildren(build func([]rd.Node) rd.Node) (rd.Node, error) {
	children, err := p.parseGroup()
	if err != nil {
		return nil, err
	}
	return build(children), nil
}

func (p *Parser) inlineString(build func(string) rd.Node) (rd.Node, error) {
	s, err := p.parsePlainGroup()
	if err != nil {
		return nil, err
	}
	return build(s), nil
}

// parseMathArgs reads `{latex}` and an optional `{ascii}`.
func (p *Parser) parseMathArgs() (latex, ascii string, err error) {
	latex, err = p.parsePlainGroup()
	if err != nil {
		return "", "", err
	}
	if p.at(token.OpenBrace) {
		ascii, err = p.parsePlainGroup()
		if err != nil {
			return "", "", err
		}
	}
	return latex, ascii, nil
}

// parseLink applies the four-way `\link` grammar.
func (p *Parser) parseLink() (rd.Node, error) {
	opt, hasOpt, err := p.parseOptionalBracket()
	if err != nil {
		return nil, err
	}
	content, err := p.parseGroup()
	if err != nil {
		return nil, err
	}

	switch {
	case !hasOpt:
		return &rd.Link{Topic: firstTextChild(content)}, nil
	case strings.HasPrefix(opt, "="):
		return &rd.Link{Topic: opt[1:], Text: content}, nil
	case strings.Contains(opt, ":"):
		idx := strings.Index(opt, ":")
		return &rd.Link{Package: opt[:idx], Topic: opt[idx+1:], Text: content}, nil
	default:
		return &rd.Link{Package: opt, Topic: firstTextChild(content)}, nil
	}
}

// parseFigure reads `\figure{file}` with either a bracketed alt-text
// fallback or a structured second brace argument.
func (p *Parser) parseFigure() (rd.Node, error) {
	file, err := p.parsePlainGroup()
	if err != nil {
		return nil, err
	}

	bracketAlt, hasBracket, err := p.parseOptionalBracket()
	if err != nil {
		return nil, err
	}

	if p.at(token.OpenBrace) {
		raw, err := p.parsePlainGroup()
		if err != nil {
			return nil, err
		}
		return &rd.Figure{File: file, Option: parseFigureOption(raw)}, nil
	}
	if hasBracket {
		return &rd.Figure{File: file, Option: &rd.FigureOption{Value: bracketAlt}}, nil
	}
	return &rd.Figure{File: file}, nil
}

// parseFigureOption recognizes the `options: ...` expert form. The
// prefix must be followed by at least one whitespace character;
// otherwise the whole argument is plain alt text.
func parseFigureOption(raw string) *rd.FigureOption {
	const prefix = "options:"
	if strings.HasPrefix(raw, prefix) {
		rest := raw[len(prefix):]
		trimmed := strings.TrimLeft(rest, " \t\n")
		if len(trimmed) < len(rest) {
			return &rd.FigureOption{Expert: true, Value: trimmed}
		}
	}
	return &rd.FigureOption{Value: raw}
}
