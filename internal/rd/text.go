package rd

import (
	"strings"
)

// ExtractText linearizes a node sequence to source-like plain text. It is
// the serializer behind usage code blocks, titles, alias names, and inline
// code labels. Method nodes are rewritten to pkgdown-style comment lines
// and, where the generic is an infix operator, their argument list is
// reformatted to the natural expression form (`e1 + e2`).
func ExtractText(nodes []Node) string {
	var sb strings.Builder
	extractSeq(&sb, nodes)
	return sb.String()
}

func extractSeq(sb *strings.Builder, nodes []Node) {
	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case *Method:
			i += extractMethod(sb, n.Generic, n.Class, false, nodes[i+1:])
		case *S3Method:
			i += extractMethod(sb, n.Generic, n.Class, false, nodes[i+1:])
		case *S4Method:
			i += extractMethod(sb, n.Generic, n.Signature, true, nodes[i+1:])
		default:
			extractNode(sb, nodes[i])
		}
	}
}

func extractNode(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Text:
		sb.WriteString(n.Value)
	case *Paragraph:
		extractSeq(sb, n.Children)
	case *Verbatim:
		sb.WriteString(n.Value)
	case *Preformatted:
		sb.WriteString(n.Value)
	case *SectionNode:
		extractSeq(sb, n.Content)
	case *Subsection:
		extractSeq(sb, n.Content)
	case *Item:
		extractSeq(sb, n.Content)
	case *Itemize:
		for _, it := range n.Items {
			extractSeq(sb, it.Content)
		}
	case *Enumerate:
		for _, it := range n.Items {
			extractSeq(sb, it.Content)
		}
	case *Describe:
		for _, it := range n.Items {
			extractSeq(sb, it.Term)
			extractSeq(sb, it.Description)
		}
	case *Tabular:
		for _, row := range n.Rows {
			for _, cell := range row {
				extractSeq(sb, cell)
			}
		}
	case *Code:
		extractSeq(sb, n.Children)
	case *Verb:
		sb.WriteString(n.Value)
	case *Emph:
		extractSeq(sb, n.Children)
	case *Strong:
		extractSeq(sb, n.Children)
	case *Samp:
		extractSeq(sb, n.Children)
	case *File:
		extractSeq(sb, n.Children)
	case *Dfn:
		extractSeq(sb, n.Children)
	case *Kbd:
		extractSeq(sb, n.Children)
	case *SQuote:
		sb.WriteByte('\'')
		extractSeq(sb, n.Children)
		sb.WriteByte('\'')
	case *DQuote:
		sb.WriteByte('"')
		extractSeq(sb, n.Children)
		sb.WriteByte('"')
	case *Href:
		extractSeq(sb, n.Text)
	case *Link:
		sb.WriteString(LinkDisplay(n))
	case *LinkS4Class:
		if n.Package != "" {
			sb.WriteString(n.Package)
			sb.WriteString("::")
		}
		sb.WriteString(n.Class)
	case *URL:
		sb.WriteString(n.Value)
	case *Email:
		sb.WriteString(n.Value)
	case *DOI:
		sb.WriteString(n.Value)
	case *Pkg:
		sb.WriteString(n.Value)
	case *Var:
		sb.WriteString(n.Value)
	case *Env:
		sb.WriteString(n.Value)
	case *Option:
		sb.WriteString(n.Value)
	case *Command:
		sb.WriteString(n.Value)
	case *Acronym:
		sb.WriteString(n.Value)
	case *Abbr:
		sb.WriteString(n.Value)
	case *Cite:
		sb.WriteString(n.Value)
	case *Eqn:
		if n.ASCII != "" {
			sb.WriteString(n.ASCII)
		} else {
			sb.WriteString(n.Latex)
		}
	case *Deqn:
		if n.ASCII != "" {
			sb.WriteString(n.ASCII)
		} else {
			sb.WriteString(n.Latex)
		}
	case *If:
		if includeFormat(n.Format) {
			extractSeq(sb, n.Content)
		}
	case *IfElse:
		if includeFormat(n.Format) {
			extractSeq(sb, n.Then)
		} else {
			extractSeq(sb, n.Else)
		}
	case *Out, *Sexpr, *Figure:
		// no textual rendering
	case *Special:
		sb.WriteString(SpecialText(n.Char))
	case *LineBreak:
		sb.WriteByte('\n')
	case *Tab:
		sb.WriteByte('\t')
	case *DontRun:
		extractSeq(sb, n.Children)
	case *DontTest:
		extractSeq(sb, n.Children)
	case *DontShow:
		extractSeq(sb, n.Children)
	case *DontDiff:
		extractSeq(sb, n.Children)
	case *Method:
		extractMethod(sb, n.Generic, n.Class, false, nil)
	case *S3Method:
		extractMethod(sb, n.Generic, n.Class, false, nil)
	case *S4Method:
		extractMethod(sb, n.Generic, n.Signature, true, nil)
	case *Macro:
		extractMacro(sb, n)
	}
}

// LinkDisplay returns the display text of a link: the supplied text if
// any, else `topic` or `pkg::topic`.
func LinkDisplay(n *Link) string {
	if n.Text != nil {
		return ExtractText(n.Text)
	}
	if n.Package != "" {
		return n.Package + "::" + n.Topic
	}
	return n.Topic
}

// includeFormat reports whether an `\if`/`\ifelse` branch targets the
// formats this tool renders for.
func includeFormat(format string) bool {
	for _, f := range strings.Split(format, ",") {
		switch strings.TrimSpace(f) {
		case "html", "text":
			return true
		}
	}
	return false
}

// extractMacro tolerates the lexer's macro-name imprecision: a trailing
// `)` or `,` rides along with the name, so `\dots)` arrives as the
// unknown macro `dots)`.
func extractMacro(sb *strings.Builder, n *Macro) {
	for _, prefix := range [...]string{"ldots", "dots"} {
		if strings.HasPrefix(n.Name, prefix) {
			sb.WriteString("...")
			sb.WriteString(n.Name[len(prefix):])
			return
		}
	}
	for _, arg := range n.Args {
		extractSeq(sb, arg)
	}
}

// extractMethod writes the pkgdown comment line for a usage method
// declaration followed by its call form, consuming following text nodes
// when infix reformatting applies. Returns the number of nodes consumed
// from rest.
func extractMethod(sb *strings.Builder, generic, class string, s4 bool, rest []Node) int {
	switch {
	case s4:
		sb.WriteString("# S4 method for signature '" + class + "'\n")
	case class == "default":
		sb.WriteString("# Default S3 method\n")
	default:
		sb.WriteString("# S3 method for class '" + class + "'\n")
	}

	if formatted, consumed, ok := reformatInfix(generic, rest); ok {
		sb.WriteString(formatted)
		return consumed
	}
	sb.WriteString(generic)
	return 0
}

var paddedOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&": true, "|": true,
}

var unpaddedOps = map[string]bool{
	"^": true, "[": true, "[[": true, "$": true,
	":": true, "::": true, ":::": true,
}

func isUserInfix(op string) bool {
	return len(op) >= 2 && strings.HasPrefix(op, "%") && strings.HasSuffix(op, "%")
}

func isInfixOperator(op string) bool {
	return paddedOps[op] || unpaddedOps[op] || isUserInfix(op)
}

// reformatInfix rewrites `\method{OP}{cls}(args)` into expression form.
// It scans forward through consecutive Text siblings for the
// parenthesized argument list; any non-Text node (a LineBreak in
// particular) ends the scan.
func reformatInfix(generic string, rest []Node) (string, int, bool) {
	if !isInfixOperator(generic) {
		return "", 0, false
	}

	// Gather consecutive text, remembering node boundaries.
	var gathered strings.Builder
	bounds := make([]int, 0, len(rest))
	for _, node := range rest {
		text, ok := node.(*Text)
		if !ok {
			break
		}
		gathered.WriteString(text.Value)
		bounds = append(bounds, gathered.Len())
	}
	raw := gathered.String()

	open := strings.IndexByte(raw, '(')
	if open < 0 || strings.TrimSpace(raw[:open]) != "" {
		return "", 0, false
	}
	closing := matchParen(raw, open)
	if closing < 0 {
		return "", 0, false
	}

	args := splitArgs(raw[open+1 : closing])
	expr, ok := formatInfixCall(generic, args)
	if !ok {
		return "", 0, false
	}

	// Fully consume every node up to the one holding the `)`; its tail is
	// preserved verbatim.
	consumed := 0
	for consumed < len(bounds) && bounds[consumed] <= closing {
		consumed++
	}
	consumed++
	if consumed > len(bounds) {
		consumed = len(bounds)
	}
	var trailing string
	if consumed > 0 {
		trailing = raw[closing+1 : bounds[consumed-1]]
	}
	return expr + trailing, consumed, true
}

// matchParen returns the index of the `)` matching the `(` at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitArgs splits at top-level commas, respecting (), [], and {} nesting.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(s[start:]))
	return args
}

func formatInfixCall(op string, args []string) (string, bool) {
	switch op {
	case "[":
		if len(args) == 0 {
			return "", false
		}
		if len(args) == 1 {
			return args[0] + "[]", true
		}
		return args[0] + "[" + strings.Join(args[1:], ", ") + "]", true
	case "[[":
		if len(args) == 0 {
			return "", false
		}
		if len(args) == 1 {
			return args[0] + "[[]]", true
		}
		return args[0] + "[[" + strings.Join(args[1:], ", ") + "]]", true
	}
	if len(args) != 2 {
		return "", false
	}
	if unpaddedOps[op] {
		return args[0] + op + args[1], true
	}
	return args[0] + " " + op + " " + args[1], true
}
