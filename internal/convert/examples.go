package convert

import (
	"strings"

	"rdmd/internal/md"
	"rdmd/internal/rd"
)

// examplesSection walks the section children with a running accumulator
// of plain example code, flushed whenever a control wrapper forces its
// own block. Ordinary code runs by default; wrappers run per the
// exec options.
func (c *converter) examplesSection(content []rd.Node) []md.Node {
	if len(content) == 0 {
		return nil
	}
	blocks := []md.Node{c.heading("Examples")}

	var acc strings.Builder
	hasExecutable := false

	codeBlock := func(text string, executable bool) {
		value := strings.TrimSpace(text)
		if value == "" {
			return
		}
		meta := ""
		if executable {
			meta = "executable"
		}
		blocks = append(blocks, &md.Code{Lang: "r", Meta: meta, Value: value})
	}
	flush := func() {
		codeBlock(acc.String(), true)
		acc.Reset()
	}

	for _, n := range content {
		switch n := n.(type) {
		case *rd.DontRun:
			flush()
			codeBlock(rd.ExtractText(n.Children), c.opts.ExecDontrun)
		case *rd.DontTest:
			flush()
			codeBlock(rd.ExtractText(n.Children), c.opts.ExecDonttest)
		case *rd.DontShow:
			text := rd.ExtractText(n.Children)
			if isWrapperFragment(text) {
				continue
			}
			flush()
			if c.opts.QuartoCodeBlocks {
				codeBlock("#| include: false\n"+strings.TrimSpace(text), true)
			}
		case *rd.DontDiff:
			acc.WriteString(rd.ExtractText(n.Children))
			hasExecutable = true
		default:
			acc.WriteString(rd.ExtractText([]rd.Node{n}))
			hasExecutable = true
		}
	}

	codeBlock(acc.String(), hasExecutable)

	if len(blocks) == 1 {
		return nil
	}
	return blocks
}

// isWrapperFragment detects the halves of an @examplesIf desugaring: a
// \dontshow whose braces are unbalanced toward open, or which begins by
// closing a brace opened in a sibling. Such fragments carry no code of
// their own.
func isWrapperFragment(text string) bool {
	opens, closes := 0, 0
	for _, r := range text {
		switch r {
		case '{':
			opens++
		case '}':
			closes++
		}
	}
	if opens > closes {
		return true
	}
	return strings.HasPrefix(strings.TrimSpace(text), "}")
}
