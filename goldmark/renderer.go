package goldmark

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/studybuddy"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type notesRenderer struct {
	width   int
	bold    lipgloss.Style
	italic  lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	link    lipgloss.Style
}

func newRenderer(theme studybuddy.Theme, width int) *notesRenderer {
	return &notesRenderer{
		width:   width,
		bold:    lipgloss.NewStyle().Bold(true),
		italic:  lipgloss.NewStyle().Italic(true),
		heading: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:    lipgloss.NewStyle().Underline(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *notesRenderer) render(source []byte) string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		if b := r.block(c, source, r.width); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// block renders one block-level node without a trailing newline.
func (r *notesRenderer) block(node ast.Node, source []byte, width int) string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return wrap(r.inline(n, source), width)

	case *ast.Heading:
		return wrap(r.heading.Render(r.inline(n, source)), width)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return r.code(n, source)

	case *ast.List:
		return r.list(n, source, width, 0)

	case *ast.ThematicBreak:
		return r.muted.Render(strings.Repeat("─", min(width, 20)))

	case *ast.Blockquote:
		var parts []string
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			parts = append(parts, r.block(c, source, width-2))
		}
		lines := strings.Split(strings.Join(parts, "\n\n"), "\n")
		bar := r.muted.Render("│") + " "
		for i := range lines {
			lines[i] = bar + lines[i]
		}
		return strings.Join(lines, "\n")

	case *ast.HTMLBlock:
		return strings.TrimRight(string(linesOf(n, source)), "\n")
	}

	var parts []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		parts = append(parts, r.block(c, source, width))
	}
	return strings.Join(parts, "\n\n")
}

func (r *notesRenderer) code(node ast.Node, source []byte) string {
	var b strings.Builder
	if fc, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := string(fc.Language(source)); lang != "" {
			b.WriteString(r.muted.Render(lang))
			b.WriteString("\n")
		}
	}
	gutter := r.muted.Render("│") + " "
	body := strings.TrimRight(string(linesOf(node, source)), "\n")
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(gutter + line)
	}
	return b.String()
}

func (r *notesRenderer) list(node *ast.List, source []byte, width, depth int) string {
	var out []string
	num := node.Start
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		item, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		marker := "- "
		if node.IsOrdered() {
			marker = fmt.Sprintf("%d. ", num)
			num++
		}
		prefix := strings.Repeat("  ", depth) + marker
		itemWidth := max(width-len(prefix), 10)

		var body []string
		for ic := item.FirstChild(); ic != nil; ic = ic.NextSibling() {
			if sub, ok := ic.(*ast.List); ok {
				if len(body) > 0 {
					out = append(out, hang(prefix, strings.Join(body, "\n")))
					body = nil
				}
				out = append(out, r.list(sub, source, width, depth+1))
				prefix = strings.Repeat(" ", len(prefix))
				continue
			}
			body = append(body, r.block(ic, source, itemWidth))
		}
		if len(body) > 0 {
			out = append(out, hang(prefix, strings.Join(body, "\n")))
		}
	}
	return strings.Join(out, "\n")
}

// inline collects styled inline text from a node's children.
func (r *notesRenderer) inline(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		r.writeInline(c, source, &buf)
	}
	return buf.String()
}

func (r *notesRenderer) writeInline(node ast.Node, source []byte, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Segment.Value(source))
		switch {
		case n.HardLineBreak():
			buf.WriteByte('\n')
		case n.SoftLineBreak():
			buf.WriteByte(' ')
		}
	case *ast.String:
		buf.Write(n.Value)
	case *ast.Emphasis:
		style := r.italic
		if n.Level > 1 {
			style = r.bold
		}
		buf.WriteString(style.Render(r.inline(n, source)))
	case *ast.CodeSpan:
		buf.WriteString(r.bold.Render(r.inline(n, source)))
	case *ast.Link:
		buf.WriteString(r.link.Render(r.inline(n, source)))
		buf.WriteString(" " + r.muted.Render("("+string(n.Destination)+")"))
	case *ast.AutoLink:
		buf.WriteString(r.link.Render(string(n.URL(source))))
	default:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			r.writeInline(c, source, buf)
		}
	}
}

func linesOf(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.Bytes()
}

func wrap(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}

// hang prefixes the first line of s and indents the rest to line up with it.
func hang(prefix, s string) string {
	lines := strings.Split(s, "\n")
	indent := strings.Repeat(" ", len(prefix))
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
		} else {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
