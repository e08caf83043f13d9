package docimport

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FlattenMarkdown renders markdown to plain prose for analysis: block
// structure becomes paragraph breaks, inline markup is dropped, and code
// blocks are skipped entirely (they are noise to the signal extractor).
func FlattenMarkdown(content string) string {
	src := []byte(content)
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var b strings.Builder
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			if entering {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			if entering {
				b.Write(node.Segment.Value(src))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.Blockquote:
			if !entering {
				b.WriteString("\n\n")
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
