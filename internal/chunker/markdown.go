package chunker

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// SplitMarkdown splits markdown text at H1/H2 section boundaries before
// applying the character splitter to each section. Section chunks carry
// their header hierarchy as a leading line so retrieval keeps document
// structure context. Documents without headers fall back to plain Split.
func SplitMarkdown(source []byte, targetSize, overlap int) ([]string, error) {
	sections, err := sectionize(source)
	if err != nil {
		return nil, fmt.Errorf("sectionize markdown: %w", err)
	}

	if len(sections) == 0 {
		return Split(string(source), targetSize, overlap)
	}

	var chunks []string
	for _, sec := range sections {
		parts, err := Split(sec, targetSize, overlap)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, parts...)
	}
	if chunks == nil {
		chunks = []string{}
	}
	return chunks, nil
}

// section is a contiguous markdown region under one H1/H2 heading.
type section struct {
	headerPath string
	start      int
	level      int
}

// sectionize parses the source and returns one string per H1/H2 section,
// each prefixed with its header hierarchy ("# Title > ## Section").
// Returns nil when the document has no headings.
func sectionize(source []byte) ([]string, error) {
	md := goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID()))
	doc := md.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(2),
		toc.Compact(true),
	)
	if err != nil {
		return nil, err
	}
	if len(tree.Items) == 0 {
		return nil, nil
	}

	var marks []section
	collectSections(doc, tree.Items, nil, &marks)
	if len(marks) == 0 {
		return nil, nil
	}

	out := make([]string, 0, len(marks))
	for i, m := range marks {
		end := len(source)
		if i+1 < len(marks) {
			end = marks[i+1].start
		}
		content := strings.TrimSpace(string(source[m.start:end]))
		if content == "" {
			continue
		}
		out = append(out, m.headerPath+"\n\n"+content)
	}
	return out, nil
}

// collectSections walks the TOC recording the byte offset of each H1/H2
// heading along with its hierarchy path.
func collectSections(doc ast.Node, items toc.Items, ancestors []string, marks *[]section) {
	for _, item := range items {
		path := append(append([]string{}, ancestors...), string(item.Title))

		heading := findHeadingByID(doc, string(item.ID))
		if heading != nil && heading.Lines().Len() > 0 {
			*marks = append(*marks, section{
				headerPath: formatHeaderPath(path),
				start:      heading.Lines().At(0).Start,
				level:      heading.(*ast.Heading).Level,
			})
		}

		if len(item.Items) > 0 {
			collectSections(doc, item.Items, path, marks)
		}
	}
}

// formatHeaderPath renders a hierarchy like "# Install > ## Prerequisites".
func formatHeaderPath(path []string) string {
	parts := make([]string, len(path))
	for i, title := range path {
		parts[i] = fmt.Sprintf("%s %s", strings.Repeat("#", i+1), title)
	}
	return strings.Join(parts, " > ")
}

// findHeadingByID locates a heading node by its auto-generated ID.
func findHeadingByID(node ast.Node, id string) ast.Node {
	var found ast.Node
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindHeading {
			if v, ok := n.AttributeString("id"); ok && bytes.Equal(v.([]byte), []byte(id)) {
				found = n
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return found
}
