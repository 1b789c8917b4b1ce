package ingest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// ExtractPages reads a source document and returns its pages in document order.
// PDFs yield one Page per non-blank physical page; plain text and markdown
// files yield a single Page numbered 1. Extraction is read-only and idempotent.
func ExtractPages(path string) ([]Page, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return extractPDF(path)
	case ".txt":
		return extractPlain(path)
	case ".md":
		return extractMarkdown(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// readSource reads the whole file, mapping a missing path to ErrFileNotFound.
func readSource(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

func extractPDF(path string) ([]Page, error) {
	content, err := readSource(path)
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("%w: open PDF %s: %v", ErrExtraction, path, err)
	}

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d of %s: %v", ErrExtraction, i, path, err)
		}
		// Blank pages contribute nothing; numbering stays physical.
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, Page{PageNumber: i, Text: pageText})
	}

	return pages, nil
}

func extractPlain(path string) ([]Page, error) {
	content, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return []Page{{PageNumber: 1, Text: string(content)}}, nil
}

// extractMarkdown treats the whole file as page 1 but extracts text from the
// goldmark AST so markdown syntax does not leak into chunk text.
func extractMarkdown(path string) ([]Page, error) {
	content, err := readSource(path)
	if err != nil {
		return nil, err
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader(content))

	var builder strings.Builder
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			builder.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				builder.WriteByte('\n')
			}
		case *ast.String:
			builder.Write(node.Value)
		case *ast.CodeBlock:
			writeCodeLines(&builder, node.BaseBlock, content)
		case *ast.FencedCodeBlock:
			writeCodeLines(&builder, node.BaseBlock, content)
		case *ast.Heading, *ast.Paragraph, *ast.ListItem, *ast.Blockquote:
			if builder.Len() > 0 {
				builder.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: markdown %s: %v", ErrExtraction, path, err)
	}

	return []Page{{PageNumber: 1, Text: builder.String()}}, nil
}

func writeCodeLines(builder *strings.Builder, block ast.BaseBlock, content []byte) {
	if builder.Len() > 0 {
		builder.WriteByte('\n')
	}
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		builder.Write(line.Value(content))
	}
}
