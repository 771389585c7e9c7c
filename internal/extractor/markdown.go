package extractor

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// MarkdownExtractor handles Markdown-authored exam sources using
// goldmark. Block nodes become text units; image nodes with data: URIs
// become image units at their position in the document.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) ([]exam.ContentUnit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var units []exam.ContentUnit
	imgCount := 0
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, src); t != "" {
			units = append(units, textUnit(t))
		}
		collectMarkdownImages(n, src, &units, &imgCount)
	}
	return units, nil
}

// blockText gets the text content of a goldmark block node. A
// paragraph holding only an image yields no text; the image unit
// carries it instead.
func blockText(n ast.Node, src []byte) string {
	if n.ChildCount() == 1 {
		if _, ok := n.FirstChild().(*ast.Image); ok {
			return ""
		}
	}
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	if buf.Len() == 0 {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				buf.Write(t.Value(src))
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func collectMarkdownImages(n ast.Node, src []byte, units *[]exam.ContentUnit, count *int) {
	if img, ok := n.(*ast.Image); ok {
		format, data, decoded := parseDataURI(string(img.Destination))
		if decoded {
			*count++
			*units = append(*units, imageUnit(exam.Image{
				Data:   data,
				Format: format,
				Path:   "inline/" + strconv.Itoa(*count) + "." + format,
			}))
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectMarkdownImages(c, src, units, count)
	}
}
