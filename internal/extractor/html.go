package extractor

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// HTMLExtractor handles HTML exports. Block elements become text units
// and <img> tags with data: URIs become image units, both in document
// order.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(r io.Reader, filename string) ([]exam.ContentUnit, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var units []exam.ContentUnit
	imgCount := 0

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer":
				return
			case "h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "td", "blockquote":
				if t := textContent(n); t != "" {
					units = append(units, textUnit(t))
				}
				// Inline images still need their own units.
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					collectImages(c, &units, &imgCount)
				}
				return
			case "img":
				appendDataImage(n, &units, &imgCount)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return units, nil
}

func collectImages(n *html.Node, units *[]exam.ContentUnit, count *int) {
	if n.Type == html.ElementNode && n.Data == "img" {
		appendDataImage(n, units, count)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectImages(c, units, count)
	}
}

func appendDataImage(n *html.Node, units *[]exam.ContentUnit, count *int) {
	src := htmlAttr(n, "src")
	format, data, ok := parseDataURI(src)
	if !ok {
		return
	}
	*count++
	*units = append(*units, imageUnit(exam.Image{
		Data:   data,
		Format: format,
		Path:   fmt.Sprintf("inline/%d.%s", *count, format),
	}))
}

// parseDataURI decodes a base64 data: URI into its format and bytes.
func parseDataURI(src string) (format string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(src, "data:image/")
	if !found {
		return "", nil, false
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, false
	}
	format = strings.TrimSuffix(meta, ";base64")
	if format == "jpg" {
		format = "jpeg"
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, false
	}
	return format, decoded, true
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func htmlAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
