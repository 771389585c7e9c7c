package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// ODTExtractor handles OpenDocument text files, the primary source
// format. It walks content.xml in document order: every text:p or
// text:h becomes one text unit, and draw:image frames resolve to the
// Pictures/ entries of the container.
type ODTExtractor struct{}

func (e *ODTExtractor) Extract(r io.Reader, filename string) ([]exam.ContentUnit, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read odt: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open odt container: %w", err)
	}

	var content *zip.File
	pictures := make(map[string][]byte)
	for _, f := range zr.File {
		switch {
		case f.Name == "content.xml":
			content = f
		case strings.HasPrefix(f.Name, "Pictures/"):
			data, err := readZipFile(f)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Name, err)
			}
			pictures[f.Name] = data
		}
	}
	if content == nil {
		return nil, fmt.Errorf("odt container has no content.xml")
	}

	cr, err := content.Open()
	if err != nil {
		return nil, fmt.Errorf("open content.xml: %w", err)
	}
	defer cr.Close()

	return walkODTContent(cr, pictures)
}

// walkODTContent streams content.xml tokens. Paragraph text and the
// image references inside the paragraph are collected together, then
// flushed as units when the paragraph closes.
func walkODTContent(r io.Reader, pictures map[string][]byte) ([]exam.ContentUnit, error) {
	d := xml.NewDecoder(r)

	var units []exam.ContentUnit
	var text strings.Builder
	var images []exam.Image
	paraDepth := 0

	flush := func() {
		if t := strings.TrimSpace(text.String()); t != "" {
			units = append(units, textUnit(t))
		}
		if len(images) > 0 {
			units = append(units, imageUnit(images...))
		}
		text.Reset()
		images = nil
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse content.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p", "h":
				paraDepth++
			case "image":
				href := attrValue(t, "href")
				if data, ok := pictures[href]; ok {
					images = append(images, exam.Image{
						Data:   data,
						Format: imageFormat(href),
						Path:   href,
					})
				}
			case "line-break":
				if paraDepth > 0 {
					text.WriteByte('\n')
				}
			case "tab", "s":
				if paraDepth > 0 {
					text.WriteByte(' ')
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "h" {
				paraDepth--
				if paraDepth == 0 {
					flush()
				}
			}
		case xml.CharData:
			if paraDepth > 0 {
				text.Write(t)
			}
		}
	}
	flush()

	return units, nil
}

func attrValue(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
