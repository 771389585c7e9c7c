package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/fumiama/go-docx"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// DOCXExtractor handles .docx files. Paragraph text comes from go-docx
// in document order; embedded images are resolved from the package by
// relationship id and attached after the paragraph that anchors them.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(r io.Reader, filename string) ([]exam.ContentUnit, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	// go-docx exposes only the run text, so image anchors come from a
	// second pass over the raw package.
	imagesByPara, err := docxImages(raw)
	if err != nil {
		return nil, err
	}

	var units []exam.ContentUnit
	para := 0
	for _, item := range doc.Document.Body.Items {
		p, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := docxParagraphText(p); text != "" {
			units = append(units, textUnit(text))
		}
		if imgs := imagesByPara[para]; len(imgs) > 0 {
			units = append(units, imageUnit(imgs...))
		}
		para++
	}
	return units, nil
}

func docxParagraphText(p *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range p.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

type docxRelationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// docxImages maps body paragraph index to the images anchored in that
// paragraph, resolved through word/_rels/document.xml.rels.
func docxImages(raw []byte) (map[int][]exam.Image, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx container: %w", err)
	}

	media := make(map[string][]byte)
	targets := make(map[string]string)
	var document *zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			document = f
		case f.Name == "word/_rels/document.xml.rels":
			data, err := readZipFile(f)
			if err != nil {
				return nil, fmt.Errorf("read rels: %w", err)
			}
			var rels docxRelationships
			if err := xml.Unmarshal(data, &rels); err != nil {
				return nil, fmt.Errorf("parse rels: %w", err)
			}
			for _, rel := range rels.Rels {
				targets[rel.ID] = "word/" + strings.TrimPrefix(rel.Target, "/word/")
			}
		case strings.HasPrefix(f.Name, "word/media/"):
			data, err := readZipFile(f)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.Name, err)
			}
			media[f.Name] = data
		}
	}
	if document == nil || len(media) == 0 {
		return nil, nil
	}

	dr, err := document.Open()
	if err != nil {
		return nil, fmt.Errorf("open document.xml: %w", err)
	}
	defer dr.Close()

	// Body-level paragraph counting mirrors the go-docx item walk:
	// paragraphs inside tables do not advance the index.
	byPara := make(map[int][]exam.Image)
	d := xml.NewDecoder(dr)
	para := 0
	tblDepth := 0
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "blip":
				rid := attrValue(t, "embed")
				path, ok := targets[rid]
				if !ok {
					continue
				}
				data, ok := media[path]
				if !ok {
					continue
				}
				byPara[para] = append(byPara[para], exam.Image{
					Data:   data,
					Format: imageFormat(path),
					Path:   path,
				})
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth--
			case "p":
				if tblDepth == 0 {
					para++
				}
			}
		}
	}
	return byPara, nil
}
