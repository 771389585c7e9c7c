package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// TextExtractor handles plain text files: one unit per blank-line
// separated paragraph, the granularity the marker vocabulary assumes.
type TextExtractor struct{}

func (e *TextExtractor) Extract(r io.Reader, filename string) ([]exam.ContentUnit, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var units []exam.ContentUnit
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			units = append(units, textUnit(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return units, nil
}
