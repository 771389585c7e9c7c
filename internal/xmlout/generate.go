package xmlout

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// BuiltCaseStudy pairs a case study header node with its built
// questions. TopicNumber and Number keep the original sort identity.
type BuiltCaseStudy struct {
	TopicNumber string
	Number      string
	Node        CaseStudyElem
	Questions   []Question
}

// TextContent returns a plain text block.
func TextContent(text string) Content {
	return Content{ContentType: "Text", Text: text}
}

// LinkContent returns a reference link block.
func LinkContent(url string) Content {
	return Content{ContentType: "Link", Link: url}
}

// ImageContent returns a base64 image block. Background images get the
// BImage content type so renderers can layer dropzones over them.
func ImageContent(data []byte, isAnswer, background bool) Content {
	contentType := "Image"
	if background {
		contentType = "BImage"
	}
	return Content{
		ContentType:   contentType,
		Image:         base64.StdEncoding.EncodeToString(data),
		IsAnswerImage: strconv.FormatBool(isAnswer),
	}
}

// CaseStudyNode converts a grouped case study into its header node.
func CaseStudyNode(cs *exam.CaseStudy) CaseStudyElem {
	node := CaseStudyElem{
		Number: cs.TopicNumber,
		Name:   cs.TopicName,
	}
	for _, seg := range cs.Segments {
		segElem := SegmentElem{Name: seg.Name}
		for _, entry := range seg.Entries {
			switch entry.Kind {
			case exam.EntryText:
				segElem.Contents = append(segElem.Contents, TextContent(entry.Text))
			case exam.EntryTitle:
				segElem.Contents = append(segElem.Contents, Content{ContentType: "Title", Text: entry.Text})
			case exam.EntryImage:
				if entry.Image != nil {
					segElem.Contents = append(segElem.Contents, ImageContent(entry.Image.Data, entry.IsAnswerImage, false))
				}
			}
		}
		node.Segments = append(node.Segments, segElem)
	}
	return node
}

// Generate assembles the full document: one testlet per case study in
// (topic, case) order with its questions sorted by number, then one
// trailing testlet with the sorted standalone questions.
func Generate(standalone []Question, caseStudies []BuiltCaseStudy) ([]byte, error) {
	total := len(standalone)
	for _, cs := range caseStudies {
		total += len(cs.Questions)
	}

	root := Root{QuestionsPerExam: total}

	sorted := make([]BuiltCaseStudy, len(caseStudies))
	copy(sorted, caseStudies)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TopicNumber != sorted[j].TopicNumber {
			return numberLess(sorted[i].TopicNumber, sorted[j].TopicNumber)
		}
		return numberLess(sorted[i].Number, sorted[j].Number)
	})

	for _, cs := range sorted {
		node := cs.Node
		testlet := Testlet{
			CaseStudy: &node,
			Questions: sortQuestions(cs.Questions),
		}
		root.Testlets = append(root.Testlets, testlet)
	}

	if len(standalone) > 0 {
		root.Testlets = append(root.Testlets, Testlet{
			Questions: sortQuestions(standalone),
		})
	}

	out, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	out = restoreHeadingTags(out)

	doc := make([]byte, 0, len(xml.Header)+len(out)+1)
	doc = append(doc, xml.Header...)
	doc = append(doc, out...)
	doc = append(doc, '\n')
	return doc, nil
}

func sortQuestions(questions []Question) []Question {
	sorted := make([]Question, len(questions))
	copy(sorted, questions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return numberLess(sorted[i].QuestionNo, sorted[j].QuestionNo)
	})
	return sorted
}

// numberLess orders numerically when both keys are integers, otherwise
// lexically, with numeric keys before non-numeric ones.
func numberLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai < bi
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}

// restoreHeadingTags undoes the escaping of the CaseStudyHeading
// markup that the grouper embeds in segment text. The serializer
// escapes the angle brackets; the output format expects real tags.
func restoreHeadingTags(doc []byte) []byte {
	doc = bytes.ReplaceAll(doc, []byte("&lt;CaseStudyHeading&gt;"), []byte("<CaseStudyHeading>"))
	doc = bytes.ReplaceAll(doc, []byte("&lt;/CaseStudyHeading&gt;"), []byte("</CaseStudyHeading>"))
	return doc
}
