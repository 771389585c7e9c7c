package builder

import (
	"regexp"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
)

var (
	imageMarkerRe   = regexp.MustCompile(`(QuestionDescriptionImage:|BackgroundImage:|PositionedImage:|QuestionOptionImage:|AnswerOptionImage:|JustDropDown:|CaseStudyImage:)\s*`)
	questionHeadRe  = regexp.MustCompile(`(?i)^\s*QUESTION NO:\s*\d+[^\n]*\n?`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	optionLetterRe  = regexp.MustCompile(`^[A-Z]\.`)
	blankRunRe      = regexp.MustCompile(`_{2,}`)
	optionLineRe    = regexp.MustCompile(`(?m)^([A-Z])\.\s+(.*)$`)
	answerLettersRe = regexp.MustCompile(`Answer:\s*([A-Z](?:,\s*[A-Z])*)`)

	// URL patterns in matching priority order. The bare https: form
	// catches links that lost their slashes in extraction.
	urlRes = []*regexp.Regexp{
		regexp.MustCompile(`https://[^\s\)]+`),
		regexp.MustCompile(`http://[^\s\)]+`),
		regexp.MustCompile(`https:[^\s\)]+`),
		regexp.MustCompile(`www\.[^\s\)]+\.[a-zA-Z]{2,}`),
	}

	contentURLRes = []*regexp.Regexp{
		regexp.MustCompile(`https://[^\s\)]+`),
		regexp.MustCompile(`https:[^\s\)]+`),
		regexp.MustCompile(`www\.[^\s\)]+\.[a-zA-Z]{2,}`),
	}
)

// typeEchoes are bare type labels that sometimes survive extraction as
// their own paragraph and must not show up as question content.
var typeEchoes = map[string]bool{
	"FillInTheBlank":     true,
	"MultipleChoice":     true,
	"TrueFalse":          true,
	"SingleChoice":       true,
	"MultipleSelect":     true,
	"DropDown":           true,
	"DragDrop":           true,
	"Hotspot":            true,
	"Simulation":         true,
	"DROPDOWN":           true,
	"DRAGDROP":           true,
	"HOTSPOT":            true,
	"SIMULATION":         true,
	"POSITIONEDDROPDOWN": true,
	"PositionedDropDown": true,
	"POSITIONEDDRAGDROP": true,
	"PositionedDragDrop": true,
}

// cleanItemText normalizes one unit's text for the question body and
// returns "" when the unit carries no body content: markers, option
// lines, answers, explanations and bare URLs all live elsewhere in the
// output node.
func cleanItemText(text, explanation string) string {
	text = imageMarkerRe.ReplaceAllString(text, "")
	text = questionHeadRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return ""
	}

	if isAnswerContent(text) {
		return ""
	}
	if typeEchoes[text] {
		return ""
	}
	if explanation != "" && strings.Contains(explanation, text) {
		return ""
	}

	return blankRunRe.ReplaceAllString(text, "[blank]")
}

// isAnswerContent reports whether text belongs to the answer,
// explanation or references sections rather than the question body.
func isAnswerContent(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	if strings.HasPrefix(lower, "answer:") || strings.Contains(lower, "choices") {
		return true
	}
	if optionLetterRe.MatchString(strings.TrimSpace(text)) {
		return true
	}
	if strings.HasPrefix(lower, "explanation:") {
		return true
	}
	return containsURL(text)
}

func containsURL(text string) bool {
	for _, re := range contentURLRes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// extractExplanation returns the text after the Explanation: marker
// with URL lines removed; those come back separately as references.
func extractExplanation(text string) string {
	_, after, found := strings.Cut(text, exam.MarkerExplanation)
	if !found {
		return ""
	}

	var clean []string
	for _, line := range strings.Split(strings.TrimSpace(after), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "http://") || strings.Contains(line, "https://") ||
			strings.Contains(line, "https:") || strings.Contains(line, "www.") {
			continue
		}
		clean = append(clean, line)
	}
	return strings.Join(clean, "\n")
}

// extractReferences collects every URL in the question text, first
// occurrence wins on duplicates.
func extractReferences(text string) []string {
	var urls []string
	seen := make(map[string]bool)
	for _, re := range urlRes {
		for _, url := range re.FindAllString(text, -1) {
			if seen[url] {
				continue
			}
			seen[url] = true
			urls = append(urls, url)
		}
	}
	return urls
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}

func imagesWithRole(q *exam.Question, roles grouping.ImageRoles, role exam.Role) []exam.Image {
	var out []exam.Image
	for _, img := range q.Images {
		if roles.For(img.Path) == role {
			out = append(out, img)
		}
	}
	return out
}

// questionAnswerImages splits the question's images into question and
// answer sets. When the classifier tagged neither, positional fallback
// takes the first image as the question and the second as the answer.
func questionAnswerImages(q *exam.Question, roles grouping.ImageRoles) (qImgs, aImgs []exam.Image) {
	qImgs = imagesWithRole(q, roles, exam.RoleQuestion)
	aImgs = imagesWithRole(q, roles, exam.RoleAnswer)

	if len(qImgs) == 0 && len(aImgs) == 0 {
		switch {
		case len(q.Images) >= 2:
			qImgs = q.Images[:1]
			aImgs = q.Images[1:2]
		case len(q.Images) == 1:
			qImgs = q.Images[:1]
		}
	}
	return qImgs, aImgs
}
