package builder

import (
	"regexp"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

// buildTextBased handles single and multiple choice questions, whose
// options and answers live entirely in the extracted text. A declared
// single choice with several answer letters gets promoted.
func (b *Builder) buildTextBased(q *exam.Question, node *xmlout.Question) {
	options := extractOptions(q.Text)
	answers := extractAnswerLetters(q.Text)

	if len(answers) > 1 && q.Type == exam.TypeSingleChoice {
		node.Kind = exam.TypeMultipleChoice.XMLKind()
		node.DisplayKind = node.Kind
	}

	for _, opt := range options {
		node.Choices = append(node.Choices, xmlout.Choice{
			Number:   opt.letter,
			Contents: xmlout.TextContent(opt.text),
		})
	}
	if len(answers) > 0 {
		node.Answer = &xmlout.Answer{Choices: answers}
	}
}

type choiceOption struct {
	letter string
	text   string
}

func extractOptions(text string) []choiceOption {
	var options []choiceOption
	for _, m := range optionLineRe.FindAllStringSubmatch(text, -1) {
		options = append(options, choiceOption{
			letter: m[1],
			text:   strings.TrimSpace(m[2]),
		})
	}
	return options
}

// extractAnswerLetters returns the deduplicated answer letters from
// the Answer: line.
func extractAnswerLetters(text string) []string {
	m := answerLettersRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	seen := make(map[string]bool)
	var letters []string
	for _, part := range strings.Split(m[1], ",") {
		letter := strings.TrimSpace(part)
		if letter == "" || seen[letter] {
			continue
		}
		seen[letter] = true
		letters = append(letters, letter)
	}
	return letters
}

// Answer text patterns for fill-in-the-blank and simulation questions,
// from most to least specific: stop at the next section, at a blank
// line, at a newline, then take the rest.
var answerTextRes = []*regexp.Regexp{
	regexp.MustCompile(`(?is)Answer:\s*(.+?)(?:\n\s*(?:QUESTION|Explanation|References)|$)`),
	regexp.MustCompile(`(?is)Answer:\s*(.+?)(?:\n\n|$)`),
	regexp.MustCompile(`(?is)Answer:\s*(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?is)Answer:\s*(.+)`),
}

func extractAnswerText(text string) string {
	for _, re := range answerTextRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		answer := strings.TrimSpace(whitespaceRe.ReplaceAllString(m[1], " "))
		if answer != "" {
			return answer
		}
	}
	return ""
}

// buildFillInTheBlank emits one answer choice per comma-separated
// blank value.
func (b *Builder) buildFillInTheBlank(q *exam.Question, node *xmlout.Question) {
	answerText := extractAnswerText(q.Text)
	if answerText == "" {
		return
	}

	var values []string
	for _, part := range strings.Split(answerText, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) > 0 {
		node.Answer = &xmlout.Answer{Choices: values}
	}
}

// buildSimulation carries the whole answer as plain text since there
// are no lettered options.
func (b *Builder) buildSimulation(q *exam.Question, node *xmlout.Question) {
	if answer := extractAnswerText(q.Text); answer != "" {
		node.Answer = &xmlout.Answer{Text: answer}
	}
}
