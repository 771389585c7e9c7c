package exam

import (
	"regexp"
	"strings"
)

// QuestionType is the closed set of supported question kinds.
type QuestionType string

const (
	TypeHotspot            QuestionType = "HOTSPOT"
	TypeDragDrop           QuestionType = "DRAGDROP"
	TypeDropdown           QuestionType = "DROPDOWN"
	TypeSingleChoice       QuestionType = "SingleChoice"
	TypeMultipleChoice     QuestionType = "MultipleChoice"
	TypeFillInTheBlank     QuestionType = "FILLINTHEBLANK"
	TypeSimulation         QuestionType = "SIMULATION"
	TypePositionedDropdown QuestionType = "POSITIONEDDROPDOWN"
	TypePositionedDragDrop QuestionType = "POSITIONEDDRAGDROP"
)

// XMLKind returns the kind tag used in the output document.
func (t QuestionType) XMLKind() string {
	switch t {
	case TypeHotspot:
		return "Hotspot"
	case TypeDragDrop:
		return "DragDrop"
	case TypeDropdown:
		return "DropDown"
	case TypeFillInTheBlank:
		return "FillInTheBlank"
	case TypeSimulation:
		return "Simulation"
	case TypePositionedDropdown:
		return "PositionedDropDown"
	case TypePositionedDragDrop:
		return "PositionedDragDrop"
	default:
		return string(t)
	}
}

var questionNumberRe = regexp.MustCompile(`(?i)QUESTION NO:\s*(\d+)`)

// QuestionNumber extracts the question number following the question-start
// marker. Empty if absent.
func QuestionNumber(text string) string {
	if m := questionNumberRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

var (
	declaredTypeRe       = regexp.MustCompile(`(?i)QUESTION NO:\s*\d+\s*(\w+)`)
	positionedDragDropRe = regexp.MustCompile(`(?i)POSITIONEDDRAGDROP|Positioned DragDrop`)
	positionedDropdownRe = regexp.MustCompile(`(?i)POSITIONEDDROPDOWN|Positioned Dropdown`)
	fillInTheBlankRe     = regexp.MustCompile(`(?i)FillInTheBlank|Fill In The Blank|_{3,}`)
	simulationRe         = regexp.MustCompile(`(?i)\bSIMULATION\b`)
	hotspotCueRe         = regexp.MustCompile(`(?i)\bhot\s*spot\b|\bselect\b.*\byes\b.*\bif\b|\bselect\b.*\bstatement\b.*\btrue\b`)
	dragDropCueRe        = regexp.MustCompile(`(?i)\bdrag\b.*\bdrop\b|\bmatch\b.*\bitem\b|\bdrag\b.*\bappropriate\b|\bcorrect\b\s+\bmatch\b`)
	dropdownCueRe        = regexp.MustCompile(`(?i)\bdrop\s*down\b|\bselect\b.*\bfrom\b.*\bmenu\b|\bcorrectly completes the sentence\b|\bselect the appropriate options? in the answer area\b`)
	optionLineRe         = regexp.MustCompile(`(?m)^[A-Z]\.\s+`)
	answerLettersRe      = regexp.MustCompile(`Answer:\s*([A-Z](?:,\s*[A-Z])*)`)
)

var declaredTypes = map[string]QuestionType{
	"HOTSPOT":            TypeHotspot,
	"DRAGDROP":           TypeDragDrop,
	"DROPDOWN":           TypeDropdown,
	"RADIOBUTTON":        TypeSingleChoice,
	"SINGLECHOICE":       TypeSingleChoice,
	"MULTIPLECHOICE":     TypeMultipleChoice,
	"FILLINTHEBLANK":     TypeFillInTheBlank,
	"SIMULATION":         TypeSimulation,
	"POSITIONEDDROPDOWN": TypePositionedDropdown,
	"POSITIONEDDRAGDROP": TypePositionedDragDrop,
}

// InferType determines a question's type from its full concatenated text.
// The battery is ordered: an explicit keyword after the question number
// takes precedence, then positioned-variant patterns, then blank and
// simulation markers, then lexical cues, then lettered-option analysis.
// SingleChoice is the default, promoted to MultipleChoice when the answer
// line carries more than one letter.
func InferType(text string) QuestionType {
	if m := declaredTypeRe.FindStringSubmatch(text); m != nil {
		if t, ok := declaredTypes[strings.ToUpper(m[1])]; ok {
			return t
		}
	}
	if positionedDragDropRe.MatchString(text) {
		return TypePositionedDragDrop
	}
	if positionedDropdownRe.MatchString(text) {
		return TypePositionedDropdown
	}
	if fillInTheBlankRe.MatchString(text) {
		return TypeFillInTheBlank
	}
	if simulationRe.MatchString(text) {
		return TypeSimulation
	}
	if hotspotCueRe.MatchString(text) {
		return TypeHotspot
	}
	if dragDropCueRe.MatchString(text) {
		return TypeDragDrop
	}
	if dropdownCueRe.MatchString(text) {
		return TypeDropdown
	}
	if optionLineRe.MatchString(text) {
		if m := answerLettersRe.FindStringSubmatch(text); m != nil {
			if len(splitAnswerLetters(m[1])) > 1 {
				return TypeMultipleChoice
			}
			return TypeSingleChoice
		}
	}
	return TypeSingleChoice
}

func splitAnswerLetters(s string) []string {
	parts := strings.Split(s, ",")
	letters := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			letters = append(letters, p)
		}
	}
	return letters
}
