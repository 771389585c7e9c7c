// Package validate checks grouped questions for the image markers their
// type requires, before any build work starts.
package validate

import (
	"fmt"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// requiredMarkers maps a question type to the image markers a well-formed
// question of that type must carry. Types absent from the table have no
// image requirement.
var requiredMarkers = map[exam.QuestionType][]string{
	exam.TypeHotspot:            {exam.MarkerQuestionOptionImage, exam.MarkerAnswerOptionImage},
	exam.TypeDragDrop:           {exam.MarkerQuestionOptionImage, exam.MarkerAnswerOptionImage},
	exam.TypeDropdown:           {exam.MarkerQuestionOptionImage, exam.MarkerAnswerOptionImage},
	exam.TypePositionedDropdown: {exam.MarkerBackgroundImage, exam.MarkerPositionedImage},
	exam.TypePositionedDragDrop: {exam.MarkerBackgroundImage, exam.MarkerPositionedImage},
}

// Questions checks each question against the required-marker table for its
// type. All violations are collected before reporting; nothing is mutated.
func Questions(questions []*exam.Question) (bool, []string) {
	var violations []string
	for _, q := range questions {
		for _, marker := range requiredMarkers[q.Type] {
			if !hasMarker(q, marker) {
				violations = append(violations, fmt.Sprintf(
					"Question %s (%s) - Missing %s", q.Number, q.Type, trimColon(marker)))
			}
		}
	}
	return len(violations) == 0, violations
}

// CaseStudies validates every case study's nested questions, prefixing
// violations with the case study's topic-case identity.
func CaseStudies(caseStudies []*exam.CaseStudy) (bool, []string) {
	var violations []string
	for _, cs := range caseStudies {
		ok, errs := Questions(cs.Questions)
		if ok {
			continue
		}
		violations = append(violations, fmt.Sprintf(
			"Case Study %s-%s contains invalid questions:", cs.TopicNumber, cs.Number))
		for _, e := range errs {
			violations = append(violations, "  "+e)
		}
	}
	return len(violations) == 0, violations
}

// hasMarker looks for the marker in the question's individual units as well
// as its concatenated text.
func hasMarker(q *exam.Question, marker string) bool {
	for _, u := range q.Units {
		if u.HasMarker(marker) {
			return true
		}
	}
	return strings.Contains(q.Text, marker)
}

func trimColon(marker string) string {
	if len(marker) > 0 && marker[len(marker)-1] == ':' {
		return marker[:len(marker)-1]
	}
	return marker
}
