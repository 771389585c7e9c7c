package exam

import "strings"

// Marker vocabulary. Markers are fixed sentinel substrings matched
// case-sensitively against raw paragraph text.
const (
	MarkerQuestionStart         = "QUESTION NO:"
	MarkerTopicName             = "TopicName:"
	MarkerCaseStudyStart        = "CaseStudyStart:"
	MarkerCaseStudyEnd          = "CaseStudyEnd:"
	MarkerCaseStudyDetailsStart = "CaseStudyDetailsStart:"
	MarkerCaseStudyDetailsEnd   = "CaseStudyDetailsEnd:"
	MarkerSegment               = "Segment:"
	MarkerTitle                 = "Title:"
	MarkerCaseStudyImage        = "CaseStudyImage:"
	MarkerCaseStudyHeading      = "CaseStudyHeading:"
	MarkerDescriptionImage      = "QuestionDescriptionImage:"
	MarkerQuestionOptionImage   = "QuestionOptionImage:"
	MarkerAnswerOptionImage     = "AnswerOptionImage:"
	MarkerJustDropDown          = "JustDropDown:"
	MarkerPositionedImage       = "PositionedImage:"
	MarkerBackgroundImage       = "BackgroundImage:"
	MarkerAnswer                = "Answer:"
	MarkerExplanation           = "Explanation:"
	MarkerReferences            = "References:"
)

func containsMarker(text, marker string) bool {
	return strings.Contains(text, marker)
}

// MarkerArg returns the trimmed text after the first occurrence of marker,
// with surrounding double quotes removed. Empty if the marker is absent.
func MarkerArg(text, marker string) string {
	_, after, found := strings.Cut(text, marker)
	if !found {
		return ""
	}
	arg := strings.TrimSpace(after)
	if len(arg) >= 2 && strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
		arg = strings.TrimSpace(arg[1 : len(arg)-1])
	}
	return arg
}
