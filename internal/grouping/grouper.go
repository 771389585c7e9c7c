package grouping

import (
	"regexp"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
)

// Result is the grouped output of one pass over the content stream.
type Result struct {
	Standalone  []*exam.Question
	CaseStudies []*exam.CaseStudy
}

var topicCaseRe = regexp.MustCompile(`Topic\s+(\d+),\s+Case\s+Study\s+(\d+)`)

// grouperState carries everything the state machine tracks between units.
// It is local to one Group call; nothing survives across invocations.
type grouperState struct {
	topicNumber string
	caseNumber  string
	topicName   string

	caseStudy      *exam.CaseStudy
	segmentName    string
	segmentEntries []exam.SegmentEntry
	inDetails      bool
	nextImageIsCS  bool

	question *exam.Question

	standalone  []*exam.Question
	caseStudies []*exam.CaseStudy
}

// Group consumes the ordered content sequence and produces standalone
// questions plus case studies with their nested questions and segments.
// Transitions are evaluated in a fixed priority order against each text
// unit; the first match wins.
func Group(units []exam.ContentUnit) Result {
	s := &grouperState{}
	for _, u := range units {
		s.processUnit(u)
	}
	s.finish()
	return Result{Standalone: s.standalone, CaseStudies: s.caseStudies}
}

func (s *grouperState) processUnit(u exam.ContentUnit) {
	if s.handleCaseStudyMarkers(u) {
		return
	}
	if u.HasMarker(exam.MarkerQuestionStart) {
		s.finalizeQuestion()
		s.question = &exam.Question{
			Number: exam.QuestionNumber(u.Text),
			Type:   exam.InferType(u.Text),
			Units:  []exam.ContentUnit{u},
			Text:   u.Text,
			Images: append([]exam.Image(nil), u.Images...),
		}
		return
	}
	if s.handleCaseStudyContent(u) {
		return
	}
	if s.question != nil {
		s.question.Append(u)
	}
}

func (s *grouperState) handleCaseStudyMarkers(u exam.ContentUnit) bool {
	text := u.Text

	if m := topicCaseRe.FindStringSubmatch(text); m != nil {
		s.topicNumber = m[1]
		s.caseNumber = m[2]
		return true
	}
	if u.HasMarker(exam.MarkerTopicName) {
		s.topicName = exam.MarkerArg(text, exam.MarkerTopicName)
		return true
	}
	if u.HasMarker(exam.MarkerCaseStudyStart) {
		// A second start before an end implicitly closes the previous
		// case study rather than discarding it. The identity lines for
		// the new one have already been consumed, so hold onto them
		// across the close (which resets them).
		topicNumber, caseNumber, topicName := s.topicNumber, s.caseNumber, s.topicName
		if s.caseStudy != nil {
			s.finalizeCaseStudy()
		}
		s.caseStudy = &exam.CaseStudy{
			TopicNumber: topicNumber,
			Number:      caseNumber,
			TopicName:   topicName,
		}
		return true
	}
	if u.HasMarker(exam.MarkerCaseStudyEnd) {
		s.finalizeCaseStudy()
		return true
	}
	if u.HasMarker(exam.MarkerCaseStudyDetailsStart) {
		s.inDetails = true
		return true
	}
	if u.HasMarker(exam.MarkerCaseStudyDetailsEnd) {
		s.inDetails = false
		s.nextImageIsCS = false
		return true
	}
	if s.inDetails && s.caseStudy != nil && u.HasMarker(exam.MarkerSegment) {
		s.finalizeSegment()
		s.segmentName = exam.MarkerArg(text, exam.MarkerSegment)
		return true
	}
	if s.inDetails && s.caseStudy != nil && s.segmentName != "" && u.HasMarker(exam.MarkerTitle) {
		s.segmentEntries = append(s.segmentEntries, exam.SegmentEntry{
			Kind: exam.EntryTitle,
			Text: exam.MarkerArg(text, exam.MarkerTitle),
		})
		return true
	}
	if u.HasMarker(exam.MarkerCaseStudyImage) {
		s.nextImageIsCS = true
		return true
	}
	return false
}

func (s *grouperState) handleCaseStudyContent(u exam.ContentUnit) bool {
	if s.nextImageIsCS && len(u.Images) > 0 && s.caseStudy != nil {
		s.caseStudy.Images = append(s.caseStudy.Images, u.Images...)
		if s.inDetails && s.segmentName != "" {
			for i := range u.Images {
				img := u.Images[i]
				s.segmentEntries = append(s.segmentEntries, exam.SegmentEntry{
					Kind:  exam.EntryImage,
					Image: &img,
				})
			}
		}
		s.nextImageIsCS = false
		return true
	}

	if s.inDetails && s.caseStudy != nil {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			return s.segmentName != ""
		}
		if s.segmentName == "" {
			// Detail text before any heading opens the default segment.
			s.segmentName = "Introduction"
		}
		s.segmentEntries = append(s.segmentEntries, exam.SegmentEntry{
			Kind: exam.EntryText,
			Text: ConvertHeadings(text),
		})
		return true
	}
	return false
}

func (s *grouperState) finalizeQuestion() {
	if s.question == nil {
		return
	}
	// Re-run inference over the full concatenated text: cues like lettered
	// options or an answer line may only appear in later units.
	s.question.Type = exam.InferType(s.question.Text)
	if s.caseStudy != nil {
		s.caseStudy.AddQuestion(s.question)
	} else {
		s.standalone = append(s.standalone, s.question)
	}
	s.question = nil
}

func (s *grouperState) finalizeSegment() {
	if s.segmentName != "" && len(s.segmentEntries) > 0 && s.caseStudy != nil {
		s.caseStudy.Segments = append(s.caseStudy.Segments, exam.Segment{
			Name:    s.segmentName,
			Entries: s.segmentEntries,
		})
	}
	s.segmentEntries = nil
}

// finalizeCaseStudy closes the open case study: the open question is
// appended to it (deduplicated by number), the open segment is finalized,
// and all case-study-scoped state is reset. Without an open case study
// this is a no-op apart from the reset.
func (s *grouperState) finalizeCaseStudy() {
	if s.caseStudy != nil {
		s.finalizeQuestion()
		s.finalizeSegment()
		s.caseStudies = append(s.caseStudies, s.caseStudy)
	}
	s.topicNumber = ""
	s.caseNumber = ""
	s.topicName = ""
	s.caseStudy = nil
	s.segmentName = ""
	s.segmentEntries = nil
	s.inDetails = false
	s.nextImageIsCS = false
}

func (s *grouperState) finish() {
	s.finalizeQuestion()
	if s.caseStudy != nil {
		s.finalizeSegment()
		s.caseStudies = append(s.caseStudies, s.caseStudy)
		s.caseStudy = nil
	}
}

// ConvertHeadings rewrites "CaseStudyHeading:" convenience markers into
// embedded <CaseStudyHeading> tags. The assembler's post-pass restores the
// tags after XML escaping so they survive serialization as markup.
func ConvertHeadings(text string) string {
	if !strings.Contains(text, exam.MarkerCaseStudyHeading) {
		return text
	}
	parts := strings.Split(text, exam.MarkerCaseStudyHeading)
	var sb strings.Builder
	sb.WriteString(parts[0])
	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		title, rest, _ := strings.Cut(part, "\n")
		sb.WriteString("<CaseStudyHeading>" + strings.TrimSpace(title) + "</CaseStudyHeading>\n")
		if rest != "" {
			sb.WriteString(rest + "\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
