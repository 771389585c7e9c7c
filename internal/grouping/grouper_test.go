package grouping

import (
	"strings"
	"testing"

	"github.com/FaisalAwa/examforge/internal/exam"
)

func text(s string) exam.ContentUnit {
	return exam.ContentUnit{Kind: exam.UnitText, Text: s}
}

func image(path string) exam.ContentUnit {
	return exam.ContentUnit{
		Kind:   exam.UnitImage,
		Images: []exam.Image{{Path: path, Data: []byte{1}}},
	}
}

func TestClassifyImagesStickyRole(t *testing.T) {
	units := []exam.ContentUnit{
		text("QUESTION NO: 1 HOTSPOT"),
		image("Pictures/before.png"),
		text("QuestionOptionImage:"),
		image("Pictures/q1.png"),
		image("Pictures/q2.png"),
		text("AnswerOptionImage:"),
		image("Pictures/a1.png"),
	}

	roles := ClassifyImages(units)

	if roles.For("Pictures/before.png") != exam.RoleDescription {
		t.Errorf("pre-marker image role = %s", roles.For("Pictures/before.png"))
	}
	// The role persists until the next marker.
	if roles.For("Pictures/q1.png") != exam.RoleQuestion || roles.For("Pictures/q2.png") != exam.RoleQuestion {
		t.Errorf("question roles = %s, %s", roles.For("Pictures/q1.png"), roles.For("Pictures/q2.png"))
	}
	if roles.For("Pictures/a1.png") != exam.RoleAnswer {
		t.Errorf("answer role = %s", roles.For("Pictures/a1.png"))
	}
}

func TestClassifyImagesAllMarkers(t *testing.T) {
	tests := []struct {
		marker string
		want   exam.Role
	}{
		{exam.MarkerQuestionOptionImage, exam.RoleQuestion},
		{exam.MarkerAnswerOptionImage, exam.RoleAnswer},
		{exam.MarkerDescriptionImage, exam.RoleDescription},
		{exam.MarkerJustDropDown, exam.RoleJustDropdown},
		{exam.MarkerPositionedImage, exam.RolePositioned},
		{exam.MarkerBackgroundImage, exam.RoleBackground},
	}
	for _, tt := range tests {
		roles := ClassifyImages([]exam.ContentUnit{text(tt.marker), image("p.png")})
		if got := roles.For("p.png"); got != tt.want {
			t.Errorf("%s -> %s, want %s", tt.marker, got, tt.want)
		}
	}
}

func TestGroupStandaloneQuestions(t *testing.T) {
	units := []exam.ContentUnit{
		text("QUESTION NO: 1\nWhat is this?"),
		text("A. One"),
		text("Answer: A"),
		text("QUESTION NO: 2 DRAGDROP"),
		text("QuestionOptionImage:"),
		image("Pictures/q.png"),
	}

	got := Group(units)

	if len(got.CaseStudies) != 0 {
		t.Fatalf("case studies = %d", len(got.CaseStudies))
	}
	if len(got.Standalone) != 2 {
		t.Fatalf("standalone = %d", len(got.Standalone))
	}

	q1 := got.Standalone[0]
	if q1.Number != "1" || q1.Type != exam.TypeSingleChoice {
		t.Errorf("q1 = %s/%s", q1.Number, q1.Type)
	}
	if !strings.Contains(q1.Text, "Answer: A") {
		t.Errorf("q1 text = %q", q1.Text)
	}

	q2 := got.Standalone[1]
	if q2.Number != "2" || q2.Type != exam.TypeDragDrop {
		t.Errorf("q2 = %s/%s", q2.Number, q2.Type)
	}
	if len(q2.Images) != 1 {
		t.Errorf("q2 images = %d", len(q2.Images))
	}
}

func TestGroupTypeReinferredFromFullText(t *testing.T) {
	// The first unit alone gives no cue; the answer line arrives later.
	units := []exam.ContentUnit{
		text("QUESTION NO: 1\nPick all that apply."),
		text("A. One\nB. Two\nC. Three"),
		text("Answer: A, C"),
	}

	got := Group(units)
	if len(got.Standalone) != 1 {
		t.Fatal("expected one question")
	}
	if got.Standalone[0].Type != exam.TypeMultipleChoice {
		t.Errorf("type = %s, want MultipleChoice", got.Standalone[0].Type)
	}
}

func TestGroupCaseStudy(t *testing.T) {
	units := []exam.ContentUnit{
		text("Topic 2, Case Study 1"),
		text(`TopicName: "Contoso Ltd"`),
		text("CaseStudyStart:"),
		text("CaseStudyDetailsStart:"),
		text("Segment: Overview"),
		text("Title: Background"),
		text("Contoso runs a fleet of services."),
		text("CaseStudyImage:"),
		image("Pictures/cs.png"),
		text("CaseStudyDetailsEnd:"),
		text("QUESTION NO: 5\nWhat should you do?\nA. This\nB. That\nAnswer: B"),
		text("CaseStudyEnd:"),
		text("QUESTION NO: 6\nStandalone after the case study.\nA. X\nB. Y\nAnswer: A"),
	}

	got := Group(units)

	if len(got.CaseStudies) != 1 {
		t.Fatalf("case studies = %d", len(got.CaseStudies))
	}
	cs := got.CaseStudies[0]
	if cs.TopicNumber != "2" || cs.Number != "1" || cs.TopicName != "Contoso Ltd" {
		t.Errorf("case study identity = %s/%s/%s", cs.TopicNumber, cs.Number, cs.TopicName)
	}
	if len(cs.Questions) != 1 || cs.Questions[0].Number != "5" {
		t.Fatalf("case study questions = %+v", cs.Questions)
	}
	if len(cs.Segments) != 1 || cs.Segments[0].Name != "Overview" {
		t.Fatalf("segments = %+v", cs.Segments)
	}

	entries := cs.Segments[0].Entries
	if len(entries) != 3 {
		t.Fatalf("entries = %+v", entries)
	}
	if entries[0].Kind != exam.EntryTitle || entries[0].Text != "Background" {
		t.Errorf("title entry = %+v", entries[0])
	}
	if entries[1].Kind != exam.EntryText {
		t.Errorf("text entry = %+v", entries[1])
	}
	if entries[2].Kind != exam.EntryImage || entries[2].Image == nil {
		t.Errorf("image entry = %+v", entries[2])
	}

	if len(got.Standalone) != 1 || got.Standalone[0].Number != "6" {
		t.Errorf("standalone = %+v", got.Standalone)
	}
}

func TestGroupImplicitCaseStudyClose(t *testing.T) {
	units := []exam.ContentUnit{
		text("Topic 1, Case Study 1"),
		text("CaseStudyStart:"),
		text("QUESTION NO: 1\nFirst"),
		text("Topic 1, Case Study 2"),
		text("CaseStudyStart:"),
		text("QUESTION NO: 2\nSecond"),
		text("CaseStudyEnd:"),
	}

	got := Group(units)
	if len(got.CaseStudies) != 2 {
		t.Fatalf("case studies = %d", len(got.CaseStudies))
	}
	if len(got.CaseStudies[0].Questions) != 1 || got.CaseStudies[0].Questions[0].Number != "1" {
		t.Errorf("first case study questions = %+v", got.CaseStudies[0].Questions)
	}
	if got.CaseStudies[1].Number != "2" {
		t.Errorf("second case study number = %s", got.CaseStudies[1].Number)
	}
}

func TestGroupCaseStudyEndWithoutStart(t *testing.T) {
	units := []exam.ContentUnit{
		text("QUESTION NO: 1\nBefore the stray end\nAnswer: A"),
		text("CaseStudyEnd:"),
		text("QUESTION NO: 2\nAfter the stray end\nAnswer: B"),
	}

	got := Group(units)

	if len(got.CaseStudies) != 0 {
		t.Fatalf("case studies = %d", len(got.CaseStudies))
	}
	if len(got.Standalone) != 2 {
		t.Fatalf("standalone = %d", len(got.Standalone))
	}
	if got.Standalone[0].Number != "1" || got.Standalone[1].Number != "2" {
		t.Errorf("question numbers = %s, %s", got.Standalone[0].Number, got.Standalone[1].Number)
	}
}

func TestGroupDefaultSegmentName(t *testing.T) {
	units := []exam.ContentUnit{
		text("Topic 1, Case Study 1"),
		text("CaseStudyStart:"),
		text("CaseStudyDetailsStart:"),
		text("Detail text before any segment heading."),
		text("CaseStudyDetailsEnd:"),
		text("CaseStudyEnd:"),
	}
	got := Group(units)
	if len(got.CaseStudies) != 1 {
		t.Fatalf("case studies = %d", len(got.CaseStudies))
	}
	segs := got.CaseStudies[0].Segments
	if len(segs) != 1 || segs[0].Name != "Introduction" {
		t.Errorf("segments = %+v", segs)
	}
}

func TestGroupOpenQuestionAtEOF(t *testing.T) {
	units := []exam.ContentUnit{
		text("QUESTION NO: 9\nTrailing question"),
	}
	got := Group(units)
	if len(got.Standalone) != 1 || got.Standalone[0].Number != "9" {
		t.Errorf("standalone = %+v", got.Standalone)
	}
}

func TestConvertHeadings(t *testing.T) {
	in := "Intro line\nCaseStudyHeading: Existing Environment\nDetails follow here"
	got := ConvertHeadings(in)
	if !strings.Contains(got, "<CaseStudyHeading>Existing Environment</CaseStudyHeading>") {
		t.Errorf("got %q", got)
	}
	if !strings.Contains(got, "Details follow here") {
		t.Errorf("lost trailing text: %q", got)
	}

	plain := "no headings here"
	if ConvertHeadings(plain) != plain {
		t.Error("text without marker should pass through unchanged")
	}
}
