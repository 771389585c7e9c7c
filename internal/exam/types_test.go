package exam

import "testing"

func TestQuestionNumber(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"QUESTION NO: 12 HOTSPOT", "12"},
		{"QUESTION NO:7", "7"},
		{"question no: 3", "3"},
		{"no marker here", ""},
	}
	for _, tt := range tests {
		if got := QuestionNumber(tt.text); got != tt.want {
			t.Errorf("QuestionNumber(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want QuestionType
	}{
		{"declared hotspot", "QUESTION NO: 1 HOTSPOT\nSome text", TypeHotspot},
		{"declared dragdrop", "QUESTION NO: 2 DRAGDROP", TypeDragDrop},
		{"declared radiobutton maps to single", "QUESTION NO: 3 RADIOBUTTON", TypeSingleChoice},
		{"declared beats cues", "QUESTION NO: 4 DRAGDROP\nSelect Yes if the statement is true.", TypeDragDrop},
		{"positioned dragdrop", "QUESTION NO: 5\nPOSITIONEDDRAGDROP content", TypePositionedDragDrop},
		{"positioned dropdown", "QUESTION NO: 6\nPositioned Dropdown follows", TypePositionedDropdown},
		{"blank run", "QUESTION NO: 7\nThe ____ protocol is used.", TypeFillInTheBlank},
		{"simulation word boundary", "QUESTION NO: 8\nSIMULATION\nConfigure it.", TypeSimulation},
		{"hotspot cue", "QUESTION NO: 9\nFor each statement, select Yes if true. Otherwise select No. if unsure skip", TypeHotspot},
		{"dragdrop cue", "QUESTION NO: 10\nDrag the values and drop them in place.", TypeDragDrop},
		{"dropdown cue", "QUESTION NO: 11\nChoose the option that correctly completes the sentence.", TypeDropdown},
		{"single answer", "QUESTION NO: 12\nWhat?\nA. One\nB. Two\nAnswer: B", TypeSingleChoice},
		{"multi answer promotes", "QUESTION NO: 13\nWhat?\nA. One\nB. Two\nC. Three\nAnswer: A, C", TypeMultipleChoice},
		{"default", "QUESTION NO: 14\nFree text only.", TypeSingleChoice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferType(tt.text); got != tt.want {
				t.Errorf("InferType = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestXMLKind(t *testing.T) {
	tests := []struct {
		t    QuestionType
		want string
	}{
		{TypeHotspot, "Hotspot"},
		{TypeDragDrop, "DragDrop"},
		{TypeDropdown, "DropDown"},
		{TypeSingleChoice, "SingleChoice"},
		{TypeMultipleChoice, "MultipleChoice"},
		{TypeFillInTheBlank, "FillInTheBlank"},
		{TypeSimulation, "Simulation"},
		{TypePositionedDropdown, "PositionedDropDown"},
		{TypePositionedDragDrop, "PositionedDragDrop"},
	}
	for _, tt := range tests {
		if got := tt.t.XMLKind(); got != tt.want {
			t.Errorf("%s.XMLKind() = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestMarkerArg(t *testing.T) {
	tests := []struct {
		text   string
		marker string
		want   string
	}{
		{`TopicName: "Contoso Ltd"`, MarkerTopicName, "Contoso Ltd"},
		{"Segment: Overview", MarkerSegment, "Overview"},
		{"Title:   Background  ", MarkerTitle, "Background"},
		{"no marker", MarkerTitle, ""},
	}
	for _, tt := range tests {
		if got := MarkerArg(tt.text, tt.marker); got != tt.want {
			t.Errorf("MarkerArg(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestQuestionAppend(t *testing.T) {
	q := &Question{Number: "1", Type: TypeSingleChoice}
	q.Append(ContentUnit{Kind: UnitText, Text: "first"})
	q.Append(ContentUnit{
		Kind:   UnitImage,
		Images: []Image{{Path: "Pictures/1.png"}},
	})

	if len(q.Units) != 2 || len(q.Images) != 1 {
		t.Errorf("units = %d, images = %d", len(q.Units), len(q.Images))
	}
	if q.Text != "\nfirst\n" {
		t.Errorf("text = %q", q.Text)
	}
}

func TestCaseStudyAddQuestionDedupes(t *testing.T) {
	cs := &CaseStudy{}
	cs.AddQuestion(&Question{Number: "1"})
	cs.AddQuestion(&Question{Number: "2"})
	cs.AddQuestion(&Question{Number: "1"})

	if len(cs.Questions) != 2 {
		t.Errorf("questions = %d, want 2", len(cs.Questions))
	}
}
