package vision

import (
	"reflect"
	"testing"
)

func TestStripCodeBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"fenced", "```\n[1,2]\n```", "[1,2]"},
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced xml", "```xml\n<a/>\n```", "<a/>"},
		{"whitespace", "  hello  ", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeBlock(tt.input); got != tt.want {
				t.Errorf("stripCodeBlock(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSliceJSONArray(t *testing.T) {
	got := sliceJSONArray(`Here is the data: [1, 2, 3] hope it helps`)
	if got != "[1, 2, 3]" {
		t.Errorf("sliceJSONArray = %q", got)
	}
	if got := sliceJSONArray("no array here"); got != "no array here" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestDecodeOrderedPairs(t *testing.T) {
	raw := `[{"Service":"S3","Feature":"Object storage","Count":2},{"Service":"EC2","Feature":"Compute"}]`
	pairs, err := decodeOrderedPairs(raw)
	if err != nil {
		t.Fatalf("decodeOrderedPairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}

	want := []Field{
		{Name: "Service", Value: "S3"},
		{Name: "Feature", Value: "Object storage"},
		{Name: "Count", Value: "2"},
	}
	if !reflect.DeepEqual(pairs[0].Fields, want) {
		t.Errorf("first pair fields = %+v, want %+v", pairs[0].Fields, want)
	}
	if pairs[1].Fields[0].Name != "Service" || pairs[1].Fields[0].Value != "EC2" {
		t.Errorf("second pair = %+v", pairs[1].Fields)
	}
}

func TestDecodeOrderedPairsRejectsNonArray(t *testing.T) {
	if _, err := decodeOrderedPairs(`{"a":1}`); err == nil {
		t.Fatal("expected error for non-array input")
	}
}

func TestParsePositionedDropdowns(t *testing.T) {
	reply := "Here are the dropdowns:\n" +
		`<QuestionOptions>
    <OptionSet index="1">
        <id>1</id>
        <x>412</x>
        <y>74</y>
        <width>185</width>
        <height>120</height>
        <Options>
            <Option>VIEW</Option>
            <Option selected="true">FUNCTION</Option>
            <Option>view</Option>
        </Options>
    </OptionSet>
</QuestionOptions>`

	dropdowns := parsePositionedDropdowns(reply)
	if len(dropdowns) != 1 {
		t.Fatalf("expected 1 dropdown, got %d", len(dropdowns))
	}

	d := dropdowns[0]
	if d.Index != "1" || d.ID != 1 || d.X != 412 || d.Y != 74 || d.Width != 185 || d.Height != 120 {
		t.Errorf("unexpected geometry: %+v", d)
	}
	if !reflect.DeepEqual(d.Options, []string{"VIEW", "FUNCTION"}) {
		t.Errorf("options = %v", d.Options)
	}
	if !reflect.DeepEqual(d.Selected, []string{"FUNCTION"}) {
		t.Errorf("selected = %v", d.Selected)
	}
}

func TestParsePositionedDropdownsManualFallback(t *testing.T) {
	// Missing </Options> makes the XML malformed.
	reply := `<QuestionOptions><OptionSet index="2"><id>3</id><x>10</x><y>20</y>` +
		`<width>100</width><height>50</height><Options><Option>A</Option>` +
		`<Option selected="true">B</Option></OptionSet></QuestionOptions>`

	dropdowns := parsePositionedDropdowns(reply)
	if len(dropdowns) != 1 {
		t.Fatalf("expected 1 dropdown from fallback, got %d", len(dropdowns))
	}
	d := dropdowns[0]
	if d.Index != "2" || d.ID != 3 || d.X != 10 {
		t.Errorf("unexpected dropdown: %+v", d)
	}
	if !reflect.DeepEqual(d.Options, []string{"A", "B"}) {
		t.Errorf("options = %v", d.Options)
	}
	if !reflect.DeepEqual(d.Selected, []string{"B"}) {
		t.Errorf("selected = %v", d.Selected)
	}
}

func TestParsePositionedDropdownsIncomplete(t *testing.T) {
	// No coordinates at all, so nothing usable comes back.
	reply := `<QuestionOptions><OptionSet index="1"><Options><Option>A</Option></Options></OptionSet></QuestionOptions>`
	if dropdowns := parsePositionedDropdowns(reply); len(dropdowns) != 0 {
		t.Errorf("expected no dropdowns, got %+v", dropdowns)
	}
}

func TestParseBoxes(t *testing.T) {
	reply := "```xml\n<CoordinatesData>\n<Box index=\"1\">\n<id>1</id>\n<x>514</x>\n<y>42</y>\n" +
		"<width>100</width>\n<height>25</height>\n</Box>\n<Box index=\"2\">\n<id>2</id>\n<x>514</x>\n" +
		"<y>130</y>\n<width>100</width>\n<height>25</height>\n</Box>\n</CoordinatesData>\n```"

	boxes, err := parseBoxes(reply)
	if err != nil {
		t.Fatalf("parseBoxes: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	want := Box{Index: "2", ID: 2, X: 514, Y: 130, Width: 100, Height: 25}
	if boxes[1] != want {
		t.Errorf("box[1] = %+v, want %+v", boxes[1], want)
	}
}

func TestParsePositionedData(t *testing.T) {
	reply := `<PositionedData>
<Column heading="Values">
<Item>DEFINE</Item>
<Item>EVALUATE</Item>
</Column>
<AnswerPairs>
<Pair>
<Column name="Box 1" index="1" id="1">DEFINE</Column>
</Pair>
<Pair>
<Column name="Box 2" index="2" id="2">EVALUATE</Column>
</Pair>
</AnswerPairs>
</PositionedData>`

	columns, pairs, err := parsePositionedData(reply)
	if err != nil {
		t.Fatalf("parsePositionedData: %v", err)
	}
	if len(columns) != 1 || columns[0].Heading != "Values" {
		t.Fatalf("columns = %+v", columns)
	}
	if !reflect.DeepEqual(columns[0].Items, []string{"DEFINE", "EVALUATE"}) {
		t.Errorf("items = %v", columns[0].Items)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	want := PositionedPair{Name: "Box 2", Index: "2", ID: "2", Text: "EVALUATE"}
	if pairs[1] != want {
		t.Errorf("pairs[1] = %+v, want %+v", pairs[1], want)
	}
}

func TestCleanXMLReplyEscapesAmpersands(t *testing.T) {
	reply := `<CoordinatesData><Box index="A & B"><id>1</id><x>1</x><y>2</y><width>3</width><height>4</height></Box></CoordinatesData>`
	boxes, err := parseBoxes(reply)
	if err != nil {
		t.Fatalf("parseBoxes: %v", err)
	}
	if len(boxes) != 1 || boxes[0].Index != "A & B" {
		t.Errorf("boxes = %+v", boxes)
	}
}

func TestAnswersFromColonLines(t *testing.T) {
	text := "\"server_name\" : contoso\nport: 8080\nno separator line\n: empty header\n"
	answers := answersFromColonLines(text)
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d: %+v", len(answers), answers)
	}
	if answers[0].StatementHeader != "server_name" || answers[0].Answer != "contoso" {
		t.Errorf("answers[0] = %+v", answers[0])
	}
	if answers[0].Statement != `"server_name" :` {
		t.Errorf("statement = %q", answers[0].Statement)
	}
	if answers[1].StatementHeader != "port" || answers[1].Answer != "8080" {
		t.Errorf("answers[1] = %+v", answers[1])
	}
}

func TestDedupeOptions(t *testing.T) {
	got := dedupeOptions([]string{"View", "VIEW", " view ", "Table"})
	if !reflect.DeepEqual(got, []string{"View", "Table"}) {
		t.Errorf("dedupeOptions = %v", got)
	}
}
