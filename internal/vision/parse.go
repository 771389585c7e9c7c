package vision

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// HotspotAnswer is one statement row with its selected Yes/No answer.
type HotspotAnswer struct {
	Statement string `json:"statement"`
	Answer    string `json:"answer"`
}

// Column is one labelled column of drag items.
type Column struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// Field is one named cell of a matched drag-and-drop row. Field order
// follows the order the model emitted, which mirrors the column order
// in the image.
type Field struct {
	Name  string
	Value string
}

// Pair is one matched row of a drag-and-drop answer image.
type Pair struct {
	Fields []Field
}

// DropdownRow is one statement row of a dropdown question image.
type DropdownRow struct {
	StatementHeader string   `json:"statement_header"`
	Statement       string   `json:"statement"`
	OptionsHeader   string   `json:"options_header"`
	Options         []string `json:"options"`
}

// DropdownAnswer is one resolved row of a dropdown answer image.
type DropdownAnswer struct {
	StatementHeader string `json:"statement_header"`
	Statement       string `json:"statement"`
	AnswerHeader    string `json:"answer_header"`
	Answer          string `json:"answer"`
}

// LabelOptions is one labelled standalone dropdown.
type LabelOptions struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Dropdown is one expanded dropdown region detected on a screenshot,
// with pixel coordinates and the visible options.
type Dropdown struct {
	Index    string
	ID       int
	X        int
	Y        int
	Width    int
	Height   int
	Options  []string
	Selected []string
}

// Box is one rectangular answer area detected on a background image.
type Box struct {
	Index  string
	ID     int
	X      int
	Y      int
	Width  int
	Height int
}

// PositionedPair is the text content of one answer box on a positioned
// image, identified by box name, index and id.
type PositionedPair struct {
	Name  string
	Index string
	ID    string
	Text  string
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json|xml)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// sliceJSONArray cuts the reply down to the outermost [...] so that
// surrounding prose does not break decoding.
func sliceJSONArray(s string) string {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start != -1 && end != -1 && end > start {
		return s[start : end+1]
	}
	return s
}

// decodeOrderedPairs decodes a JSON array of flat objects while
// preserving each object's key order. The column order of the source
// image survives only through key order, so a plain map will not do.
func decodeOrderedPairs(raw string) ([]Pair, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read array start: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("expected JSON array, got %v", tok)
	}

	var pairs []Pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read object start: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("expected JSON object, got %v", tok)
		}

		var p Pair
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read key: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected string key, got %v", keyTok)
			}
			var val any
			if err := dec.Decode(&val); err != nil {
				return nil, fmt.Errorf("read value for %q: %w", key, err)
			}
			p.Fields = append(p.Fields, Field{Name: key, Value: fieldString(val)})
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read object end: %w", err)
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

// answersFromColonLines recovers dropdown answers from raw recognized
// text by splitting "header: value" lines.
func answersFromColonLines(text string) []DropdownAnswer {
	var answers []DropdownAnswer
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		before, after, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		header := strings.Trim(strings.TrimSpace(before), `"'`)
		value := strings.TrimSpace(after)
		if header == "" || value == "" {
			continue
		}
		answers = append(answers, DropdownAnswer{
			StatementHeader: header,
			Statement:       `"` + header + `" :`,
			Answer:          value,
		})
	}
	return answers
}

// cleanXMLReply slices the reply down to the first <root ...> element
// and escapes stray ampersands so encoding/xml accepts it.
func cleanXMLReply(s, root string) string {
	s = stripCodeBlock(s)
	openTag := "<" + root
	closeTag := "</" + root + ">"
	start := strings.Index(s, openTag)
	end := strings.LastIndex(s, closeTag)
	if start != -1 && end != -1 && end > start {
		s = s[start : end+len(closeTag)]
	}
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "&amp;amp;", "&amp;")
	s = strings.ReplaceAll(s, "&amp;lt;", "&lt;")
	s = strings.ReplaceAll(s, "&amp;gt;", "&gt;")
	return s
}

type optionXML struct {
	Selected string `xml:"selected,attr"`
	Text     string `xml:",chardata"`
}

type optionSetXML struct {
	Index   string      `xml:"index,attr"`
	ID      string      `xml:"id"`
	X       string      `xml:"x"`
	Y       string      `xml:"y"`
	Width   string      `xml:"width"`
	Height  string      `xml:"height"`
	Options []optionXML `xml:"Options>Option"`
}

type questionOptionsXML struct {
	Sets []optionSetXML `xml:"OptionSet"`
}

// parsePositionedDropdowns turns a <QuestionOptions> reply into
// Dropdown values. Malformed XML falls back to regex extraction since
// the model does not always close its tags.
func parsePositionedDropdowns(reply string) []Dropdown {
	clean := cleanXMLReply(reply, "QuestionOptions")

	var parsed questionOptionsXML
	if err := xml.Unmarshal([]byte(clean), &parsed); err == nil {
		var out []Dropdown
		for i, set := range parsed.Sets {
			d, ok := dropdownFromSet(set, i)
			if ok {
				out = append(out, d)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return extractDropdownsManually(reply)
}

func dropdownFromSet(set optionSetXML, pos int) (Dropdown, bool) {
	id, errID := strconv.Atoi(strings.TrimSpace(set.ID))
	x, errX := strconv.Atoi(strings.TrimSpace(set.X))
	y, errY := strconv.Atoi(strings.TrimSpace(set.Y))
	w, errW := strconv.Atoi(strings.TrimSpace(set.Width))
	h, errH := strconv.Atoi(strings.TrimSpace(set.Height))
	if errID != nil || errX != nil || errY != nil || errW != nil || errH != nil {
		return Dropdown{}, false
	}

	index := set.Index
	if index == "" {
		index = strconv.Itoa(pos + 1)
	}
	d := Dropdown{Index: index, ID: id, X: x, Y: y, Width: w, Height: h}
	for _, opt := range set.Options {
		text := strings.TrimSpace(opt.Text)
		if text == "" {
			continue
		}
		d.Options = append(d.Options, text)
		if opt.Selected == "true" {
			d.Selected = append(d.Selected, text)
		}
	}
	d.Options = dedupeOptions(d.Options)
	d.Selected = dedupeOptions(d.Selected)
	return d, true
}

var (
	optionSetBlockRe = regexp.MustCompile(`(?s)<OptionSet[^>]*>(.*?)</OptionSet>`)
	optionSetIndexRe = regexp.MustCompile(`<OptionSet[^>]*index="([^"]*)"`)
	optionTagRe      = regexp.MustCompile(`(?s)<Option([^>]*)>(.*?)</Option>`)

	fieldTagRes = map[string]*regexp.Regexp{
		"id":     regexp.MustCompile(`<id>(\d+)</id>`),
		"x":      regexp.MustCompile(`<x>(\d+)</x>`),
		"y":      regexp.MustCompile(`<y>(\d+)</y>`),
		"width":  regexp.MustCompile(`<width>(\d+)</width>`),
		"height": regexp.MustCompile(`<height>(\d+)</height>`),
	}
)

func extractDropdownsManually(reply string) []Dropdown {
	var out []Dropdown
	blocks := optionSetBlockRe.FindAllStringSubmatch(reply, -1)
	for i, block := range blocks {
		fields := make(map[string]int, len(fieldTagRes))
		complete := true
		for name, re := range fieldTagRes {
			m := re.FindStringSubmatch(block[1])
			if m == nil {
				complete = false
				break
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				complete = false
				break
			}
			fields[name] = n
		}
		if !complete {
			continue
		}

		index := strconv.Itoa(i + 1)
		if m := optionSetIndexRe.FindStringSubmatch(reply); m != nil {
			index = m[1]
		}
		d := Dropdown{
			Index:  index,
			ID:     fields["id"],
			X:      fields["x"],
			Y:      fields["y"],
			Width:  fields["width"],
			Height: fields["height"],
		}
		for _, opt := range optionTagRe.FindAllStringSubmatch(block[1], -1) {
			text := strings.TrimSpace(opt[2])
			if text == "" {
				continue
			}
			d.Options = append(d.Options, text)
			if strings.Contains(opt[1], `selected="true"`) {
				d.Selected = append(d.Selected, text)
			}
		}
		d.Options = dedupeOptions(d.Options)
		d.Selected = dedupeOptions(d.Selected)
		out = append(out, d)
	}
	return out
}

func dedupeOptions(options []string) []string {
	if len(options) == 0 {
		return options
	}
	seen := make(map[string]bool, len(options))
	var unique []string
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, strings.TrimSpace(opt))
	}
	return unique
}

type boxXML struct {
	Index  string `xml:"index,attr"`
	ID     string `xml:"id"`
	X      int    `xml:"x"`
	Y      int    `xml:"y"`
	Width  int    `xml:"width"`
	Height int    `xml:"height"`
}

type coordinatesDataXML struct {
	Boxes []boxXML `xml:"Box"`
}

// parseBoxes turns a <CoordinatesData> reply into Box values.
func parseBoxes(reply string) ([]Box, error) {
	clean := cleanXMLReply(reply, "CoordinatesData")

	var parsed coordinatesDataXML
	if err := xml.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("parse coordinates xml: %w", err)
	}

	boxes := make([]Box, 0, len(parsed.Boxes))
	for _, b := range parsed.Boxes {
		id, _ := strconv.Atoi(strings.TrimSpace(b.ID))
		boxes = append(boxes, Box{
			Index:  b.Index,
			ID:     id,
			X:      b.X,
			Y:      b.Y,
			Width:  b.Width,
			Height: b.Height,
		})
	}
	return boxes, nil
}

type pairColumnXML struct {
	Name  string `xml:"name,attr"`
	Index string `xml:"index,attr"`
	ID    string `xml:"id,attr"`
	Text  string `xml:",chardata"`
}

type positionedDataXML struct {
	Columns []struct {
		Heading string   `xml:"heading,attr"`
		Items   []string `xml:"Item"`
	} `xml:"Column"`
	Pairs []struct {
		Columns []pairColumnXML `xml:"Column"`
	} `xml:"AnswerPairs>Pair"`
}

// parsePositionedData turns a <PositionedData> reply into the sidebar
// columns and the per-box answer texts.
func parsePositionedData(reply string) ([]Column, []PositionedPair, error) {
	clean := cleanXMLReply(reply, "PositionedData")

	var parsed positionedDataXML
	if err := xml.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, nil, fmt.Errorf("parse positioned xml: %w", err)
	}

	var columns []Column
	for _, c := range parsed.Columns {
		col := Column{Heading: c.Heading}
		for _, item := range c.Items {
			if item = strings.TrimSpace(item); item != "" {
				col.Items = append(col.Items, item)
			}
		}
		columns = append(columns, col)
	}

	var pairs []PositionedPair
	for _, p := range parsed.Pairs {
		for _, c := range p.Columns {
			pairs = append(pairs, PositionedPair{
				Name:  c.Name,
				Index: c.Index,
				ID:    c.ID,
				Text:  strings.TrimSpace(c.Text),
			})
		}
	}
	return columns, pairs, nil
}
