// Package xmlout assembles the canonical exam XML document from built
// question and case study nodes.
package xmlout

import "encoding/xml"

// Content is one block of a question body, an explanation or a case
// study segment. ContentType is Text, Title, Link, Image or BImage.
type Content struct {
	ContentType   string `xml:"ContentType"`
	Text          string `xml:"Text,omitempty"`
	Link          string `xml:"Link,omitempty"`
	Image         string `xml:"Image,omitempty"`
	IsAnswerImage string `xml:"IsAnswerImage,omitempty"`
}

// Option is one entry of an option list, flagged when it is the
// selected answer on a positioned dropdown.
type Option struct {
	Selected string `xml:"selected,attr,omitempty"`
	Text     string `xml:",chardata"`
}

// OptionSet is one statement row with its options. Hotspot rows carry
// only Statement, dropdown rows add the column headers, positioned
// dropdown rows add pixel geometry instead.
type OptionSet struct {
	Index                 string   `xml:"index,attr"`
	ID                    *int     `xml:"id,omitempty"`
	X                     *int     `xml:"x,omitempty"`
	Y                     *int     `xml:"y,omitempty"`
	Width                 *int     `xml:"width,omitempty"`
	Height                *int     `xml:"height,omitempty"`
	ColumnHeaderStatement *string  `xml:"ColumnHeaderStatement,omitempty"`
	Statement             *string  `xml:"Statement,omitempty"`
	ColumnHeaderOptions   *string  `xml:"ColumnHeaderOptions,omitempty"`
	Options               []Option `xml:"Options>Option"`
}

// QuestionOptions wraps the option sets of hotspot and dropdown
// questions.
type QuestionOptions struct {
	Sets []OptionSet `xml:"OptionSet"`
}

// DynColumn is one labelled column of drag items.
type DynColumn struct {
	Heading string   `xml:"heading,attr"`
	Items   []string `xml:"Item"`
}

// BoxElem is one rectangular answer area with pixel geometry.
type BoxElem struct {
	Index  string `xml:"index,attr"`
	ID     int    `xml:"id"`
	X      int    `xml:"x"`
	Y      int    `xml:"y"`
	Width  int    `xml:"width"`
	Height int    `xml:"height"`
}

// PairColumn is one named cell of a matched row. Positioned variants
// also carry the box identity and geometry as attributes.
type PairColumn struct {
	Name   string `xml:"name,attr"`
	Index  string `xml:"index,attr,omitempty"`
	ID     string `xml:"id,attr,omitempty"`
	X      string `xml:"x,attr,omitempty"`
	Y      string `xml:"y,attr,omitempty"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
	Text   string `xml:",chardata"`
}

// PairElem is one matched row.
type PairElem struct {
	Columns []PairColumn `xml:"Column"`
}

// AnswerPairs wraps the matched rows of a drag-and-drop answer.
type AnswerPairs struct {
	Pairs []PairElem `xml:"Pair"`
}

// DynamicColumns carries the drag columns. Positioned drag-and-drop
// questions nest their boxes and answer pairs here as well.
type DynamicColumns struct {
	Columns     []DynColumn  `xml:"Column"`
	Boxes       []BoxElem    `xml:"Box"`
	AnswerPairs *AnswerPairs `xml:"AnswerPairs,omitempty"`
}

// Choice is one lettered option of a text-based question.
type Choice struct {
	Number   string  `xml:"Number"`
	Contents Content `xml:"Contents"`
}

// Answer is the single answer element of text-based, fill-in-the-blank
// and simulation questions. Choice types list the correct letters or
// blank values; simulation carries the answer as plain text.
type Answer struct {
	Text    string   `xml:",chardata"`
	Choices []string `xml:"Choices"`
}

// AnswerLine is one resolved answer row of a hotspot, dropdown or
// positioned dropdown question.
type AnswerLine struct {
	StatementHeader *string `xml:"statement_header,attr,omitempty"`
	AnswerHeader    *string `xml:"answer_header,attr,omitempty"`
	Statement       *string `xml:"statement,attr,omitempty"`
	Index           string  `xml:"index,attr,omitempty"`
	X               *int    `xml:"x,attr,omitempty"`
	Y               *int    `xml:"y,attr,omitempty"`
	Width           *int    `xml:"width,attr,omitempty"`
	Height          *int    `xml:"height,attr,omitempty"`
	Text            string  `xml:",chardata"`
}

// Answers wraps the resolved answer rows.
type Answers struct {
	Lines []AnswerLine `xml:"Answer"`
}

// Question is one exam question node. Field order fixes the element
// order of the output document; per-type sections stay nil on the
// types that do not use them.
type Question struct {
	XMLName         xml.Name         `xml:"Question"`
	Kind            string           `xml:"Kind"`
	DisplayKind     string           `xml:"DisplayKind,omitempty"`
	QuestionNo      string           `xml:"QuestionNo"`
	Contents        []Content        `xml:"Contents"`
	QuestionOptions *QuestionOptions `xml:"QuestionOptions,omitempty"`
	DynamicColumns  *DynamicColumns  `xml:"DynamicColumns,omitempty"`
	AnswerPairs     *AnswerPairs     `xml:"AnswerPairs,omitempty"`
	Choices         []Choice         `xml:"Choices"`
	Answers         *Answers         `xml:"Answers,omitempty"`
	Answer          *Answer          `xml:"Answer,omitempty"`
	ID              *string          `xml:"Id,omitempty"`
	Explanation     *Explanation     `xml:"Explanation,omitempty"`
	Error           string           `xml:"Error,omitempty"`
}

// Explanation holds the explanation paragraphs and reference links.
type Explanation struct {
	Contents []Content `xml:"Contents"`
}

// SegmentElem is one named segment of a case study.
type SegmentElem struct {
	Name     string    `xml:"Name"`
	Contents []Content `xml:"Contents"`
}

// CaseStudyElem is the case study header node of a testlet.
type CaseStudyElem struct {
	Number   string        `xml:"Number"`
	Name     string        `xml:"Name"`
	Segments []SegmentElem `xml:"Segments"`
}

// Testlet groups one case study with its questions, or holds the
// standalone questions.
type Testlet struct {
	CaseStudy *CaseStudyElem `xml:"CaseStudy,omitempty"`
	Questions []Question     `xml:"Question"`
}

// Root is the document root with the exam metadata header.
type Root struct {
	XMLName          xml.Name  `xml:"root"`
	ID               string    `xml:"Id"`
	Code             string    `xml:"Code"`
	Name             string    `xml:"Name"`
	VendorName       string    `xml:"VendorName"`
	QuestionsPerExam int       `xml:"QuestionsPerExam"`
	Version          string    `xml:"Version"`
	AllowedTime      string    `xml:"AllowedTime"`
	MaxScore         string    `xml:"MaxScore"`
	RequiredScore    string    `xml:"RequiredScore"`
	SchemaVersion    string    `xml:"SchemaVersion"`
	Sections         string    `xml:"Sections"`
	Testlets         []Testlet `xml:"Testlets"`
}
