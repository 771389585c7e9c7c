// Package exam holds the shared data model: ordered content units extracted
// from a document, and the questions and case studies they group into.
package exam

// UnitKind discriminates text units from image-bearing units.
type UnitKind string

const (
	UnitText  UnitKind = "text"
	UnitImage UnitKind = "image"
)

// Image is one embedded image blob with its source path inside the container.
type Image struct {
	Data   []byte
	Format string // "png", "jpeg", ...
	Path   string // container-internal path, e.g. "Pictures/1000.png"
}

// ContentUnit is one ordered, positioned piece of document content.
// Document order is the single source of truth for sequencing; nothing
// downstream may reorder units except by the assembler's explicit sort keys.
type ContentUnit struct {
	Kind   UnitKind
	Text   string
	Images []Image
}

// HasMarker reports whether the unit's text contains the given marker.
// Markers are case-sensitive substrings (see the marker vocabulary).
func (u ContentUnit) HasMarker(marker string) bool {
	return containsMarker(u.Text, marker)
}

// Question is one grouped question: the units between a "QUESTION NO:"
// marker and the next boundary, plus the images they carried.
type Question struct {
	Number string
	Type   QuestionType
	Units  []ContentUnit
	Images []Image
	Text   string // all unit text concatenated with newlines
}

// Append adds a unit to the question, extending the concatenated text and
// the aggregate image list.
func (q *Question) Append(u ContentUnit) {
	q.Units = append(q.Units, u)
	q.Text += "\n" + u.Text
	q.Images = append(q.Images, u.Images...)
}

// EntryKind discriminates the payload of a segment entry.
type EntryKind string

const (
	EntryText  EntryKind = "Text"
	EntryTitle EntryKind = "Title"
	EntryImage EntryKind = "Image"
)

// SegmentEntry is one ordered entry inside a case-study segment.
type SegmentEntry struct {
	Kind          EntryKind
	Text          string
	Image         *Image
	IsAnswerImage bool
}

// Segment is a named sub-section of case-study detail content.
type Segment struct {
	Name    string
	Entries []SegmentEntry
}

// CaseStudy is a named, numbered grouping of segments and nested questions.
type CaseStudy struct {
	TopicNumber string
	Number      string
	TopicName   string
	Segments    []Segment
	Questions   []*Question
	Images      []Image
}

// AddQuestion appends q unless a question with the same number is already
// present. Question numbers are unique within one case study.
func (cs *CaseStudy) AddQuestion(q *Question) {
	for _, existing := range cs.Questions {
		if existing.Number == q.Number {
			return
		}
	}
	cs.Questions = append(cs.Questions, q)
}

// Role is the semantic purpose assigned to an embedded image by the
// classifier. The set is closed.
type Role string

const (
	RoleDescription  Role = "description"
	RoleQuestion     Role = "question"
	RoleAnswer       Role = "answer"
	RoleJustDropdown Role = "justdropdown"
	RolePositioned   Role = "positioned"
	RoleBackground   Role = "background"
)
