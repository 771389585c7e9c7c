// Package builder turns grouped questions into XML question nodes,
// consulting the vision service for everything encoded in images.
package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/vision"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

// Oracle answers image recognition queries. *vision.Service implements
// it; tests substitute a canned fake.
type Oracle interface {
	RecognizeText(ctx context.Context, image []byte) string
	HotspotAnswers(ctx context.Context, image []byte) []vision.HotspotAnswer
	DragDropColumns(ctx context.Context, image []byte) []vision.Column
	DragDropPairs(ctx context.Context, image []byte) []vision.Pair
	DropdownRows(ctx context.Context, image []byte) []vision.DropdownRow
	DropdownAnswers(ctx context.Context, image []byte) []vision.DropdownAnswer
	JustDropdownOptions(ctx context.Context, image []byte) []vision.LabelOptions
	PositionedDropdowns(ctx context.Context, image []byte) []vision.Dropdown
	BoxCoordinates(ctx context.Context, image []byte) []vision.Box
	PositionedPairs(ctx context.Context, image []byte) ([]vision.Column, []vision.PositionedPair)
}

// Builder builds XML nodes for questions of every supported type.
type Builder struct {
	oracle Oracle
	log    *slog.Logger
}

func New(oracle Oracle, log *slog.Logger) *Builder {
	return &Builder{oracle: oracle, log: log}
}

// Build produces the XML node for one question. It never fails the
// whole conversion: any error or panic inside a type builder collapses
// into a minimal node carrying the error text.
func (b *Builder) Build(ctx context.Context, q *exam.Question, roles grouping.ImageRoles) (node xmlout.Question) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("question build panicked", "question", q.Number, "type", string(q.Type), "panic", r)
			node = errorNode(q, fmt.Sprintf("build panic: %v", r))
		}
	}()

	node = b.baseNode(q, roles)

	switch q.Type {
	case exam.TypeHotspot:
		b.buildHotspot(ctx, q, roles, &node)
	case exam.TypeDragDrop:
		b.buildDragDrop(ctx, q, roles, &node)
	case exam.TypeDropdown:
		b.buildDropdown(ctx, q, roles, &node)
	case exam.TypeSingleChoice, exam.TypeMultipleChoice:
		b.buildTextBased(q, &node)
	case exam.TypeFillInTheBlank:
		b.buildFillInTheBlank(q, &node)
	case exam.TypeSimulation:
		b.buildSimulation(q, &node)
	case exam.TypePositionedDropdown:
		b.buildPositionedDropdown(ctx, q, roles, &node)
	case exam.TypePositionedDragDrop:
		b.buildPositionedDragDrop(ctx, q, roles, &node)
	default:
		b.log.Warn("unknown question type", "question", q.Number, "type", string(q.Type))
	}

	id := ""
	node.ID = &id
	node.Explanation = b.explanation(q)
	return node
}

func errorNode(q *exam.Question, msg string) xmlout.Question {
	return xmlout.Question{
		Kind:       q.Type.XMLKind(),
		QuestionNo: q.Number,
		Error:      msg,
	}
}

func (b *Builder) baseNode(q *exam.Question, roles grouping.ImageRoles) xmlout.Question {
	kind := q.Type.XMLKind()
	node := xmlout.Question{
		Kind:        kind,
		DisplayKind: kind,
		QuestionNo:  q.Number,
	}
	node.Contents = b.sequentialContents(q, roles)
	return node
}

// sequentialContents walks the question's units in document order,
// keeping text blocks and description/background images interleaved
// the way they appeared in the source.
func (b *Builder) sequentialContents(q *exam.Question, roles grouping.ImageRoles) []xmlout.Content {
	explanation := extractExplanation(q.Text)

	var contents []xmlout.Content
	for _, unit := range q.Units {
		if clean := cleanItemText(unit.Text, explanation); clean != "" {
			contents = append(contents, xmlout.TextContent(clean))
		}
		for _, img := range unit.Images {
			switch roles.For(img.Path) {
			case exam.RoleDescription:
				contents = append(contents, xmlout.ImageContent(img.Data, false, false))
			case exam.RoleBackground:
				contents = append(contents, xmlout.ImageContent(img.Data, false, true))
			}
		}
	}
	return contents
}

func (b *Builder) explanation(q *exam.Question) *xmlout.Explanation {
	text := extractExplanation(q.Text)
	references := extractReferences(q.Text)
	if text == "" && len(references) == 0 {
		return nil
	}

	expl := &xmlout.Explanation{}
	for _, paragraph := range splitParagraphs(text) {
		if containsURL(paragraph) || strings.Contains(paragraph, exam.MarkerReferences) {
			continue
		}
		expl.Contents = append(expl.Contents, xmlout.TextContent(paragraph))
	}
	for _, link := range references {
		expl.Contents = append(expl.Contents, xmlout.LinkContent(link))
	}
	if len(expl.Contents) == 0 {
		return nil
	}
	return expl
}
