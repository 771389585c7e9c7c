package builder

import (
	"context"
	"strconv"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/vision"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

func (b *Builder) buildPositionedDropdown(ctx context.Context, q *exam.Question, roles grouping.ImageRoles, node *xmlout.Question) {
	posImgs := imagesWithRole(q, roles, exam.RolePositioned)
	if len(posImgs) == 0 {
		b.log.Warn("no positioned image for positioned dropdown", "question", q.Number)
		return
	}

	dropdowns := b.oracle.PositionedDropdowns(ctx, posImgs[0].Data)
	if len(dropdowns) == 0 {
		b.log.Warn("positioned dropdown detection came back empty", "question", q.Number)
		return
	}

	empty := ""
	options := &xmlout.QuestionOptions{}
	for i := range dropdowns {
		d := dropdowns[i]
		set := xmlout.OptionSet{
			Index:                 dropdownIndex(d),
			ID:                    &dropdowns[i].ID,
			X:                     &dropdowns[i].X,
			Y:                     &dropdowns[i].Y,
			Width:                 &dropdowns[i].Width,
			Height:                &dropdowns[i].Height,
			ColumnHeaderStatement: &empty,
			Statement:             &empty,
			ColumnHeaderOptions:   &empty,
		}
		for _, opt := range d.Options {
			option := xmlout.Option{Text: opt}
			if contains(d.Selected, opt) {
				option.Selected = "true"
			}
			set.Options = append(set.Options, option)
		}
		options.Sets = append(options.Sets, set)
	}
	node.QuestionOptions = options

	answers := &xmlout.Answers{}
	for i := range dropdowns {
		d := dropdowns[i]
		for _, selected := range d.Selected {
			answers.Lines = append(answers.Lines, xmlout.AnswerLine{
				StatementHeader: &empty,
				AnswerHeader:    &empty,
				Statement:       &empty,
				Index:           dropdownIndex(d),
				X:               &dropdowns[i].X,
				Y:               &dropdowns[i].Y,
				Width:           &dropdowns[i].Width,
				Height:          &dropdowns[i].Height,
				Text:            selected,
			})
		}
	}
	node.Answers = answers
}

func dropdownIndex(d vision.Dropdown) string {
	if d.Index != "" {
		return d.Index
	}
	return strconv.Itoa(d.ID)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// buildPositionedDragDrop joins two recognitions: box geometry from
// the background screenshot and sidebar columns plus per-box answer
// text from the positioned screenshot. Boxes and answers pair up by
// index first, then by id.
func (b *Builder) buildPositionedDragDrop(ctx context.Context, q *exam.Question, roles grouping.ImageRoles, node *xmlout.Question) {
	bgImgs := imagesWithRole(q, roles, exam.RoleBackground)
	posImgs := imagesWithRole(q, roles, exam.RolePositioned)
	if len(bgImgs) == 0 {
		b.log.Warn("no background image for positioned dragdrop", "question", q.Number)
		return
	}
	if len(posImgs) == 0 {
		b.log.Warn("no positioned image for positioned dragdrop", "question", q.Number)
		return
	}

	boxes := b.oracle.BoxCoordinates(ctx, bgImgs[0].Data)
	columns, pairs := b.oracle.PositionedPairs(ctx, posImgs[0].Data)

	dyn := &xmlout.DynamicColumns{}
	for _, col := range columns {
		dyn.Columns = append(dyn.Columns, xmlout.DynColumn{
			Heading: col.Heading,
			Items:   col.Items,
		})
	}
	for _, box := range boxes {
		dyn.Boxes = append(dyn.Boxes, xmlout.BoxElem{
			Index:  box.Index,
			ID:     box.ID,
			X:      box.X,
			Y:      box.Y,
			Width:  box.Width,
			Height: box.Height,
		})
	}

	if len(pairs) > 0 {
		answerPairs := &xmlout.AnswerPairs{}
		currentName := ""
		var current *xmlout.PairElem
		for _, pair := range pairs {
			if current == nil || pair.Name != currentName {
				answerPairs.Pairs = append(answerPairs.Pairs, xmlout.PairElem{})
				current = &answerPairs.Pairs[len(answerPairs.Pairs)-1]
				currentName = pair.Name
			}

			col := xmlout.PairColumn{
				Name:  pair.Name,
				Index: pair.Index,
				ID:    pair.ID,
				Text:  pair.Text,
			}
			if box, ok := matchBox(boxes, pair); ok {
				col.X = strconv.Itoa(box.X)
				col.Y = strconv.Itoa(box.Y)
				col.Width = strconv.Itoa(box.Width)
				col.Height = strconv.Itoa(box.Height)
			}
			current.Columns = append(current.Columns, col)
		}
		dyn.AnswerPairs = answerPairs
	}

	node.DynamicColumns = dyn
}

func matchBox(boxes []vision.Box, pair vision.PositionedPair) (vision.Box, bool) {
	for _, box := range boxes {
		if box.Index == pair.Index || strconv.Itoa(box.ID) == pair.ID {
			return box, true
		}
	}
	return vision.Box{}, false
}
