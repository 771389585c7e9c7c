package builder

import (
	"context"
	"strconv"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

func (b *Builder) buildDropdown(ctx context.Context, q *exam.Question, roles grouping.ImageRoles, node *xmlout.Question) {
	jdImgs := imagesWithRole(q, roles, exam.RoleJustDropdown)
	qImgs, aImgs := questionAnswerImages(q, roles)

	var sets []xmlout.OptionSet
	switch {
	case len(jdImgs) > 0:
		// Standalone dropdown menus carry a label per menu instead of
		// statement/options column headers.
		for i, lo := range b.oracle.JustDropdownOptions(ctx, jdImgs[0].Data) {
			label := strings.TrimSpace(lo.Label)
			empty := ""
			set := xmlout.OptionSet{
				Index:                 strconv.Itoa(i + 1),
				ColumnHeaderStatement: &empty,
				Statement:             &label,
				ColumnHeaderOptions:   &empty,
			}
			for _, opt := range lo.Options {
				set.Options = append(set.Options, xmlout.Option{Text: opt})
			}
			sets = append(sets, set)
		}
	case len(qImgs) > 0:
		for i, row := range b.oracle.DropdownRows(ctx, qImgs[0].Data) {
			stmt := strings.TrimSpace(row.Statement)
			stmtHeader := strings.TrimSpace(row.StatementHeader)
			optsHeader := strings.TrimSpace(row.OptionsHeader)
			set := xmlout.OptionSet{
				Index:                 strconv.Itoa(i + 1),
				ColumnHeaderStatement: &stmtHeader,
				Statement:             &stmt,
				ColumnHeaderOptions:   &optsHeader,
			}
			for _, opt := range row.Options {
				set.Options = append(set.Options, xmlout.Option{Text: opt})
			}
			sets = append(sets, set)
		}
	}
	node.QuestionOptions = &xmlout.QuestionOptions{Sets: sets}

	var lines []xmlout.AnswerLine
	if len(aImgs) > 0 {
		for _, ans := range b.oracle.DropdownAnswers(ctx, aImgs[0].Data) {
			stmtHeader := strings.TrimSpace(ans.StatementHeader)
			ansHeader := strings.TrimSpace(ans.AnswerHeader)
			stmt := strings.TrimSpace(ans.Statement)
			lines = append(lines, xmlout.AnswerLine{
				StatementHeader: &stmtHeader,
				AnswerHeader:    &ansHeader,
				Statement:       &stmt,
				Text:            strings.TrimSpace(ans.Answer),
			})
		}
	}
	node.Answers = &xmlout.Answers{Lines: lines}
}
