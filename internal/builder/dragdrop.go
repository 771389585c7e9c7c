package builder

import (
	"context"
	"strings"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

func (b *Builder) buildDragDrop(ctx context.Context, q *exam.Question, roles grouping.ImageRoles, node *xmlout.Question) {
	qImgs, aImgs := questionAnswerImages(q, roles)
	if len(qImgs) == 0 {
		b.log.Warn("no question option image for dragdrop", "question", q.Number)
	}
	if len(aImgs) == 0 {
		b.log.Warn("no answer option image for dragdrop", "question", q.Number)
	}

	if len(qImgs) > 0 {
		columns := b.oracle.DragDropColumns(ctx, qImgs[0].Data)
		dyn := &xmlout.DynamicColumns{}
		for _, col := range columns {
			elem := xmlout.DynColumn{Heading: strings.TrimSpace(col.Heading)}
			for _, item := range col.Items {
				elem.Items = append(elem.Items, strings.TrimSpace(item))
			}
			dyn.Columns = append(dyn.Columns, elem)
		}
		node.DynamicColumns = dyn
	}

	if len(aImgs) > 0 {
		pairs := b.oracle.DragDropPairs(ctx, aImgs[0].Data)
		answerPairs := &xmlout.AnswerPairs{}
		for _, pair := range pairs {
			elem := xmlout.PairElem{}
			for _, field := range pair.Fields {
				elem.Columns = append(elem.Columns, xmlout.PairColumn{
					Name: strings.TrimSpace(field.Name),
					Text: strings.TrimSpace(field.Value),
				})
			}
			answerPairs.Pairs = append(answerPairs.Pairs, elem)
		}
		node.AnswerPairs = answerPairs
	}
}
