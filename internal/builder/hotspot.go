package builder

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"

	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

// statementMatchThreshold is the minimum similarity between a
// recognized answer statement and a question statement before they are
// treated as the same row.
const statementMatchThreshold = 0.6

func (b *Builder) buildHotspot(ctx context.Context, q *exam.Question, roles grouping.ImageRoles, node *xmlout.Question) {
	qImgs, aImgs := questionAnswerImages(q, roles)
	if len(qImgs) == 0 {
		b.log.Warn("no question option image for hotspot", "question", q.Number)
	}
	if len(aImgs) == 0 {
		b.log.Warn("no answer option image for hotspot", "question", q.Number)
	}

	var statements []string
	if len(qImgs) > 0 {
		text := b.oracle.RecognizeText(ctx, qImgs[0].Data)
		statements = parseHotspotStatements(text)

		sets := make([]xmlout.OptionSet, 0, len(statements))
		for i := range statements {
			stmt := statements[i]
			sets = append(sets, xmlout.OptionSet{
				Index:     strconv.Itoa(i + 1),
				Statement: &stmt,
				Options:   []xmlout.Option{{Text: "Yes"}, {Text: "No"}},
			})
		}
		node.QuestionOptions = &xmlout.QuestionOptions{Sets: sets}
	}

	if len(aImgs) > 0 {
		answers := b.oracle.HotspotAnswers(ctx, aImgs[0].Data)
		lines := make([]xmlout.AnswerLine, 0, len(answers))
		for _, ans := range answers {
			stmt := matchStatement(statements, strings.TrimSpace(ans.Statement))
			lines = append(lines, xmlout.AnswerLine{
				Statement: &stmt,
				Text:      strings.TrimSpace(ans.Answer),
			})
		}
		node.Answers = &xmlout.Answers{Lines: lines}
	}
}

// parseHotspotStatements turns raw recognized text into the statement
// rows of a yes/no grid. A leading "Statement / Yes / No" header is
// dropped, lines starting lowercase are continuations of the previous
// row, and short fragments are noise.
func parseHotspotStatements(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) >= 3 &&
		strings.EqualFold(lines[0], "statement") &&
		strings.EqualFold(lines[1], "yes") &&
		strings.EqualFold(lines[2], "no") {
		lines = lines[3:]
	}

	var combined []string
	buffer := ""
	for _, line := range lines {
		if buffer == "" {
			buffer = line
			continue
		}
		if startsLower(line) {
			buffer += " " + line
		} else {
			combined = append(combined, buffer)
			buffer = line
		}
	}
	if buffer != "" {
		combined = append(combined, buffer)
	}

	var statements []string
	for _, line := range combined {
		if len(line) > 20 {
			statements = append(statements, line)
		}
	}
	return statements
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}

// matchStatement maps a recognized answer statement back to the
// closest question statement. Below the similarity threshold the
// recognized text stands as-is.
func matchStatement(statements []string, recognized string) string {
	best := ""
	bestScore := 0.0
	for _, stmt := range statements {
		score := levenshtein.Similarity(strings.ToLower(stmt), strings.ToLower(recognized), levenshtein.NewParams())
		if score > bestScore && score > statementMatchThreshold {
			best = stmt
			bestScore = score
		}
	}
	if best == "" {
		return recognized
	}
	return best
}
