package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/FaisalAwa/examforge/internal/builder"
	"github.com/FaisalAwa/examforge/internal/exam"
	"github.com/FaisalAwa/examforge/internal/extractor"
	"github.com/FaisalAwa/examforge/internal/grouping"
	"github.com/FaisalAwa/examforge/internal/validate"
	"github.com/FaisalAwa/examforge/internal/xmlout"
)

// Worker processes a single conversion job.
type Worker struct {
	builder  *builder.Builder
	log      *slog.Logger
	maxBuild int
}

func NewWorker(b *builder.Builder, log *slog.Logger, maxBuild int) *Worker {
	if maxBuild <= 0 {
		maxBuild = 1
	}
	return &Worker{builder: b, log: log, maxBuild: maxBuild}
}

// Process runs the full conversion pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting")
	ex, err := extractor.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	job.SetContentHash(ContentHashHex(job.FileData()))
	units, err := ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	if len(units) == 0 {
		log.Warn("no content units extracted")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "extracting")
		return
	}

	// Phase 2: Group
	job.SetStatus(StatusGrouping, "grouping")
	roles := grouping.ClassifyImages(units)
	grouped := grouping.Group(units)

	total := len(grouped.Standalone)
	for _, cs := range grouped.CaseStudies {
		total += len(cs.Questions)
	}
	job.SetTotals(total, len(grouped.CaseStudies))
	log.Info("grouped document", "questions", total, "case_studies", len(grouped.CaseStudies))

	if total == 0 {
		job.AddError("no questions found")
		job.SetStatus(StatusFailed, "grouping")
		return
	}

	// Phase 3: Validate
	job.SetStatus(StatusValidating, "validating")
	okStandalone, violations := validate.Questions(grouped.Standalone)
	okCS, csViolations := validate.CaseStudies(grouped.CaseStudies)
	if !okStandalone || !okCS {
		for _, v := range append(violations, csViolations...) {
			job.AddError(v)
		}
		log.Error("validation failed", "violations", len(violations)+len(csViolations))
		job.SetStatus(StatusFailed, "validating")
		return
	}

	// Phase 4: Build question nodes with bounded concurrency. Slots are
	// preallocated so document order survives the fan-out.
	job.SetStatus(StatusBuilding, "building")
	standaloneNodes := make([]xmlout.Question, len(grouped.Standalone))
	csNodes := make([][]xmlout.Question, len(grouped.CaseStudies))
	for i, cs := range grouped.CaseStudies {
		csNodes[i] = make([]xmlout.Question, len(cs.Questions))
	}

	type target struct {
		q    *exam.Question
		slot *xmlout.Question
	}
	targets := make([]target, 0, total)
	for i, q := range grouped.Standalone {
		targets = append(targets, target{q: q, slot: &standaloneNodes[i]})
	}
	for i, cs := range grouped.CaseStudies {
		for j, q := range cs.Questions {
			targets = append(targets, target{q: q, slot: &csNodes[i][j]})
		}
	}

	sem := make(chan struct{}, w.maxBuild)
	var wg sync.WaitGroup
	for _, t := range targets {
		sem <- struct{}{}
		wg.Add(1)
		go func(t target) {
			defer wg.Done()
			defer func() { <-sem }()
			*t.slot = w.builder.Build(ctx, t.q, roles)
			job.IncrQuestionsBuilt()
		}(t)
	}
	wg.Wait()

	if ctx.Err() != nil {
		job.AddError(ctx.Err().Error())
		job.SetStatus(StatusFailed, "building")
		return
	}

	failed := 0
	for _, t := range targets {
		if t.slot.Error != "" {
			failed++
			job.AddError(fmt.Sprintf("question %s: %s", t.slot.QuestionNo, t.slot.Error))
		}
	}
	log.Info("build complete", "questions", total, "failed", failed)

	// Phase 5: Assemble
	job.SetStatus(StatusAssembling, "assembling")
	built := make([]xmlout.BuiltCaseStudy, 0, len(grouped.CaseStudies))
	for i, cs := range grouped.CaseStudies {
		built = append(built, xmlout.BuiltCaseStudy{
			TopicNumber: cs.TopicNumber,
			Number:      cs.Number,
			Node:        xmlout.CaseStudyNode(cs),
			Questions:   csNodes[i],
		})
	}

	doc, err := xmlout.Generate(standaloneNodes, built)
	if err != nil {
		log.Error("assembly failed", "error", err)
		job.AddError(fmt.Sprintf("assemble: %s", err))
		job.SetStatus(StatusFailed, "assembling")
		return
	}
	job.SetResult(doc)

	if failed > 0 {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}
