package vision

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"testing"
)

type fakeGenerator struct {
	replies []string
	errs    []error
	calls   int
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ []byte) (string, error) {
	i := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	var reply string
	if i < len(f.replies) {
		reply = f.replies[i]
	}
	return reply, err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(gemini, claude Generator) *Service {
	return NewService(gemini, claude, testLogger(), 1)
}

func TestRecognizeTextStripsFences(t *testing.T) {
	gemini := &fakeGenerator{replies: []string{"```\nQUESTION NO: 1\n```"}}
	svc := newTestService(gemini, &fakeGenerator{})

	got := svc.RecognizeText(context.Background(), []byte{1})
	if got != "QUESTION NO: 1" {
		t.Errorf("RecognizeText = %q", got)
	}
}

func TestHotspotAnswers(t *testing.T) {
	gemini := &fakeGenerator{replies: []string{
		"```json\n[{\"statement\":\"The sky is blue\",\"answer\":\"Yes\"}]\n```",
	}}
	svc := newTestService(gemini, &fakeGenerator{})

	answers := svc.HotspotAnswers(context.Background(), []byte{1})
	want := []HotspotAnswer{{Statement: "The sky is blue", Answer: "Yes"}}
	if !reflect.DeepEqual(answers, want) {
		t.Errorf("HotspotAnswers = %+v, want %+v", answers, want)
	}
}

func TestServiceDegradesToEmpty(t *testing.T) {
	boom := errors.New("model unavailable")
	gemini := &fakeGenerator{errs: []error{boom, boom, boom}}
	claude := &fakeGenerator{errs: []error{boom, boom, boom}}
	svc := newTestService(gemini, claude)
	ctx := context.Background()

	if got := svc.RecognizeText(ctx, nil); got != "" {
		t.Errorf("RecognizeText = %q, want empty", got)
	}
	if got := svc.HotspotAnswers(ctx, nil); got != nil {
		t.Errorf("HotspotAnswers = %+v, want nil", got)
	}
	if got := svc.DragDropColumns(ctx, nil); got != nil {
		t.Errorf("DragDropColumns = %+v, want nil", got)
	}
	if got := svc.PositionedDropdowns(ctx, nil); got != nil {
		t.Errorf("PositionedDropdowns = %+v, want nil", got)
	}
}

func TestServiceRetriesTransientFailure(t *testing.T) {
	gemini := &fakeGenerator{
		errs:    []error{&RetryableError{StatusCode: 429, Message: "rate limited"}, nil},
		replies: []string{"", "recovered text"},
	}
	svc := NewService(gemini, &fakeGenerator{}, testLogger(), 2)

	got := svc.RecognizeText(context.Background(), []byte{1})
	if got != "recovered text" {
		t.Errorf("RecognizeText = %q", got)
	}
	if gemini.calls != 2 {
		t.Errorf("expected 2 calls, got %d", gemini.calls)
	}
}

func TestServiceStopsOnPermanentFailure(t *testing.T) {
	gemini := &fakeGenerator{errs: []error{errors.New("bad request"), nil}}
	svc := NewService(gemini, &fakeGenerator{}, testLogger(), 3)

	if got := svc.RecognizeText(context.Background(), nil); got != "" {
		t.Errorf("RecognizeText = %q, want empty", got)
	}
	if gemini.calls != 1 {
		t.Errorf("expected 1 call for permanent failure, got %d", gemini.calls)
	}
}

func TestDragDropPairsPreserveOrder(t *testing.T) {
	gemini := &fakeGenerator{replies: []string{
		`[{"Feature":"Durable","Service":"S3"}]`,
	}}
	svc := newTestService(gemini, &fakeGenerator{})

	pairs := svc.DragDropPairs(context.Background(), []byte{1})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	want := []Field{{Name: "Feature", Value: "Durable"}, {Name: "Service", Value: "S3"}}
	if !reflect.DeepEqual(pairs[0].Fields, want) {
		t.Errorf("fields = %+v, want %+v", pairs[0].Fields, want)
	}
}

func TestDropdownAnswersColonFallback(t *testing.T) {
	gemini := &fakeGenerator{replies: []string{
		"this is not json at all",
		"\"format\" : JSON\n\"compression\" : GZIP",
	}}
	svc := newTestService(gemini, &fakeGenerator{})

	answers := svc.DropdownAnswers(context.Background(), []byte{1})
	if len(answers) != 2 {
		t.Fatalf("expected 2 recovered answers, got %d: %+v", len(answers), answers)
	}
	if answers[0].StatementHeader != "format" || answers[0].Answer != "JSON" {
		t.Errorf("answers[0] = %+v", answers[0])
	}
	if gemini.calls != 2 {
		t.Errorf("expected 2 gemini calls, got %d", gemini.calls)
	}
}

func TestPositionedCallsUseClaudeBackend(t *testing.T) {
	gemini := &fakeGenerator{}
	claude := &fakeGenerator{replies: []string{
		`<CoordinatesData><Box index="1"><id>1</id><x>5</x><y>6</y><width>7</width><height>8</height></Box></CoordinatesData>`,
	}}
	svc := newTestService(gemini, claude)

	boxes := svc.BoxCoordinates(context.Background(), []byte{1})
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	if gemini.calls != 0 {
		t.Errorf("gemini should not be called, got %d calls", gemini.calls)
	}
	if claude.calls != 1 {
		t.Errorf("expected 1 claude call, got %d", claude.calls)
	}
}

func TestStatsRecordsCalls(t *testing.T) {
	gemini := &fakeGenerator{replies: []string{"hello"}, errs: []error{nil, errors.New("boom")}}
	svc := newTestService(gemini, &fakeGenerator{})
	ctx := context.Background()

	svc.RecognizeText(ctx, nil)
	svc.RecognizeText(ctx, nil)

	snap := svc.StatsSnapshot()
	if snap.Count != 2 {
		t.Errorf("count = %d, want 2", snap.Count)
	}
	if snap.Failures != 1 {
		t.Errorf("failures = %d, want 1", snap.Failures)
	}
}
