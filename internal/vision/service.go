// Package vision extracts structured exam data from question, answer
// and screenshot images through Gemini and Anthropic model backends.
// Every extraction method degrades to an empty result when the backend
// stays unavailable across retries, so a single bad image never takes
// down a whole conversion.
package vision

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Generator is a model backend that answers one prompt about one image.
type Generator interface {
	Generate(ctx context.Context, prompt string, image []byte) (string, error)
}

// Service is the single entry point for image recognition. Gemini
// handles text and JSON extraction, Anthropic handles the positioned
// screenshot analysis.
type Service struct {
	gemini     Generator
	claude     Generator
	log        *slog.Logger
	stats      *Stats
	maxRetries int
}

func NewService(gemini, claude Generator, log *slog.Logger, maxRetries int) *Service {
	if maxRetries <= 0 {
		maxRetries = MaxRetries
	}
	return &Service{
		gemini:     gemini,
		claude:     claude,
		log:        log,
		stats:      NewStats(time.Hour),
		maxRetries: maxRetries,
	}
}

// StatsSnapshot returns the rolling latency aggregate for all calls.
func (s *Service) StatsSnapshot() StatsSnapshot {
	return s.stats.Snapshot()
}

func (s *Service) generate(ctx context.Context, backend Generator, purpose, prompt string, image []byte) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}

		start := time.Now()
		out, err := backend.Generate(ctx, prompt, image)
		s.stats.Record(time.Since(start), err != nil)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
		s.log.Warn("vision call failed",
			"purpose", purpose,
			"attempt", attempt+1,
			"error", err)
	}
	return "", lastErr
}

// RecognizeText returns all text visible in the image, or "" when
// recognition fails.
func (s *Service) RecognizeText(ctx context.Context, image []byte) string {
	out, err := s.generate(ctx, s.gemini, "recognize_text", promptRecognizeText, image)
	if err != nil {
		s.log.Warn("text recognition failed", "error", err)
		return ""
	}
	return stripCodeBlock(out)
}

// HotspotAnswers reads the statement/answer rows from a hotspot answer
// image.
func (s *Service) HotspotAnswers(ctx context.Context, image []byte) []HotspotAnswer {
	out, err := s.generate(ctx, s.gemini, "hotspot_answers", promptHotspotAnswers, image)
	if err != nil {
		s.log.Warn("hotspot answer extraction failed", "error", err)
		return nil
	}

	raw := sliceJSONArray(stripCodeBlock(out))
	var answers []HotspotAnswer
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		s.log.Warn("hotspot answer parse failed", "error", err)
		return nil
	}
	return answers
}

// DragDropColumns reads the labelled item columns from a drag-and-drop
// question image.
func (s *Service) DragDropColumns(ctx context.Context, image []byte) []Column {
	out, err := s.generate(ctx, s.gemini, "dragdrop_columns", promptDragDropColumns, image)
	if err != nil {
		s.log.Warn("dragdrop column extraction failed", "error", err)
		return nil
	}

	var payload struct {
		Columns []Column `json:"columns"`
	}
	if err := json.Unmarshal([]byte(stripCodeBlock(out)), &payload); err != nil {
		s.log.Warn("dragdrop column parse failed", "error", err)
		return nil
	}
	return payload.Columns
}

// DragDropPairs reads the matched rows from a drag-and-drop answer
// image, preserving the column order of the image.
func (s *Service) DragDropPairs(ctx context.Context, image []byte) []Pair {
	out, err := s.generate(ctx, s.gemini, "dragdrop_pairs", promptDragDropPairs, image)
	if err != nil {
		s.log.Warn("dragdrop pair extraction failed", "error", err)
		return nil
	}

	pairs, err := decodeOrderedPairs(sliceJSONArray(stripCodeBlock(out)))
	if err != nil {
		s.log.Warn("dragdrop pair parse failed", "error", err)
		return nil
	}
	return pairs
}

// DropdownRows reads the statement and option rows from a dropdown
// question image.
func (s *Service) DropdownRows(ctx context.Context, image []byte) []DropdownRow {
	out, err := s.generate(ctx, s.gemini, "dropdown_rows", promptDropdownRows, image)
	if err != nil {
		s.log.Warn("dropdown row extraction failed", "error", err)
		return nil
	}

	raw := sliceJSONArray(stripCodeBlock(out))
	var rows []DropdownRow
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		s.log.Warn("dropdown row parse failed", "error", err)
		return nil
	}
	return rows
}

// DropdownAnswers reads the resolved rows from a dropdown answer image.
// When JSON decoding fails, the raw recognized text is re-parsed line
// by line on "header: value" shapes before giving up.
func (s *Service) DropdownAnswers(ctx context.Context, image []byte) []DropdownAnswer {
	out, err := s.generate(ctx, s.gemini, "dropdown_answers", promptDropdownAnswers, image)
	if err != nil {
		s.log.Warn("dropdown answer extraction failed", "error", err)
		return nil
	}

	raw := sliceJSONArray(stripCodeBlock(out))
	var answers []DropdownAnswer
	if err := json.Unmarshal([]byte(raw), &answers); err == nil {
		return answers
	}

	text := s.RecognizeText(ctx, image)
	answers = answersFromColonLines(text)
	if len(answers) > 0 {
		s.log.Info("dropdown answers recovered from raw text", "count", len(answers))
	}
	return answers
}

// JustDropdownOptions reads labelled standalone dropdowns from an image
// that carries only option menus.
func (s *Service) JustDropdownOptions(ctx context.Context, image []byte) []LabelOptions {
	out, err := s.generate(ctx, s.gemini, "just_dropdown_options", promptJustDropdownOptions, image)
	if err != nil {
		s.log.Warn("just-dropdown extraction failed", "error", err)
		return nil
	}

	raw := sliceJSONArray(stripCodeBlock(out))
	var options []LabelOptions
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		s.log.Warn("just-dropdown parse failed", "error", err)
		return nil
	}
	return options
}

// PositionedDropdowns detects expanded dropdown regions with pixel
// coordinates on a screenshot.
func (s *Service) PositionedDropdowns(ctx context.Context, image []byte) []Dropdown {
	out, err := s.generate(ctx, s.claude, "positioned_dropdowns", promptPositionedDropdowns, image)
	if err != nil {
		s.log.Warn("positioned dropdown detection failed", "error", err)
		return nil
	}
	dropdowns := parsePositionedDropdowns(out)
	if len(dropdowns) == 0 {
		s.log.Warn("no dropdowns detected in positioned image")
	}
	return dropdowns
}

// BoxCoordinates detects the rectangular answer areas on a background
// image.
func (s *Service) BoxCoordinates(ctx context.Context, image []byte) []Box {
	out, err := s.generate(ctx, s.claude, "box_coordinates", promptBoxCoordinates, image)
	if err != nil {
		s.log.Warn("box coordinate detection failed", "error", err)
		return nil
	}
	boxes, err := parseBoxes(out)
	if err != nil {
		s.log.Warn("box coordinate parse failed", "error", err)
		return nil
	}
	return boxes
}

// PositionedPairs reads the sidebar columns and per-box answer texts
// from a positioned drag-and-drop image.
func (s *Service) PositionedPairs(ctx context.Context, image []byte) ([]Column, []PositionedPair) {
	out, err := s.generate(ctx, s.claude, "positioned_pairs", promptPositionedPairs, image)
	if err != nil {
		s.log.Warn("positioned pair extraction failed", "error", err)
		return nil, nil
	}
	columns, pairs, err := parsePositionedData(out)
	if err != nil {
		s.log.Warn("positioned pair parse failed", "error", err)
		return nil, nil
	}
	return columns, pairs
}
