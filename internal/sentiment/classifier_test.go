package sentiment

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/spacesedan/sentiflow-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	name   string
	result models.ScoreResult
	err    error
	panics bool
	label  func(models.ScoreResult) models.Label
}

func (s *stubAnalyzer) Name() string { return s.name }

func (s *stubAnalyzer) Score(text string) (models.ScoreResult, error) {
	if s.panics {
		panic("lexicon exploded")
	}
	return s.result, s.err
}

func (s *stubAnalyzer) Label(r models.ScoreResult) models.Label {
	return s.label(r)
}

func newTraceLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLabelFromPolarity(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     models.Label
	}{
		{"exact zero is neutral", 0.0, models.LabelNeutral},
		{"tiny positive", 0.0001, models.LabelPositive},
		{"tiny negative", -0.0001, models.LabelNegative},
		{"max", 1.0, models.LabelPositive},
		{"min", -1.0, models.LabelNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelFromPolarity(tt.polarity))
		})
	}
}

func TestLabelFromCompound(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		want     models.Label
	}{
		{"upper bound inclusive", 0.05, models.LabelPositive},
		{"lower bound inclusive", -0.05, models.LabelNegative},
		{"just inside upper", 0.049, models.LabelNeutral},
		{"just inside lower", -0.049, models.LabelNeutral},
		{"zero", 0.0, models.LabelNeutral},
		{"strong positive", 0.8, models.LabelPositive},
		{"strong negative", -0.8, models.LabelNegative},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LabelFromCompound(tt.compound))
		})
	}
}

func TestClassifySuccess(t *testing.T) {
	logger, trace := newTraceLogger()
	a := &stubAnalyzer{
		name:   MODEL_POLARITY,
		result: models.ScoreResult{Score: 0.4, Subjectivity: 0.9, HasSubjectivity: true, OK: true},
		label:  func(r models.ScoreResult) models.Label { return LabelFromPolarity(r.Score) },
	}

	outcome := Classify(logger, a, "pretty nice")

	assert.Equal(t, MODEL_POLARITY, outcome.Model)
	assert.Equal(t, models.LabelPositive, outcome.Label)
	assert.False(t, outcome.Failed())
	assert.InDelta(t, 0.4, outcome.Result.Score, 1e-9)
	assert.InDelta(t, 0.9, outcome.Result.Subjectivity, 1e-9)
	assert.Contains(t, trace.String(), "pretty nice")
	assert.Contains(t, trace.String(), "label=Positive")
	assert.Contains(t, trace.String(), "subjectivity=0.9")
}

func TestClassifyScoringErrorDegrades(t *testing.T) {
	logger, trace := newTraceLogger()
	a := &stubAnalyzer{
		name:   MODEL_VADER,
		result: models.ScoreResult{Score: 0.7, OK: true},
		err:    errors.New("tokenizer failed"),
		label:  func(r models.ScoreResult) models.Label { return LabelFromCompound(r.Score) },
	}

	outcome := Classify(logger, a, "some text")

	assert.Equal(t, models.LabelError, outcome.Label)
	assert.True(t, outcome.Failed())
	assert.Equal(t, MODEL_VADER, outcome.Model)
	assert.Zero(t, outcome.Result.Score)
	assert.Zero(t, outcome.Result.Subjectivity)
	assert.Contains(t, trace.String(), "level=ERROR")
	assert.Contains(t, trace.String(), "tokenizer failed")
}

func TestClassifyRecoversPanic(t *testing.T) {
	logger, trace := newTraceLogger()
	a := &stubAnalyzer{name: MODEL_VADER, panics: true}

	var outcome models.ClassificationOutcome
	require.NotPanics(t, func() {
		outcome = Classify(logger, a, "boom")
	})

	assert.Equal(t, models.LabelError, outcome.Label)
	assert.Zero(t, outcome.Result.Score)
	assert.Contains(t, trace.String(), "lexicon exploded")
}

func TestClassifyNotOKIsFailure(t *testing.T) {
	logger, _ := newTraceLogger()
	a := &stubAnalyzer{
		name:   MODEL_POLARITY,
		result: models.ScoreResult{Score: 0.3},
		label:  func(r models.ScoreResult) models.Label { return LabelFromPolarity(r.Score) },
	}

	outcome := Classify(logger, a, "text")

	assert.Equal(t, models.LabelError, outcome.Label)
	assert.Zero(t, outcome.Result.Score)
}

func TestClassifyNilLoggerUsesDefault(t *testing.T) {
	a := &stubAnalyzer{
		name:   MODEL_VADER,
		result: models.ScoreResult{Score: -0.3, OK: true},
		label:  func(r models.ScoreResult) models.Label { return LabelFromCompound(r.Score) },
	}

	outcome := Classify(nil, a, "awful")
	assert.Equal(t, models.LabelNegative, outcome.Label)
}
