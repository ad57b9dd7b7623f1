package sentiment

import (
	"fmt"
	"log/slog"

	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/internal/models"
)

var ErrModelNotReady = eris.New("sentiment: model not ready")

// Analyzer is one scoring model together with its threshold policy.
// There are exactly two: PolarityAnalyzer and VADERAnalyzer.
type Analyzer interface {
	Name() string
	Score(text string) (models.ScoreResult, error)
	Label(result models.ScoreResult) models.Label
}

// Classify scores text with a and labels the result. A scorer error or panic
// never escapes; it comes back as an Error outcome with zeroed numbers.
func Classify(logger *slog.Logger, a Analyzer, text string) (outcome models.ClassificationOutcome) {
	if logger == nil {
		logger = slog.Default()
	}
	name := a.Name()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Classifier] Scoring panicked",
				slog.String("model", name),
				slog.String("text", text),
				slog.String("error", fmt.Sprint(r)))
			outcome = failedOutcome(name)
		}
	}()

	result, err := a.Score(text)
	if err == nil && !result.OK {
		err = eris.New("sentiment: scorer reported failure")
	}
	if err != nil {
		logger.Error("[Classifier] Scoring failed",
			slog.String("model", name),
			slog.String("text", text),
			slog.String("error", err.Error()))
		return failedOutcome(name)
	}

	outcome = models.ClassificationOutcome{
		Model:  name,
		Label:  a.Label(result),
		Result: result,
	}

	attrs := []any{
		slog.String("model", name),
		slog.String("text", text),
		slog.String("label", outcome.Label.String()),
		slog.Float64("score", result.Score),
	}
	if result.HasSubjectivity {
		attrs = append(attrs, slog.Float64("subjectivity", result.Subjectivity))
	}
	logger.Info("[Classifier] Analysis complete", attrs...)

	return outcome
}

func failedOutcome(model string) models.ClassificationOutcome {
	return models.ClassificationOutcome{
		Model: model,
		Label: models.LabelError,
	}
}
