package monitoring

import (
	"log/slog"

	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/internal/models"
	"github.com/spacesedan/sentiflow-cli/internal/sentiment"
)

// Every lexicon either model ships with rates this positive.
const PROBE_TEXT = "good"

// CheckAnalyzerReady scores the probe text and fails when the model cannot
// score or does not recognize it, which means its lexicon is missing.
func CheckAnalyzerReady(a sentiment.Analyzer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Wrapf(sentiment.ErrModelNotReady, "monitoring: %s probe panicked: %v", a.Name(), r)
		}
	}()

	result, err := a.Score(PROBE_TEXT)
	if err != nil {
		return eris.Wrapf(err, "monitoring: %s probe failed", a.Name())
	}
	if label := a.Label(result); label != models.LabelPositive {
		return eris.Wrapf(sentiment.ErrModelNotReady,
			"monitoring: %s probe scored %v (%s), lexicon unavailable", a.Name(), result.Score, label)
	}
	return nil
}

// CheckModelsReady stops at the first analyzer that is not ready.
func CheckModelsReady(analyzers ...sentiment.Analyzer) error {
	for _, a := range analyzers {
		if err := CheckAnalyzerReady(a); err != nil {
			slog.Error("[HealthCheck] Model is not ready",
				slog.String("model", a.Name()),
				slog.String("error", err.Error()))
			return err
		}
		slog.Info("[HealthCheck] Model ready", slog.String("model", a.Name()))
	}
	return nil
}
