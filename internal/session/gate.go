package session

import "github.com/spacesedan/sentiflow-cli/internal/models"

// Reconcile is all-or-nothing: a record comes back only when neither model
// failed.
func Reconcile(text string, polarity, vader models.ClassificationOutcome) (models.AnalysisRecord, bool) {
	if polarity.Failed() || vader.Failed() {
		return models.AnalysisRecord{}, false
	}

	return models.AnalysisRecord{
		Text:     text,
		Polarity: polarity,
		VADER:    vader,
	}, true
}
