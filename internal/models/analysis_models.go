package models

type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
	LabelError    Label = "Error"
)

// Labels lists every label in summary order.
var Labels = []Label{LabelPositive, LabelNegative, LabelNeutral, LabelError}

func (l Label) String() string {
	return string(l)
}

// ScoreResult is the raw output of one scoring model for one input.
// Subjectivity is only populated by the polarity model.
type ScoreResult struct {
	Score           float64
	Subjectivity    float64
	HasSubjectivity bool
	OK              bool
}

type ClassificationOutcome struct {
	Model  string
	Label  Label
	Result ScoreResult
}

func (o ClassificationOutcome) Failed() bool {
	return o.Label == LabelError
}

// AnalysisRecord is one persisted row: the input plus both model outcomes.
// Only built when neither outcome failed.
type AnalysisRecord struct {
	Text     string
	Polarity ClassificationOutcome
	VADER    ClassificationOutcome
}
