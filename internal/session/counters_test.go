package session

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/spacesedan/sentiflow-cli/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNewCountersStartsAtZero(t *testing.T) {
	c := NewCounters()

	assert.Len(t, c, len(models.Labels))
	for _, label := range models.Labels {
		assert.Equal(t, 0, c[label])
	}
}

func TestCreditCountsBothModels(t *testing.T) {
	c := NewCounters()

	c.Credit(models.AnalysisRecord{
		Polarity: models.ClassificationOutcome{Label: models.LabelPositive},
		VADER:    models.ClassificationOutcome{Label: models.LabelPositive},
	})
	c.Credit(models.AnalysisRecord{
		Polarity: models.ClassificationOutcome{Label: models.LabelNeutral},
		VADER:    models.ClassificationOutcome{Label: models.LabelNegative},
	})

	assert.Equal(t, 2, c[models.LabelPositive])
	assert.Equal(t, 1, c[models.LabelNeutral])
	assert.Equal(t, 1, c[models.LabelNegative])
	assert.Equal(t, 0, c[models.LabelError])
	assert.Equal(t, 4, c.Total())
}

func TestCreditFailureCountsOnce(t *testing.T) {
	c := NewCounters()
	c.CreditFailure()

	assert.Equal(t, 1, c[models.LabelError])
	assert.Equal(t, 1, c.Total())
}

func TestRenderIsOrdered(t *testing.T) {
	c := NewCounters()
	c[models.LabelError] = 3
	c[models.LabelPositive] = 1

	var buf bytes.Buffer
	c.Render(&buf)

	assert.Equal(t, "Positive: 1\nNegative: 0\nNeutral: 0\nError: 3\n", buf.String())
}

func TestCountersLogValue(t *testing.T) {
	c := NewCounters()
	c[models.LabelNeutral] = 2

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("summary", slog.Any("counts", c))

	assert.Contains(t, buf.String(), "counts.Positive=0 counts.Negative=0 counts.Neutral=2 counts.Error=0")
}
