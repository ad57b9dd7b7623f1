package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spacesedan/sentiflow-cli/internal/models"
)

// Counters tallies labels for one session. A fully analyzed input credits
// both models' labels, so the total is twice the number of successes plus
// the number of failures.
type Counters map[models.Label]int

func NewCounters() Counters {
	c := make(Counters, len(models.Labels))
	for _, label := range models.Labels {
		c[label] = 0
	}
	return c
}

func (c Counters) Credit(record models.AnalysisRecord) {
	c[record.Polarity.Label]++
	c[record.VADER.Label]++
}

func (c Counters) CreditFailure() {
	c[models.LabelError]++
}

func (c Counters) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

func (c Counters) Clone() Counters {
	out := make(Counters, len(c))
	for label, n := range c {
		out[label] = n
	}
	return out
}

// Render writes one "Label: count" line per label in summary order.
func (c Counters) Render(w io.Writer) {
	for _, label := range models.Labels {
		fmt.Fprintf(w, "%s: %d\n", label, c[label])
	}
}

func (c Counters) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(models.Labels))
	for _, label := range models.Labels {
		attrs = append(attrs, slog.Int(label.String(), c[label]))
	}
	return slog.GroupValue(attrs...)
}
