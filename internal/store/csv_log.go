package store

import (
	"context"
	"encoding/csv"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/internal/models"
)

const DEFAULT_RECORDS_FILE = "sentiment_results.csv"

// Header is the column order of every row in the record log.
var Header = []string{
	"text",
	"polarity_label",
	"polarity_score",
	"subjectivity_score",
	"vader_label",
	"vader_compound",
}

// CSVLog is an append-only CSV file of analysis records. The file is opened
// per call and closed again before returning.
type CSVLog struct {
	path string
}

func NewCSVLog(path string) *CSVLog {
	if path == "" {
		path = DEFAULT_RECORDS_FILE
	}
	return &CSVLog{path: path}
}

func (l *CSVLog) Path() string {
	return l.path
}

// Init writes the header row if the file does not exist yet. An existing file
// is left untouched and its header is not checked.
func (l *CSVLog) Init() (bool, error) {
	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, eris.Wrapf(err, "store: create %s", l.path)
	}
	defer file.Close()

	if err := writeRow(file, Header); err != nil {
		return false, eris.Wrapf(err, "store: write header to %s", l.path)
	}

	slog.Info("[CSVLog] Initialized record log with headers",
		slog.String("path", l.path))
	return true, nil
}

func (l *CSVLog) Append(ctx context.Context, record models.AnalysisRecord) error {
	if err := ctx.Err(); err != nil {
		return eris.Wrap(err, "store: append canceled")
	}

	file, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return eris.Wrapf(err, "store: open %s", l.path)
	}

	if err := writeRow(file, RecordToRow(record)); err != nil {
		file.Close()
		return eris.Wrapf(err, "store: append to %s", l.path)
	}

	if err := file.Close(); err != nil {
		return eris.Wrapf(err, "store: close %s", l.path)
	}
	return nil
}

// RecordToRow lays a record out in Header order.
func RecordToRow(record models.AnalysisRecord) []string {
	return []string{
		record.Text,
		record.Polarity.Label.String(),
		formatFloat(record.Polarity.Result.Score),
		formatFloat(record.Polarity.Result.Subjectivity),
		record.VADER.Label.String(),
		formatFloat(record.VADER.Result.Score),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeRow(file *os.File, row []string) error {
	w := csv.NewWriter(file)
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
