package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/internal/models"
	"github.com/spacesedan/sentiflow-cli/internal/sentiment"
)

const (
	DEFAULT_EXIT_TOKEN = "exit"
	PROMPT             = "Enter a sentence or review to analyze its sentiment: "

	// Longest console line accepted.
	MAX_INPUT_BYTES = 1 << 20
)

var ErrEmptyInput = eris.New("session: empty input")

type Step int

const (
	StepAnalyzed Step = iota // both models succeeded
	StepDegraded             // at least one model failed
	StepRejected             // blank input, nothing scored
	StepExit
)

func (s Step) String() string {
	switch s {
	case StepAnalyzed:
		return "analyzed"
	case StepDegraded:
		return "degraded"
	case StepRejected:
		return "rejected"
	case StepExit:
		return "exit"
	default:
		return "unknown"
	}
}

// RecordSink receives every fully analyzed input.
type RecordSink interface {
	Append(ctx context.Context, record models.AnalysisRecord) error
}

type Options struct {
	Polarity  sentiment.Analyzer
	VADER     sentiment.Analyzer
	Sink      RecordSink
	Out       io.Writer
	Logger    *slog.Logger
	ExitToken string
	// Normalize rewrites the text both models score. The record keeps the
	// original input.
	Normalize func(string) string
	// SinkName is shown to the user after a record is saved.
	SinkName string
}

// Session owns the counters for one interactive run. It is not safe for
// concurrent use; inputs are processed one at a time.
type Session struct {
	ID        uuid.UUID
	polarity  sentiment.Analyzer
	vader     sentiment.Analyzer
	sink      RecordSink
	out       io.Writer
	logger    *slog.Logger
	exitToken string
	normalize func(string) string
	sinkName  string
	counters  Counters
}

func New(opts Options) (*Session, error) {
	if opts.Polarity == nil || opts.VADER == nil {
		return nil, eris.New("session: both analyzers are required")
	}
	if opts.Sink == nil {
		return nil, eris.New("session: record sink is required")
	}

	id := uuid.New()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	exitToken := strings.TrimSpace(opts.ExitToken)
	if exitToken == "" {
		exitToken = DEFAULT_EXIT_TOKEN
	}

	return &Session{
		ID:        id,
		polarity:  opts.Polarity,
		vader:     opts.VADER,
		sink:      opts.Sink,
		out:       out,
		logger:    logger.With(slog.String("session_id", id.String())),
		exitToken: exitToken,
		normalize: opts.Normalize,
		sinkName:  opts.SinkName,
		counters:  NewCounters(),
	}, nil
}

func (s *Session) ExitToken() string {
	return s.exitToken
}

// Counters returns a snapshot of the session tallies.
func (s *Session) Counters() Counters {
	return s.counters.Clone()
}

// Process handles one line of input. It never returns an error: scoring and
// persistence failures are logged and reflected in the returned Step.
func (s *Session) Process(ctx context.Context, input string) Step {
	text := strings.TrimSpace(input)

	if strings.EqualFold(text, s.exitToken) {
		return StepExit
	}

	return s.Analyze(ctx, text)
}

// Analyze scores one input without treating it as a possible exit token.
func (s *Session) Analyze(ctx context.Context, input string) Step {
	text := strings.TrimSpace(input)
	if text == "" {
		return s.reject(text)
	}

	scored := text
	if s.normalize != nil {
		scored = strings.TrimSpace(s.normalize(text))
		if scored == "" {
			return s.reject(text)
		}
	}

	polarity := sentiment.Classify(s.logger, s.polarity, scored)
	fmt.Fprintf(s.out, "\n[%s] Sentiment: %s\n", polarity.Model, polarity.Label)
	fmt.Fprintf(s.out, "[%s] Polarity: %v\n", polarity.Model, polarity.Result.Score)
	fmt.Fprintf(s.out, "[%s] Subjectivity: %v\n\n", polarity.Model, polarity.Result.Subjectivity)

	vader := sentiment.Classify(s.logger, s.vader, scored)
	fmt.Fprintf(s.out, "[%s] Sentiment: %s\n", vader.Model, vader.Label)
	fmt.Fprintf(s.out, "[%s] Compound Score: %v\n\n", vader.Model, vader.Result.Score)

	record, ok := Reconcile(text, polarity, vader)
	if !ok {
		s.counters.CreditFailure()
		s.logger.Warn("[Session] Analysis degraded, results not saved",
			slog.String("text", text),
			slog.String("step", StepDegraded.String()),
			slog.String("polarity_label", polarity.Label.String()),
			slog.String("vader_label", vader.Label.String()))
		fmt.Fprint(s.out, "An error occurred during analysis. Results not saved.\n\n")
		return StepDegraded
	}

	// Counters are credited before the write; a lost record does not undo them.
	s.counters.Credit(record)

	if err := s.sink.Append(ctx, record); err != nil {
		s.logger.Error("[Session] Failed to save analysis results",
			slog.String("text", text),
			slog.String("error", err.Error()))
		fmt.Fprint(s.out, "Analysis results could not be saved.\n\n")
		return StepAnalyzed
	}

	s.logger.Info("[Session] Saved analysis results",
		slog.String("text", text))
	if s.sinkName != "" {
		fmt.Fprintf(s.out, "Analysis results saved to '%s'.\n\n", s.sinkName)
	} else {
		fmt.Fprint(s.out, "Analysis results saved.\n\n")
	}
	return StepAnalyzed
}

func (s *Session) reject(text string) Step {
	s.logger.Warn("[Session] Empty input detected",
		slog.String("text", text),
		slog.String("step", StepRejected.String()),
		slog.String("error", ErrEmptyInput.Error()))
	fmt.Fprint(s.out, "Empty input detected. Please enter a valid sentence or review.\n\n")
	return StepRejected
}

// Run reads one input per line from in until the exit token or end of input,
// then prints the session summary.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), MAX_INPUT_BYTES)

	for {
		fmt.Fprint(s.out, PROMPT)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				s.logger.Error("[Session] Failed to read input",
					slog.String("error", err.Error()))
				s.Finish()
				return eris.Wrap(err, "session: read input")
			}
			s.logger.Info("[Session] End of input")
			fmt.Fprintln(s.out)
			s.Finish()
			return nil
		}

		step := s.Process(ctx, scanner.Text())
		s.logger.Debug("[Session] Input processed",
			slog.String("step", step.String()))
		if step == StepExit {
			s.logger.Info("[Session] User initiated exit")
			s.Finish()
			return nil
		}
	}
}

// Finish prints the summary of all four counters.
func (s *Session) Finish() {
	fmt.Fprint(s.out, "\nSession Summary:\n")
	s.counters.Render(s.out)
	fmt.Fprint(s.out, "Thank you for using the Sentiment Analysis Tool!\n")

	s.logger.Info("[Session] Exiting the sentiment analysis tool",
		slog.Any("counts", s.counters))
}
