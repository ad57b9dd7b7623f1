package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/config"
	"github.com/spacesedan/sentiflow-cli/internal/logging"
	"github.com/spacesedan/sentiflow-cli/internal/monitoring"
	"github.com/spacesedan/sentiflow-cli/internal/sentiment"
	"github.com/spacesedan/sentiflow-cli/internal/session"
	"github.com/spacesedan/sentiflow-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	v          = config.NewViper()
	cfg        *config.Config
	closeTrace = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:          "sentiment",
	Short:        "Classify the sentiment of free text with two models",
	Long:         "Scores each input with a lexicon polarity model and VADER, appends fully analyzed inputs to a CSV log and prints a session summary on exit.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "dev"
		}
		if err := config.LoadEnv(env); err != nil {
			slog.Debug("[Main] No .env file found, using OS environment",
				slog.String("error", err.Error()))
		}

		c, err := config.Load(v)
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		closeFn, err := logging.InitLogger(logging.Options{
			Level:     cfg.Log.Level,
			TracePath: cfg.Trace.Path,
		})
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		closeTrace = closeFn

		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		slog.Info("[Main] Welcome to the Sentiment Analysis Tool!")
		fmt.Fprint(out, "Welcome to the Sentiment Analysis Tool!\n")
		fmt.Fprintf(out, "Type '%s' to quit the program.\n\n", cfg.Session.ExitToken)

		sess, err := newSession(out)
		if err != nil {
			fmt.Fprint(out, "Failed to initialize the sentiment models. Exiting program.\n")
			return err
		}

		return sess.Run(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	cobra.OnFinalize(func() {
		_ = closeTrace()
		closeTrace = func() error { return nil }
	})

	flags := rootCmd.PersistentFlags()
	flags.String("records", "", "path to the CSV record log")
	flags.String("trace", "", "path to the diagnostic trace log")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("exit-token", "", "input that ends the session")
	flags.String("lexicon", "", "polarity lexicon YAML (default: embedded)")
	flags.Bool("strip-markdown", false, "strip markdown and links before scoring")

	bindings := map[string]string{
		"records.path":          "records",
		"trace.path":            "trace",
		"log.level":             "log-level",
		"session.exit_token":    "exit-token",
		"polarity.lexicon_path": "lexicon",
		"text.strip_markdown":   "strip-markdown",
	}
	for key, flag := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}

// newSession loads both models, checks they are ready and prepares the
// record log. Only model failures are returned; a header write failure is
// logged and the session still starts.
func newSession(out io.Writer) (*session.Session, error) {
	lexicon, err := sentiment.LoadLexicon(cfg.Polarity.LexiconPath)
	if err != nil {
		slog.Error("[Main] Failed to load polarity lexicon",
			slog.String("path", cfg.Polarity.LexiconPath),
			slog.String("error", err.Error()))
		return nil, eris.Wrap(err, "init polarity model")
	}
	polarity := sentiment.NewPolarityAnalyzer(lexicon)
	slog.Info("[Main] Initialized polarity analyzer",
		slog.Int("lexicon_words", len(lexicon.Words)))

	vader := sentiment.NewVADERAnalyzer()
	slog.Info("[Main] Initialized VADER analyzer")

	if err := monitoring.CheckModelsReady(polarity, vader); err != nil {
		return nil, eris.Wrap(err, "check models")
	}

	records := store.NewCSVLog(cfg.Records.Path)
	if _, err := records.Init(); err != nil {
		slog.Error("[Main] Failed to initialize record log",
			slog.String("path", records.Path()),
			slog.String("error", err.Error()))
	}

	var normalize func(string) string
	if cfg.Text.StripMarkdown {
		normalize = sentiment.ConvertMarkdownToText
	}

	return session.New(session.Options{
		Polarity:  polarity,
		VADER:     vader,
		Sink:      records,
		Out:       out,
		ExitToken: cfg.Session.ExitToken,
		Normalize: normalize,
		SinkName:  records.Path(),
	})
}
