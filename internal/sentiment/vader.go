package sentiment

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"github.com/jonreiter/govader"
	"github.com/rotisserie/eris"
	"github.com/russross/blackfriday/v2"
	"github.com/spacesedan/sentiflow-cli/internal/models"
)

const (
	MODEL_VADER = "VADER"

	// VADER dead-band; both bounds are inclusive.
	VADER_POSITIVE_THRESHOLD = 0.05
	VADER_NEGATIVE_THRESHOLD = -0.05
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)

	vaderInstance *govader.SentimentIntensityAnalyzer
	vaderOnce     sync.Once
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	input = urlPattern.ReplaceAllString(input, "")

	return strings.Join(strings.Fields(input), " ")
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := stripTags(string(output))
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func stripTags(html string) string {
	return tagPattern.ReplaceAllString(html, " ")
}

// LabelFromCompound applies the VADER dead-band around zero.
func LabelFromCompound(compound float64) models.Label {
	switch {
	case compound >= VADER_POSITIVE_THRESHOLD:
		return models.LabelPositive
	case compound <= VADER_NEGATIVE_THRESHOLD:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

type VADERAnalyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// NewVADERAnalyzer shares one govader analyzer per process; building the
// lexicon is the expensive part.
func NewVADERAnalyzer() *VADERAnalyzer {
	vaderOnce.Do(func() {
		vaderInstance = govader.NewSentimentIntensityAnalyzer()
	})
	return &VADERAnalyzer{sia: vaderInstance}
}

func (v *VADERAnalyzer) Name() string {
	return MODEL_VADER
}

func (v *VADERAnalyzer) Score(text string) (models.ScoreResult, error) {
	if v.sia == nil {
		return models.ScoreResult{}, eris.Wrap(ErrModelNotReady, "sentiment: vader analyzer not initialized")
	}

	scores := v.sia.PolarityScores(text)
	if math.IsNaN(scores.Compound) || math.IsInf(scores.Compound, 0) {
		return models.ScoreResult{}, eris.Errorf("sentiment: vader produced invalid compound %v", scores.Compound)
	}

	return models.ScoreResult{Score: scores.Compound, OK: true}, nil
}

func (v *VADERAnalyzer) Label(result models.ScoreResult) models.Label {
	return LabelFromCompound(result.Score)
}
