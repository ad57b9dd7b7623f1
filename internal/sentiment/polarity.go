package sentiment

import (
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"github.com/spacesedan/sentiflow-cli/internal/models"
)

const (
	MODEL_POLARITY = "Polarity"

	// Polarity of a word following a negation is flipped and halved.
	NEGATION_FACTOR = -0.5
)

// LabelFromPolarity splits exactly at zero; there is no dead-band.
func LabelFromPolarity(polarity float64) models.Label {
	switch {
	case polarity > 0:
		return models.LabelPositive
	case polarity < 0:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

type PolarityAnalyzer struct {
	lexicon *Lexicon
}

func NewPolarityAnalyzer(lexicon *Lexicon) *PolarityAnalyzer {
	return &PolarityAnalyzer{lexicon: lexicon}
}

func (p *PolarityAnalyzer) Name() string {
	return MODEL_POLARITY
}

// Score averages the polarity and subjectivity of every lexicon word found in
// text. Text with no known words scores 0 / 0.
func (p *PolarityAnalyzer) Score(text string) (models.ScoreResult, error) {
	if p.lexicon == nil || len(p.lexicon.Words) == 0 {
		return models.ScoreResult{}, eris.Wrap(ErrModelNotReady, "sentiment: polarity lexicon not loaded")
	}

	var (
		assessments []Entry
		multiplier  = 1.0
		negated     bool
	)

	for _, token := range tokenize(text) {
		switch {
		case token == "!":
			if n := len(assessments); n > 0 {
				assessments[n-1].Polarity *= p.lexicon.Exclamation
			}
		case token == ".":
			multiplier, negated = 1.0, false
		case p.isNegation(token):
			negated = true
		default:
			if factor, ok := p.lexicon.Intensifiers[token]; ok {
				multiplier *= factor
				continue
			}
			entry, ok := p.lexicon.Words[token]
			if !ok {
				continue
			}
			entry.Polarity *= multiplier
			entry.Subjectivity *= multiplier
			if negated {
				entry.Polarity *= NEGATION_FACTOR
			}
			assessments = append(assessments, entry)
			multiplier, negated = 1.0, false
		}
	}

	if len(assessments) == 0 {
		return models.ScoreResult{HasSubjectivity: true, OK: true}, nil
	}

	var polarity, subjectivity float64
	for _, a := range assessments {
		polarity += a.Polarity
		subjectivity += a.Subjectivity
	}
	n := float64(len(assessments))

	return models.ScoreResult{
		Score:           clamp(polarity/n, -1, 1),
		Subjectivity:    clamp(subjectivity/n, 0, 1),
		HasSubjectivity: true,
		OK:              true,
	}, nil
}

func (p *PolarityAnalyzer) Label(result models.ScoreResult) models.Label {
	return LabelFromPolarity(result.Score)
}

func (p *PolarityAnalyzer) isNegation(token string) bool {
	_, ok := p.lexicon.Negations[token]
	return ok
}

// tokenize lowercases text into words, keeping "!" as its own token and
// collapsing clause punctuation into ".". Contractions ending in n't are split
// so the negation stands alone.
func tokenize(text string) []string {
	var (
		tokens []string
		word   strings.Builder
	)

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := strings.Trim(word.String(), "'")
		word.Reset()
		if w == "" {
			return
		}
		if stem, ok := strings.CutSuffix(w, "n't"); ok && stem != "" {
			tokens = append(tokens, stem, "n't")
			return
		}
		tokens = append(tokens, w)
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’':
			if r == '’' {
				r = '\''
			}
			word.WriteRune(r)
		case r == '!':
			flush()
			tokens = append(tokens, "!")
		case r == '.' || r == ',' || r == ';' || r == ':' || r == '?':
			flush()
			tokens = append(tokens, ".")
		default:
			flush()
		}
	}
	flush()

	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
