package sentiment

import (
	_ "embed"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon/polarity.yaml
var defaultLexicon []byte

// Entry is the polarity and subjectivity a single word carries.
type Entry struct {
	Polarity     float64
	Subjectivity float64
}

type Lexicon struct {
	Words        map[string]Entry
	Intensifiers map[string]float64
	Negations    map[string]struct{}
	Exclamation  float64
}

type lexiconFile struct {
	Words        map[string][]float64 `yaml:"words"`
	Intensifiers map[string]float64   `yaml:"intensifiers"`
	Negations    []string             `yaml:"negations"`
	Exclamation  float64              `yaml:"exclamation"`
}

// LoadLexicon reads a polarity lexicon from path, or the embedded one when
// path is empty.
func LoadLexicon(path string) (*Lexicon, error) {
	data := defaultLexicon
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "sentiment: read lexicon %q", path)
		}
		data = raw
	}

	return ParseLexicon(data)
}

func ParseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "sentiment: parse lexicon")
	}

	if len(file.Words) == 0 {
		return nil, eris.Wrap(ErrModelNotReady, "sentiment: lexicon has no words")
	}

	lex := &Lexicon{
		Words:        make(map[string]Entry, len(file.Words)),
		Intensifiers: make(map[string]float64, len(file.Intensifiers)),
		Negations:    make(map[string]struct{}, len(file.Negations)),
		Exclamation:  file.Exclamation,
	}

	for word, values := range file.Words {
		if len(values) != 2 {
			return nil, eris.Errorf("sentiment: lexicon word %q needs [polarity, subjectivity]", word)
		}
		p, s := values[0], values[1]
		if p < -1 || p > 1 {
			return nil, eris.Errorf("sentiment: lexicon word %q polarity %v out of range", word, p)
		}
		if s < 0 || s > 1 {
			return nil, eris.Errorf("sentiment: lexicon word %q subjectivity %v out of range", word, s)
		}
		lex.Words[strings.ToLower(word)] = Entry{Polarity: p, Subjectivity: s}
	}

	for word, factor := range file.Intensifiers {
		if factor <= 0 {
			return nil, eris.Errorf("sentiment: intensifier %q must be positive", word)
		}
		lex.Intensifiers[strings.ToLower(word)] = factor
	}

	for _, word := range file.Negations {
		lex.Negations[strings.ToLower(word)] = struct{}{}
	}

	if lex.Exclamation == 0 {
		lex.Exclamation = 1
	}

	return lex, nil
}
