package textstats

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LexiconScorer scores a text as the mean polarity of the lexicon words it
// contains. A negator flips and halves the next scored word; an intensifier
// scales it.
type LexiconScorer struct {
	Words        map[string]float64
	Intensifiers map[string]float64
}

// Polarity implements Scorer. Texts with no lexicon words score 0.
func (l *LexiconScorer) Polarity(text string) float64 {
	text = urlRe.ReplaceAllString(strings.ToLower(strings.ReplaceAll(text, "’", "'")), " ")
	text = mentionRe.ReplaceAllString(text, " ")
	var sum float64
	n := 0
	mod := 1.0
	for _, w := range splitWords(text) {
		if negator(w) {
			mod *= -0.5
			continue
		}
		if k, ok := l.Intensifiers[w]; ok {
			mod *= k
			continue
		}
		p, ok := l.Words[w]
		if !ok {
			continue
		}
		sum += clamp(p * mod)
		n++
		mod = 1
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func negator(w string) bool {
	switch w {
	case "not", "no", "never", "cannot", "nothing", "nobody", "nor":
		return true
	}
	return strings.HasSuffix(w, "n't")
}

// lexiconFile is the on-disk layout. A bare word: polarity map is also
// accepted.
type lexiconFile struct {
	Words        map[string]float64 `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
}

// LoadLexicon reads a YAML lexicon. Polarities must lie in [-1, 1]; missing
// intensifiers fall back to the defaults.
func LoadLexicon(path string) (*LexiconScorer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var lf lexiconFile
	if err := yaml.Unmarshal(b, &lf); err != nil || lf.Words == nil {
		var flat map[string]float64
		if ferr := yaml.Unmarshal(b, &flat); ferr != nil {
			if err == nil {
				err = ferr
			}
			return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
		}
		lf = lexiconFile{Words: flat}
	}
	if len(lf.Words) == 0 {
		return nil, fmt.Errorf("lexicon %s has no words", path)
	}
	l := &LexiconScorer{Words: make(map[string]float64, len(lf.Words)), Intensifiers: lf.Intensifiers}
	for w, p := range lf.Words {
		if p < -1 || p > 1 {
			return nil, fmt.Errorf("lexicon %s: polarity for %q out of range: %v", path, w, p)
		}
		l.Words[strings.ToLower(strings.TrimSpace(w))] = p
	}
	if l.Intensifiers == nil {
		l.Intensifiers = defaultIntensifiers()
	}
	return l, nil
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *LexiconScorer {
	words := make(map[string]float64, len(defaultWords))
	for w, p := range defaultWords {
		words[w] = p
	}
	return &LexiconScorer{Words: words, Intensifiers: defaultIntensifiers()}
}

func defaultIntensifiers() map[string]float64 {
	return map[string]float64{
		"very":       1.3,
		"really":     1.2,
		"extremely":  1.5,
		"absolutely": 1.4,
		"incredibly": 1.4,
		"so":         1.2,
		"too":        1.2,
		"quite":      1.1,
		"fairly":     0.8,
		"slightly":   0.6,
		"somewhat":   0.7,
	}
}

var defaultWords = map[string]float64{
	"amazing":      0.6,
	"appreciate":   0.4,
	"awesome":      1.0,
	"beautiful":    0.85,
	"best":         1.0,
	"better":       0.5,
	"brilliant":    0.9,
	"calm":         0.3,
	"care":         0.2,
	"caring":       0.5,
	"clean":        0.37,
	"easy":         0.43,
	"efficient":    0.5,
	"excellent":    1.0,
	"fantastic":    0.4,
	"fast":         0.2,
	"free":         0.4,
	"friendly":     0.38,
	"glad":         0.5,
	"good":         0.7,
	"grateful":     0.6,
	"great":        0.8,
	"happy":        0.8,
	"helpful":      0.5,
	"hero":         0.5,
	"heroes":       0.5,
	"hope":         0.3,
	"important":    0.4,
	"improved":     0.4,
	"kind":         0.6,
	"love":         0.5,
	"lovely":       0.5,
	"nice":         0.6,
	"perfect":      1.0,
	"pleased":      0.5,
	"positive":     0.23,
	"proud":        0.8,
	"quick":        0.33,
	"recovered":    0.3,
	"safe":         0.5,
	"support":      0.2,
	"supportive":   0.5,
	"thank":        0.3,
	"thanks":       0.3,
	"well":         0.2,
	"wonderful":    1.0,
	"angry":        -0.5,
	"anxious":      -0.4,
	"awful":        -1.0,
	"bad":          -0.7,
	"broken":       -0.4,
	"cancelled":    -0.4,
	"crisis":       -0.6,
	"dangerous":    -0.6,
	"dead":         -0.2,
	"difficult":    -0.5,
	"disappointed": -0.75,
	"disgusting":   -1.0,
	"dreadful":     -0.8,
	"failed":       -0.5,
	"failing":      -0.5,
	"frustrated":   -0.7,
	"frustrating":  -0.4,
	"hate":         -0.8,
	"horrible":     -1.0,
	"ill":          -0.5,
	"late":         -0.3,
	"missed":       -0.3,
	"negative":     -0.3,
	"pain":         -0.5,
	"poor":         -0.4,
	"rude":         -0.6,
	"sad":          -0.5,
	"scared":       -0.6,
	"shocking":     -1.0,
	"sick":         -0.71,
	"slow":         -0.3,
	"struggling":   -0.4,
	"terrible":     -1.0,
	"unacceptable": -0.6,
	"unwell":       -0.5,
	"upset":        -0.5,
	"useless":      -0.5,
	"worried":      -0.4,
	"worse":        -0.4,
	"worst":        -1.0,
	"wrong":        -0.5,
}
