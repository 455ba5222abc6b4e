// Package langdetect guesses the language of extracted text so the
// stemmer and stop words match it.
package langdetect

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Result describes a detected language.
type Result struct {
	Code       string  `json:"code" yaml:"code"` // ISO-639-1, lowercase
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Stemmer    string  `json:"stemmer" yaml:"stemmer"` // snowball language name
}

// English is returned when detection is inconclusive.
var English = Result{Code: "en", Confidence: 0, Stemmer: "english"}

// Only languages the snowball stemmer supports are candidates.
var stemmers = map[lingua.Language]string{
	lingua.English:   "english",
	lingua.French:    "french",
	lingua.Spanish:   "spanish",
	lingua.Russian:   "russian",
	lingua.Swedish:   "swedish",
	lingua.Bokmal:    "norwegian",
	lingua.Hungarian: "hungarian",
}

// sampleRunes bounds how much text is fed to the detector.
const sampleRunes = 4000

// Detector is safe for concurrent use. The underlying lingua detector is
// built on first use.
type Detector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// New returns a lazily built detector.
func New() *Detector {
	return &Detector{}
}

func (d *Detector) build() {
	languages := make([]lingua.Language, 0, len(stemmers))
	for l := range stemmers {
		languages = append(languages, l)
	}
	d.detector = lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		Build()
}

// Detect returns the most likely language of text, or English.
func (d *Detector) Detect(text string) Result {
	text = sample(text)
	if strings.TrimSpace(text) == "" {
		return English
	}
	d.once.Do(d.build)
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return English
	}
	return Result{
		Code:       strings.ToLower(language.IsoCode639_1().String()),
		Confidence: d.detector.ComputeLanguageConfidence(text, language),
		Stemmer:    stemmers[language],
	}
}

func sample(text string) string {
	runes := []rune(text)
	if len(runes) <= sampleRunes {
		return text
	}
	return string(runes[:sampleRunes])
}

// StemmerFor returns the snowball language of an ISO-639-1 code, or
// english for codes without a stemmer.
func StemmerFor(code string) string {
	for language, stemmer := range stemmers {
		if strings.EqualFold(language.IsoCode639_1().String(), code) {
			return stemmer
		}
	}
	return English.Stemmer
}
