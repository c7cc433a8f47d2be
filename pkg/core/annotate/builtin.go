package annotate

import (
	"context"
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Builtin is the tokenizer-only annotator. Lemmas are the lower-cased
// surface forms; no POS tags, stopword flags, or dependencies are produced.
type Builtin struct{}

// NewBuiltin creates the builtin annotator.
func NewBuiltin() *Builtin { return &Builtin{} }

func (*Builtin) Name() string { return ChoiceBuiltin }

func (*Builtin) Capabilities() Capabilities { return Capabilities{} }

// Annotate splits text into words and returns them as a single sentence.
func (*Builtin) Annotate(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text = cases.Lower(language.Und).String(norm.NFC.String(text))

	words := wordRE.FindAllString(text, -1)
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w, Lemma: w}
	}
	doc := &Document{}
	if len(tokens) > 0 {
		doc.Sentences = []Sentence{{Tokens: tokens}}
	}
	return doc, nil
}
