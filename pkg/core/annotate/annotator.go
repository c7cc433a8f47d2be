package annotate

import "context"

// Well-known annotator choices.
const (
	ChoiceBuiltin = "builtin"
	ChoiceSpacy   = "spacy"
	ChoiceStanza  = "stanza"
)

// Annotator turns raw text into annotated tokens. Implementations must be
// safe for concurrent use.
type Annotator interface {
	// Name returns the choice identifier this annotator was loaded for.
	Name() string

	// Capabilities reports what the annotator produces.
	Capabilities() Capabilities

	// Annotate analyzes text. Returning an empty document is not an error.
	Annotate(ctx context.Context, text string) (*Document, error)
}

// Factory loads an annotator. It is called at most once per choice until
// the choice is reloaded.
type Factory func(ctx context.Context) (Annotator, error)
