package linking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/core/lexgraph"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// Mode selects how lemmas are linked.
type Mode string

const (
	ModeOrthographic Mode = "orthographic"
	ModeSyntactic    Mode = "syntactic"
)

// WindowSize is the number of consecutive lemmas considered together by
// orthographic linking.
const WindowSize = 5

// ErrMissingDependencies is returned by [Syntactic] when the document
// carries no dependency labels.
var ErrMissingDependencies = errors.New("annotation has no dependency data")

// ErrInvalidMode is returned by [ParseMode] for unknown modes.
var ErrInvalidMode = errors.New("invalid linking type")

// Modes lists the supported modes.
func Modes() []Mode { return []Mode{ModeOrthographic, ModeSyntactic} }

// ParseMode parses a mode name, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeOrthographic, ModeSyntactic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidMode, s, ModeOrthographic, ModeSyntactic)
	}
}

// Build links doc in the given mode.
func Build(mode Mode, doc *annotate.Document, stop stopwords.Set) (*lexgraph.Graph, error) {
	switch mode {
	case ModeOrthographic:
		return Orthographic(doc, stop), nil
	case ModeSyntactic:
		return Syntactic(doc, stop)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}
