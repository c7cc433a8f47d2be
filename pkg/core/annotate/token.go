package annotate

import "strings"

// POS is a Universal Dependencies part-of-speech tag.
type POS string

// Universal POS tags.
const (
	POSAdj   POS = "ADJ"
	POSAdp   POS = "ADP"
	POSAdv   POS = "ADV"
	POSAux   POS = "AUX"
	POSCConj POS = "CCONJ"
	POSDet   POS = "DET"
	POSIntj  POS = "INTJ"
	POSNoun  POS = "NOUN"
	POSNum   POS = "NUM"
	POSPart  POS = "PART"
	POSPron  POS = "PRON"
	POSPropN POS = "PROPN"
	POSPunct POS = "PUNCT"
	POSSConj POS = "SCONJ"
	POSSym   POS = "SYM"
	POSVerb  POS = "VERB"
	POSX     POS = "X"
	POSSpace POS = "SPACE"
)

// ParsePOS normalizes a tag reported by an annotator. Unknown tags map to
// POSX; an empty tag stays empty.
func ParsePOS(s string) POS {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch p := POS(s); p {
	case "":
		return ""
	case POSAdj, POSAdp, POSAdv, POSAux, POSCConj, POSDet, POSIntj, POSNoun,
		POSNum, POSPart, POSPron, POSPropN, POSPunct, POSSConj, POSSym, POSVerb,
		POSX, POSSpace:
		return p
	default:
		return POSX
	}
}

// IsPunct reports whether tokens with this tag are punctuation or
// whitespace and must be ignored by linking.
func (p POS) IsPunct() bool { return p == POSPunct || p == POSSpace }

// Token is one annotated word.
type Token struct {
	Text  string // Surface form
	Lemma string // Lower-cased lemma
	POS   POS    // Empty when the annotator does not tag
	Dep   string // Dependency label; empty when absent
	Head  int    // 1-based index of the head token in its sentence; 0 for root or none
	Stop  bool   // Annotator-flagged stopword
}

// Sentence is an ordered sequence of tokens. Head indices refer to
// positions inside the same sentence.
type Sentence struct {
	Tokens []Token
}

// HeadOf returns the head of the token at index i (0-based), or false when
// the token is a root or its head index is out of range.
func (s Sentence) HeadOf(i int) (Token, bool) {
	if i < 0 || i >= len(s.Tokens) {
		return Token{}, false
	}
	h := s.Tokens[i].Head
	if h <= 0 || h > len(s.Tokens) {
		return Token{}, false
	}
	return s.Tokens[h-1], true
}

// Document is the output of one annotation call.
type Document struct {
	Sentences []Sentence
}

// Tokens returns all tokens in document order.
func (d *Document) Tokens() []Token {
	var out []Token
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// TokenCount returns the number of tokens across all sentences.
func (d *Document) TokenCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	return n
}

// Lemmas returns the lemmas of all non-punctuation tokens in document order.
func (d *Document) Lemmas() []string {
	var out []string
	for _, s := range d.Sentences {
		for _, t := range s.Tokens {
			if !t.POS.IsPunct() && t.Lemma != "" {
				out = append(out, t.Lemma)
			}
		}
	}
	return out
}

// HasDependencies reports whether any token carries a dependency label.
func (d *Document) HasDependencies() bool {
	for _, s := range d.Sentences {
		for _, t := range s.Tokens {
			if t.Dep != "" {
				return true
			}
		}
	}
	return false
}

// Capabilities describes what an annotator produces.
type Capabilities struct {
	Lemmas       bool `json:"lemmas"`
	POS          bool `json:"pos"`
	Dependencies bool `json:"dependencies"`
}
