package annotate

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matzehuels/phrasenet/pkg/httputil"
)

// Remote is an annotator backed by an HTTP model service.
type Remote struct {
	name   string
	client *httputil.Client
	caps   Capabilities
}

type healthResponse struct {
	Status       string       `json:"status"`
	Model        string       `json:"model,omitempty"`
	Capabilities Capabilities `json:"capabilities"`
}

type annotateRequest struct {
	Text string `json:"text"`
}

type annotateResponse struct {
	Sentences []struct {
		Tokens []remoteToken `json:"tokens"`
	} `json:"sentences"`
}

type remoteToken struct {
	ID     int    `json:"id"`
	Text   string `json:"text"`
	Lemma  string `json:"lemma"`
	POS    string `json:"pos"`
	Dep    string `json:"dep"`
	Head   int    `json:"head"`
	IsStop bool   `json:"is_stop"`
}

// LoadRemote contacts the service at client's base URL and returns an
// annotator named name once the service reports healthy. The capabilities
// come from the health payload.
func LoadRemote(ctx context.Context, name string, client *httputil.Client) (*Remote, error) {
	var h healthResponse
	if err := client.GetJSON(ctx, "/health", &h); err != nil {
		return nil, fmt.Errorf("%s health check: %w", name, err)
	}
	if !strings.EqualFold(h.Status, "ok") {
		return nil, fmt.Errorf("%s health check: status %q", name, h.Status)
	}
	return &Remote{name: name, client: client, caps: h.Capabilities}, nil
}

func (r *Remote) Name() string { return r.name }

func (r *Remote) Capabilities() Capabilities { return r.caps }

// Annotate sends text to the service. Lemmas are lower-cased here so every
// annotator honors the same contract.
func (r *Remote) Annotate(ctx context.Context, text string) (*Document, error) {
	var resp annotateResponse
	if err := r.client.PostJSON(ctx, "/annotate", annotateRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("%s annotate: %w", r.name, err)
	}

	lower := cases.Lower(language.Und)
	doc := &Document{Sentences: make([]Sentence, 0, len(resp.Sentences))}
	for _, rs := range resp.Sentences {
		s := Sentence{Tokens: make([]Token, len(rs.Tokens))}
		for i, rt := range rs.Tokens {
			lemma := rt.Lemma
			if lemma == "" {
				lemma = rt.Text
			}
			s.Tokens[i] = Token{
				Text:  rt.Text,
				Lemma: lower.String(strings.TrimSpace(lemma)),
				POS:   ParsePOS(rt.POS),
				Dep:   normalizeDep(rt.Dep),
				Head:  rt.Head,
				Stop:  rt.IsStop,
			}
		}
		doc.Sentences = append(doc.Sentences, s)
	}
	return doc, nil
}

// normalizeDep lower-cases a dependency label. spaCy reports "ROOT" where
// Stanza reports "root".
func normalizeDep(dep string) string {
	return strings.ToLower(strings.TrimSpace(dep))
}
