package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator"

	perrors "github.com/matzehuels/phrasenet/pkg/errors"
	"github.com/matzehuels/phrasenet/pkg/graph"
	"github.com/matzehuels/phrasenet/pkg/pipeline"
	"github.com/matzehuels/phrasenet/pkg/stopwords"
)

// analyzeRequest holds the scalar form fields of POST /analyze.
type analyzeRequest struct {
	LinkingType string `validate:"required,oneof=orthographic syntactic"`
	Pattern     string
	MaxNodes    int    `validate:"min=0"`
	Annotator   string `validate:"required,max=64"`
}

type analyzeResponse struct {
	Status         string      `json:"status"`
	AnalysisResult graph.Graph `json:"analysis_result"`
}

type textResponse struct {
	Status string `json:"status"`
	Text   string `json:"text"`
	Length int    `json:"length"`
}

type annotatorInfo struct {
	Name   string `json:"name"`
	Loaded bool   `json:"loaded"`
}

type annotatorsResponse struct {
	Default    string          `json:"default"`
	Annotators []annotatorInfo `json:"annotators"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.writeError(w, r, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "could not read form"))
		return
	}

	req, err := s.parseAnalyzeRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	text, err := s.requestText(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		s.writeError(w, r, perrors.New(perrors.ErrCodeInvalidInput, "the extracted text is empty"))
		return
	}
	s.setLastText(text)

	hidden, ok := stopwords.Parse([]byte(r.FormValue("hidden_words")))
	if !ok {
		s.logger.Warn("ignoring malformed hidden_words", "request_id", RequestIDFromContext(r.Context()))
	}
	for _, word := range s.opts.Stopwords {
		hidden.Add(word)
	}

	res, err := s.runner.Analyze(r.Context(), pipeline.Options{
		Text:        text,
		LinkingType: req.LinkingType,
		Annotator:   req.Annotator,
		Pattern:     req.Pattern,
		MaxNodes:    req.MaxNodes,
		Stopwords:   hidden.Words(),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Status: "success", AnalysisResult: res.Graph})
}

func (s *Server) parseAnalyzeRequest(r *http.Request) (analyzeRequest, error) {
	req := analyzeRequest{
		LinkingType: strings.ToLower(strings.TrimSpace(r.FormValue("linking_type"))),
		Pattern:     r.FormValue("pattern"),
		MaxNodes:    s.opts.DefaultMaxNodes,
		Annotator:   strings.TrimSpace(r.FormValue("annotator")),
	}
	if req.LinkingType == "" {
		req.LinkingType = pipeline.DefaultLinkingType
	}
	if req.Annotator == "" {
		req.Annotator = s.opts.DefaultAnnotator
	}
	if v := strings.TrimSpace(r.FormValue("max_nodes")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, perrors.New(perrors.ErrCodeInvalidInput, "max_nodes must be an integer, got %q", v)
		}
		req.MaxNodes = n
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			if fe.Field() == "LinkingType" {
				return req, perrors.New(perrors.ErrCodeInvalidLinkingType,
					"invalid linking type %q: use 'orthographic' or 'syntactic'", req.LinkingType)
			}
			return req, perrors.New(perrors.ErrCodeInvalidInput, "invalid %s: failed %q check", fe.Field(), fe.Tag())
		}
		return req, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "invalid request")
	}
	return req, nil
}

// requestText returns text_content when present, otherwise the extracted
// text of the uploaded file.
func (s *Server) requestText(r *http.Request) (string, error) {
	if text := r.FormValue("text_content"); text != "" {
		return text, nil
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", perrors.New(perrors.ErrCodeInvalidInput, "no file or text snippet was provided")
		}
		return "", perrors.Wrap(perrors.ErrCodeInvalidFile, err, "could not read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", perrors.Wrap(perrors.ErrCodeInvalidFile, err, "could not read upload")
	}
	if s.extractor == nil {
		return "", perrors.New(perrors.ErrCodeUnsupported, "file uploads are disabled")
	}
	return s.extractor.Extract(r.Context(), header.Filename, data)
}

func (s *Server) handleLastText(w http.ResponseWriter, r *http.Request) {
	text, ok := s.LastText()
	if !ok {
		s.writeError(w, r, perrors.New(perrors.ErrCodeNotFound, "no text has been analyzed yet"))
		return
	}
	writeJSON(w, http.StatusOK, textResponse{Status: "success", Text: text, Length: utf8.RuneCountInString(text)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnnotators(w http.ResponseWriter, _ *http.Request) {
	resp := annotatorsResponse{Default: s.opts.DefaultAnnotator, Annotators: []annotatorInfo{}}
	for _, name := range s.registry.Choices() {
		resp.Annotators = append(resp.Annotators, annotatorInfo{Name: name, Loaded: s.registry.Loaded(name)})
	}
	writeJSON(w, http.StatusOK, resp)
}
