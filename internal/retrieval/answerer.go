// Package retrieval answers questions by similarity search over indexed
// chunks followed by grounded LLM generation.
package retrieval

import (
	"context"
	"math"
	"strings"

	"github.com/fauxlabs/faux-rag/internal/apperrors"
	"github.com/fauxlabs/faux-rag/internal/llm"
	"github.com/fauxlabs/faux-rag/internal/vectorindex"
)

// FallbackReply is returned when no indexed chunk matches the question.
// The LLM is not invoked in that case.
const FallbackReply = "I couldn't find any relevant information in the uploaded documents to answer your question. Try uploading documents related to your question first."

// previewLength is the rune budget for source previews.
const previewLength = 200

// QueryEmbedder embeds a single query string.
type QueryEmbedder interface {
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// Searcher performs top-k similarity search, optionally restricted to a
// set of document ids.
type Searcher interface {
	Search(ctx context.Context, vector []float32, topK int, documentIDs []string) ([]*vectorindex.ScoredEntry, error)
}

// TextGenerator produces the final reply from the assembled prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source cites one retrieved chunk in a response.
type Source struct {
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Preview    string  `json:"preview"`
	Score      float64 `json:"score"`
}

// Response is a complete answer with its citations.
type Response struct {
	Reply      string   `json:"reply"`
	Sources    []Source `json:"sources"`
	NumSources int      `json:"num_sources"`
}

// Answerer orchestrates embed -> search -> assemble -> generate.
type Answerer struct {
	embedder    QueryEmbedder
	searcher    Searcher
	generator   TextGenerator
	defaultTopK int
}

// NewAnswerer creates an Answerer. defaultTopK of 0 falls back to 5.
func NewAnswerer(embedder QueryEmbedder, searcher Searcher, generator TextGenerator, defaultTopK int) *Answerer {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Answerer{
		embedder:    embedder,
		searcher:    searcher,
		generator:   generator,
		defaultTopK: defaultTopK,
	}
}

// Answer resolves a question against the index. topK of 0 or less uses the
// default; a non-empty documentIDs set restricts retrieval to those
// documents. Zero matches is a normal outcome that returns FallbackReply
// without calling the LLM.
func (a *Answerer) Answer(ctx context.Context, question string, topK int, documentIDs []string) (*Response, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.Validationf("message must not be empty")
	}
	if topK <= 0 {
		topK = a.defaultTopK
	}

	vector, err := a.embedder.EmbedOne(ctx, question)
	if err != nil {
		return nil, apperrors.Gateway("embed query", err)
	}

	matches, err := a.searcher.Search(ctx, vector, topK, documentIDs)
	if err != nil {
		return nil, apperrors.Gateway("search index", err)
	}

	if len(matches) == 0 {
		return &Response{
			Reply:      FallbackReply,
			Sources:    []Source{},
			NumSources: 0,
		}, nil
	}

	// Full chunk texts in result order, separated by blank lines.
	texts := make([]string, len(matches))
	sources := make([]Source, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
		sources[i] = Source{
			Filename:   m.Filename,
			ChunkIndex: m.ChunkIndex,
			Preview:    preview(m.Text),
			Score:      roundScore(m.Score),
		}
	}
	contextBlock := strings.Join(texts, "\n\n")

	prompt := llm.BuildPrompt(contextBlock, question)
	reply, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, apperrors.Gateway("generate reply", err)
	}

	return &Response{
		Reply:      reply,
		Sources:    sources,
		NumSources: len(sources),
	}, nil
}

// preview truncates chunk text for display.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLength {
		return text
	}
	return string(runes[:previewLength]) + "..."
}

// roundScore rounds to 4 decimal places for display. Result ordering always
// uses the full-precision scores from the index.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
