package embedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

func TestNewEmbedder_BatchSizeDefault(t *testing.T) {
	e := NewEmbedder(nil, 0)
	if e.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d", e.batchSize, DefaultBatchSize)
	}

	e = NewEmbedder(nil, -3)
	if e.batchSize != DefaultBatchSize {
		t.Errorf("batchSize = %d, want %d for negative input", e.batchSize, DefaultBatchSize)
	}

	e = NewEmbedder(nil, 50)
	if e.batchSize != 50 {
		t.Errorf("batchSize = %d, want 50", e.batchSize)
	}
}

func TestDimension(t *testing.T) {
	e := NewEmbedder(nil, 0)
	if e.Dimension() != 1536 {
		t.Errorf("Dimension() = %d, want 1536", e.Dimension())
	}
}

func TestIsRateLimitError(t *testing.T) {
	if !isRateLimitError(&openai.Error{StatusCode: 429}) {
		t.Error("429 API errors are rate limits")
	}
	if isRateLimitError(&openai.Error{StatusCode: 500}) {
		t.Error("500 API errors are not rate limits")
	}
	if isRateLimitError(errors.New("plain error")) {
		t.Error("non-API errors are not rate limits")
	}
}

// stubEmbedder points an Embedder at a local server returning a fixed
// embeddings response body.
func stubEmbedder(t *testing.T, body string) *Embedder {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	oc := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
	)
	return NewEmbedder(&Client{client: &oc}, 0)
}

func TestEmbedOne_EmptyResponse(t *testing.T) {
	e := stubEmbedder(t, `{"object":"list","data":[],"model":"text-embedding-3-small","usage":{"prompt_tokens":0,"total_tokens":0}}`)

	_, err := e.EmbedOne(context.Background(), "query text")
	if err == nil {
		t.Fatal("expected an error for a response with no vectors")
	}
}

func TestEmbedOne_ReturnsVector(t *testing.T) {
	e := stubEmbedder(t, `{"object":"list","data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25]}],"model":"text-embedding-3-small","usage":{"prompt_tokens":2,"total_tokens":2}}`)

	vector, err := e.EmbedOne(context.Background(), "query text")
	if err != nil {
		t.Fatalf("EmbedOne failed: %v", err)
	}
	if len(vector) != 2 || vector[0] != 0.5 || vector[1] != -0.25 {
		t.Errorf("unexpected vector %v", vector)
	}
}

func TestToFloat32(t *testing.T) {
	in := []float64{0.25, -1.5, 0}
	out := toFloat32(in)
	if len(out) != len(in) {
		t.Fatalf("length %d, want %d", len(out), len(in))
	}
	for i := range in {
		if float64(out[i]) != in[i] {
			t.Errorf("index %d: %v != %v", i, out[i], in[i])
		}
	}
}
