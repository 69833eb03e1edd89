package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tagserve/tagserve/internal/artifacts"
	"go.uber.org/zap"
)

type stubSource struct{ id string }

func (s stubSource) RunID() (string, error) { return s.id, nil }

type stubLoader struct{ bundle *artifacts.Bundle }

func (l stubLoader) Load(ctx context.Context, runID string) (*artifacts.Bundle, error) {
	return l.bundle, nil
}

type fakePredictor struct {
	err error
}

func (p fakePredictor) Predict(ctx context.Context, texts []string, bundle *artifacts.Bundle) ([]artifacts.Prediction, error) {
	if p.err != nil {
		return nil, p.err
	}
	predictions := make([]artifacts.Prediction, len(texts))
	for i, text := range texts {
		predictions[i] = artifacts.Prediction{
			InputText:     text,
			PredictedTags: []string{fmt.Sprintf("tag-%d", i)},
		}
	}
	return predictions, nil
}

func testBundle() *artifacts.Bundle {
	return &artifacts.Bundle{
		RunID: "run-42",
		Params: map[string]any{
			"lr":     0.01,
			"epochs": float64(10),
		},
		Performance: map[string]any{
			"overall": map[string]any{
				"precision": 0.91,
				"recall":    0.84,
			},
			"slices": map[string]any{
				"short_text": map[string]any{"f1": 0.7},
			},
		},
	}
}

func newTestServer(t *testing.T, predictor fakePredictor) *Server {
	t.Helper()

	store := artifacts.NewStore(zap.NewNop())
	_, err := store.Initialize(context.Background(), stubSource{id: "run-42"}, stubLoader{bundle: testBundle()})
	require.NoError(t, err)

	return NewServer(&Config{
		Port:      8080,
		Store:     store,
		Predictor: predictor,
		Logger:    zap.NewNop(),
	})
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestHealthCheck(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	req.Equal("OK", envelope["message"])
	req.Equal("GET", envelope["method"])
	req.Equal(float64(http.StatusOK), envelope["status-code"])
	req.Equal(map[string]any{}, envelope["data"])

	// Exactly the envelope fields, nothing else
	req.Len(envelope, 6)
	for _, field := range []string{"message", "method", "status-code", "timestamp", "url", "data"} {
		req.Contains(envelope, field)
	}

	// Timestamp parses as a valid date-time
	_, err := time.Parse(time.RFC3339, envelope["timestamp"].(string))
	req.NoError(err)
}

func TestEnvelopeCarriesRequestURL(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/performance?filter=overall.precision", "")

	envelope := decodeEnvelope(t, w)
	url, ok := envelope["url"].(string)
	req.True(ok)
	req.Contains(url, "/performance?filter=overall.precision")
	req.True(strings.HasPrefix(url, "http://"))
}

func TestPredict(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodPost, "/predict",
		`{"texts":[{"text":"first"},{"text":"second"},{"text":"third"}]}`)
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	predictions := data["predictions"].([]any)

	// One prediction per input text, in input order
	req.Len(predictions, 3)
	req.Equal("first", predictions[0].(map[string]any)["input_text"])
	req.Equal("second", predictions[1].(map[string]any)["input_text"])
	req.Equal("third", predictions[2].(map[string]any)["input_text"])
}

func TestPredict_EmptyTextList(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodPost, "/predict", `{"texts":[]}`)
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	req.Empty(data["predictions"])
}

func TestPredict_MissingTextsField(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodPost, "/predict", `{}`)
	req.Equal(http.StatusBadRequest, w.Code)
}

func TestPredict_PredictorFailurePropagates(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{err: errors.New("model server down")})

	w := do(s, http.MethodPost, "/predict", `{"texts":[{"text":"anything"}]}`)
	req.Equal(http.StatusInternalServerError, w.Code)

	// Faults bypass the envelope
	var resp ErrorResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	req.Equal("PREDICTION_FAILED", resp.Error.Code)
}

func TestParams(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/params", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	params := data["params"].(map[string]any)
	req.Equal(0.01, params["lr"])
	req.Equal(float64(10), params["epochs"])
}

func TestParam_Known(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/params/lr", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	params := data["params"].(map[string]any)
	req.Equal(0.01, params["lr"])
}

func TestParam_UnknownYieldsEmptyString(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/params/no_such_param", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	params := data["params"].(map[string]any)
	req.Equal("", params["no_such_param"])
}

func TestPerformance_Unfiltered(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/performance", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	performance := data["performance"].(map[string]any)
	req.Contains(performance, "overall")
	req.Contains(performance, "slices")
}

func TestPerformance_FilterKeyedByLiteralPath(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/performance?filter=overall.precision", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	performance := data["performance"].(map[string]any)

	// Keyed by the literal filter string, not reconstructed nesting
	req.Len(performance, 1)
	req.Equal(0.91, performance["overall.precision"])
}

func TestPerformance_UnknownFilterYieldsEmptyMapping(t *testing.T) {
	req := require.New(t)
	s := newTestServer(t, fakePredictor{})

	w := do(s, http.MethodGet, "/performance?filter=overall.precision.extra", "")
	req.Equal(http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	performance := data["performance"].(map[string]any)
	req.Equal(map[string]any{}, performance["overall.precision.extra"])
}

func TestUninitializedStoreSurfacesFault(t *testing.T) {
	req := require.New(t)

	s := NewServer(&Config{
		Port:      8080,
		Store:     artifacts.NewStore(zap.NewNop()),
		Predictor: fakePredictor{},
		Logger:    zap.NewNop(),
	})

	for _, target := range []string{"/params", "/params/lr", "/performance"} {
		w := do(s, http.MethodGet, target, "")
		req.Equal(http.StatusInternalServerError, w.Code, target)

		var resp ErrorResponse
		req.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		req.Equal("ARTIFACTS_UNAVAILABLE", resp.Error.Code)
	}

	w := do(s, http.MethodPost, "/predict", `{"texts":[{"text":"x"}]}`)
	req.Equal(http.StatusInternalServerError, w.Code)
}
