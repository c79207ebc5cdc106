package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jtomasevic/synar/kernel"
)

func seedKernel(t *testing.T) *kernel.Kernel {
	t.Helper()
	k := kernel.NewKernel(nil)
	_, err := k.AddEdge("Inheritance", []*kernel.Term{kernel.Atom("sparrow"), kernel.Atom("bird")},
		&kernel.AddOptions{Truth: &kernel.TruthValue{Frequency: 0.9, Confidence: 0.8}})
	require.NoError(t, err)
	return k
}

func TestHealthCheck(t *testing.T) {
	s := New(seedKernel(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestGetEdgeFound(t *testing.T) {
	s := New(seedKernel(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/edges/Inheritance(sparrow,bird)", nil)
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var edge kernel.Hyperedge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &edge))
	require.Equal(t, kernel.EdgeID("Inheritance(sparrow,bird)"), edge.ID)
}

func TestGetEdgeNotFound(t *testing.T) {
	s := New(seedKernel(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/edges/nope", nil)
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBeliefs(t *testing.T) {
	s := New(seedKernel(t))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/edges/Inheritance(sparrow,bird)/beliefs", nil)
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var beliefs []*kernel.Belief
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &beliefs))
	require.Len(t, beliefs, 1)
}

func TestQueryByType(t *testing.T) {
	s := New(seedKernel(t))
	body, err := json.Marshal(queryRequest{
		Type: "Inheritance",
		Args: []EdgeRef{{Term: "sparrow"}, {Term: "bird"}},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var results []kernel.QueryResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
}

func TestAskRespondsWithExistingEdge(t *testing.T) {
	s := New(seedKernel(t))
	body, err := json.Marshal(askRequest{EdgeID: "Inheritance(sparrow,bird)", TimeoutMs: 50})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAskTimesOutOnUnknownEdge(t *testing.T) {
	s := New(seedKernel(t))
	body, err := json.Marshal(askRequest{EdgeID: "Inheritance(owl,bird)", TimeoutMs: 10})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	s.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusRequestTimeout, w.Code)
}
