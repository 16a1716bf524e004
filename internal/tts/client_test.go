package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelsmith/internal/config"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func fakeWAV(seconds float64) []byte {
	payload := int(seconds * wavBytesPerSec)
	return make([]byte, wavHeaderSize+payload)
}

func newTestClient(t *testing.T, endpoints []string) *Client {
	t.Helper()
	client, err := NewClient(config.SynthesisConfig{
		Endpoints:       endpoints,
		Timeout:         5,
		DefaultLanguage: "tr",
	})
	require.NoError(t, err)
	return client
}

func TestSynthesize_SendsNormalizedTextAndVoice(t *testing.T) {
	var got ttsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tts", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(fakeWAV(2.0))
	}))
	defer srv.Close()

	client := newTestClient(t, []string{srv.URL})
	result, err := client.Synthesize(context.Background(), "Merhaba dünya. Nasılsın?", "tr", Options{})
	require.NoError(t, err)

	assert.Equal(t, "Merhaba dünya.\nNasılsın?", got.Text)
	assert.Equal(t, "tr_TR-dfki-medium", got.Voice)
	assert.InDelta(t, 1.0, got.LengthScale, 1e-9)
	assert.InDelta(t, 0.667, got.NoiseScale, 1e-9)
	assert.InDelta(t, 0.8, got.NoiseW, 1e-9)
	assert.InDelta(t, 2.0, result.EstimatedDuration.Seconds(), 0.01)
}

func TestSynthesize_FailsOverToHealthyEndpoint(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer bad.Close()

	var goodCalls int
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goodCalls++
		w.Write(fakeWAV(0.5))
	}))
	defer good.Close()

	client := newTestClient(t, []string{bad.URL, good.URL})

	_, err := client.Synthesize(context.Background(), "Hello.", "en", Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, goodCalls)

	// Sticky: the second call goes straight to the good endpoint.
	_, err = client.Synthesize(context.Background(), "Hello again.", "en", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, goodCalls)
}

func TestSynthesize_AllEndpointsFailing(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusBadGateway)
	}))
	defer down.Close()

	client := newTestClient(t, []string{down.URL})

	_, err := client.Synthesize(context.Background(), "Hello.", "en", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), down.URL)
}

func TestSynthesize_RejectsEmptyAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 10))
	}))
	defer srv.Close()

	client := newTestClient(t, []string{srv.URL})
	_, err := client.Synthesize(context.Background(), "Hello.", "en", Options{})
	require.Error(t, err)
}

func TestEstimateDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), EstimateDuration(nil))
	assert.Equal(t, time.Duration(0), EstimateDuration(make([]byte, wavHeaderSize)))
	assert.InDelta(t, 1.5, EstimateDuration(fakeWAV(1.5)).Seconds(), 0.001)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := newTestClient(t, []string{srv.URL})
	assert.NoError(t, client.Health(context.Background()))
}
