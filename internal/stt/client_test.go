package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelsmith/internal/config"
)

func newTestClient(t *testing.T, endpoints []string) *Client {
	t.Helper()
	client, err := NewClient(config.TranscriptionConfig{
		Endpoints:   endpoints,
		Timeout:     5,
		Model:       "large-v3",
		ComputeType: "int8",
		Device:      "cpu",
		NumWorkers:  1,
	})
	require.NoError(t, err)
	return client
}

func TestTranscribe_SendsRequestAndParsesSegments(t *testing.T) {
	var got transcribeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transcribe", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Transcription{
			Language:            "tr",
			LanguageProbability: 0.98,
			Duration:            1.2,
			Segments: []Segment{{
				Start: 0, End: 1.2, Text: "Merhaba dünya",
				Words: []Word{
					{Start: 0, End: 0.6, Word: "Merhaba", Probability: 0.9},
					{Start: 0.6, End: 1.2, Word: "dünya", Probability: 0.8},
				},
			}},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, []string{srv.URL})
	result, err := client.Transcribe(context.Background(), "/tmp/audio.wav", "tr")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/audio.wav", got.AudioPath)
	assert.Equal(t, "large-v3", got.Model)
	assert.Equal(t, "int8", got.ComputeType)
	assert.Equal(t, "cpu", got.Device)
	assert.Equal(t, 1, got.NumWorkers)

	require.Len(t, result.Segments, 1)
	require.Len(t, result.Segments[0].Words, 2)
	assert.Equal(t, "dünya", result.Segments[0].Words[1].Word)
	assert.InDelta(t, 1.2, result.Duration, 1e-9)
}

func TestTranscribe_FailoverKeepsIndependentStickyState(t *testing.T) {
	var badCalls, goodCalls int
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		badCalls++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		goodCalls++
		json.NewEncoder(w).Encode(Transcription{Duration: 0.1})
	}))
	defer good.Close()

	client := newTestClient(t, []string{bad.URL, good.URL})

	_, err := client.Transcribe(context.Background(), "/tmp/a.wav", "tr")
	require.NoError(t, err)
	_, err = client.Transcribe(context.Background(), "/tmp/b.wav", "tr")
	require.NoError(t, err)

	assert.Equal(t, 1, badCalls)
	assert.Equal(t, 2, goodCalls)
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models", r.URL.Path)
		json.NewEncoder(w).Encode(map[string][]string{
			"available_models": {"base", "large-v3"},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, []string{srv.URL})
	models, err := client.Models(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "large-v3"}, models)
}
