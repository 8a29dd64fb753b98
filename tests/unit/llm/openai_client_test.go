package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srinathstart/HealthSyncAI/internal/config"
	"github.com/srinathstart/HealthSyncAI/internal/domain"
	"github.com/srinathstart/HealthSyncAI/internal/llm"
	"github.com/srinathstart/HealthSyncAI/internal/llm/openai"
)

func newTestClient(t *testing.T, serverURL string) *openai.Client {
	t.Helper()
	cfg := &config.LLMConfig{
		APIKey:      "test-api-key",
		Model:       "gpt-4o",
		TimeoutSecs: 30,
	}
	client, err := openai.NewClientWithEndpoint(cfg, serverURL)
	assert.NoError(t, err)
	return client
}

func TestOpenAIClient_Complete_Success(t *testing.T) {
	responseBody := map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"content": `{"score": 95}`},
				"finish_reason": "stop",
			},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request headers
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		// Verify request body
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])
		// temperature defaults to 0.7 when not configured
		assert.Equal(t, 0.7, reqBody["temperature"])

		messages := reqBody["messages"].([]interface{})
		assert.Len(t, messages, 2)
		first := messages[0].(map[string]interface{})
		assert.Equal(t, "system", first["role"])
		second := messages[1].(map[string]interface{})
		assert.Equal(t, "user", second["role"])
		assert.Equal(t, "analyze this", second["content"])

		w.WriteHeader(http.StatusOK)
		err = json.NewEncoder(w).Encode(responseBody)
		if err != nil {
			return
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Complete(context.Background(), []llm.Message{
		llm.System("you are a medical assistant"),
		llm.User("analyze this"),
	})

	assert.NoError(t, err)
	assert.Equal(t, `{"score": 95}`, out)
}

func TestOpenAIClient_Complete_ConfiguredTemperature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, 0.2, reqBody["temperature"])

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	cfg := &config.LLMConfig{APIKey: "test-api-key", Model: "gpt-4-turbo", Temperature: 0.2, TimeoutSecs: 30}
	client, err := openai.NewClientWithEndpoint(cfg, server.URL)
	assert.NoError(t, err)
	assert.Equal(t, "gpt-4-turbo", client.Model())

	out, err := client.Complete(context.Background(), []llm.Message{llm.User("hi")})
	assert.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestOpenAIClient_MissingAPIKey(t *testing.T) {
	_, err := openai.NewClient(&config.LLMConfig{Model: "gpt-4o"})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestOpenAIClient_Complete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, err := w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"rate limited"}}`))
		if err != nil {
			return
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Complete(context.Background(), []llm.Message{llm.User("hi")})

	assert.Empty(t, out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "openai API error (status 429)")
}

func TestOpenAIClient_Complete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"choices": []map[string]interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Complete(context.Background(), []llm.Message{llm.User("hi")})

	assert.Empty(t, out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestOpenAIClient_Complete_TruncatedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": `{"partial":`}, "finish_reason": "length"},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	out, err := client.Complete(context.Background(), []llm.Message{llm.User("hi")})

	assert.Empty(t, out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "output truncated")
}

func TestOpenAIClient_Complete_ConnectionRefused(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")

	out, err := client.Complete(context.Background(), []llm.Message{llm.User("hi")})

	assert.Empty(t, out)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "calling openai API")
}
