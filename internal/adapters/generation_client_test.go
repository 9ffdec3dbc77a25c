package adapters_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chatgpti/webapp-bot/internal/adapters"
	"github.com/chatgpti/webapp-bot/internal/domain"
)

const rateLimitMessage = "Превышен лимит запросов. Пожалуйста, подождите немного."

func newGenerationServer(t *testing.T, handler http.HandlerFunc) *adapters.GenerationClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return adapters.NewGenerationClient(srv.URL, "test-key")
}

func TestGenerateTextSuccess(t *testing.T) {
	client := newGenerationServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"message": map[string]any{"role": "assistant", "content": "Привет!"},
			}},
		})
	})

	result := client.GenerateText(context.Background(), "скажи привет")
	if result.Status != domain.StatusSuccess {
		t.Fatalf("status = %s, error = %s", result.Status, result.Error)
	}
	if result.Text != "Привет!" {
		t.Errorf("text = %q", result.Text)
	}
}

func TestGenerateTextRateLimited(t *testing.T) {
	Check := func(name string, handler http.HandlerFunc) {
		t.Helper()
		client := newGenerationServer(t, handler)
		result := client.GenerateText(context.Background(), "prompt")
		if result.Status != domain.StatusError {
			t.Fatalf("%s: status = %s, expected error", name, result.Status)
		}
		if result.Error != rateLimitMessage {
			t.Errorf("%s: error = %q, expected the rate-limit message", name, result.Error)
		}
	}

	// The message is fixed regardless of what the backend put in the body.
	Check("json error body", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "slow down", "type": "rate_limit"},
		})
	})
	Check("opaque body", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("too many requests"))
	})
}

func TestGenerateImageSuccess(t *testing.T) {
	var gotBody map[string]any
	client := newGenerationServer(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "abc123",
			"choices": []map[string]any{{
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": ""},
			}},
		})
	})

	result := client.GenerateImage(context.Background(), "a red fox")
	if result.Status != domain.StatusSuccess {
		t.Fatalf("status = %s, error = %s", result.Status, result.Error)
	}
	if result.URL != "https://cdn.snapzion.com/a1aa/image/abc123.jpeg" {
		t.Errorf("url = %q", result.URL)
	}

	if gotBody["model"] != "flux" {
		t.Errorf("model = %v", gotBody["model"])
	}
	if gotBody["image"] != true {
		t.Errorf("image flag = %v, expected true", gotBody["image"])
	}
}

func TestGenerateImageWithoutID(t *testing.T) {
	client := newGenerationServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": ""},
			}},
		})
	})

	result := client.GenerateImage(context.Background(), "a red fox")
	if result.Status != domain.StatusError {
		t.Fatal("missing id must be treated as failure")
	}
	if result.URL != "" {
		t.Errorf("url = %q, expected empty", result.URL)
	}
	if result.Error == "" {
		t.Error("expected an error message")
	}
}

func TestGenerateImageErrorFinishReason(t *testing.T) {
	client := newGenerationServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id": "abc123",
			"choices": []map[string]any{{
				"finish_reason": "error",
				"message":       map[string]any{"role": "assistant", "content": "запрос отклонён"},
			}},
		})
	})

	result := client.GenerateImage(context.Background(), "a red fox")
	if result.Status != domain.StatusError {
		t.Fatal("error finish reason must be treated as failure")
	}
	if result.Error != "запрос отклонён" {
		t.Errorf("error = %q, expected the backend message", result.Error)
	}
}

func TestGenerateImageRateLimited(t *testing.T) {
	client := newGenerationServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	result := client.GenerateImage(context.Background(), "a red fox")
	if result.Status != domain.StatusError || result.Error != rateLimitMessage {
		t.Errorf("result = %+v, expected the rate-limit message", result)
	}
}
