package ports_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/chatgpti/webapp-bot/internal/domain"
	"github.com/chatgpti/webapp-bot/internal/ports"
)

type stubTelegram struct {
	webAppErr     error
	webAppQueries []string
}

func (s *stubTelegram) SendMessage(ctx context.Context, chatID int64, message string) error {
	return nil
}

func (s *stubTelegram) SendMessageHTML(ctx context.Context, chatID int64, message string, buttons ...domain.KeyboardButton) (*domain.TelegramMessage, error) {
	return &domain.TelegramMessage{ID: 1, Text: message}, nil
}

func (s *stubTelegram) EditMessageHTML(ctx context.Context, chatID int64, messageID int, message string, buttons ...domain.KeyboardButton) error {
	return nil
}

func (s *stubTelegram) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return nil
}

func (s *stubTelegram) AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	return nil
}

func (s *stubTelegram) AnswerWebAppQuery(ctx context.Context, queryID, text string) error {
	s.webAppQueries = append(s.webAppQueries, queryID)
	return s.webAppErr
}

func (s *stubTelegram) GetChatMember(ctx context.Context, channel domain.Channel, userID int64) (domain.MembershipStatus, error) {
	return domain.StatusMember, nil
}

func (s *stubTelegram) SetBotCommands(ctx context.Context, commands []domain.BotCommand) error {
	return nil
}

type stubGenerator struct {
	text  domain.TextResult
	image domain.ImageResult
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) domain.TextResult {
	return s.text
}

func (s *stubGenerator) GenerateImage(ctx context.Context, prompt string) domain.ImageResult {
	return s.image
}

type passthroughRenderer struct{}

func (passthroughRenderer) Render(input string) string { return "<b>" + input + "</b>" }

func newTestServer(t *testing.T, tg *stubTelegram, gen *stubGenerator) http.Handler {
	t.Helper()
	ui := fstest.MapFS{
		"index.html":    {Data: []byte("<html>ChatGPTi</html>")},
		"assets/app.js": {Data: []byte("console.log('app')")},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ports.NewHTTPServer(":0", tg, gen, passthroughRenderer{}, ui, logger).Handler()
}

func TestHealth(t *testing.T) {
	h := newTestServer(t, &stubTelegram{}, &stubGenerator{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestWebData(t *testing.T) {
	tg := &stubTelegram{}
	h := newTestServer(t, tg, &stubGenerator{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/web-data",
		strings.NewReader(`{"queryId":"q-1","message":"готово"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(tg.webAppQueries) != 1 || tg.webAppQueries[0] != "q-1" {
		t.Errorf("webAppQueries = %v", tg.webAppQueries)
	}
}

func TestWebDataFailure(t *testing.T) {
	Check := func(name, body string, tg *stubTelegram) {
		t.Helper()
		h := newTestServer(t, tg, &stubGenerator{})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/web-data", strings.NewReader(body)))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, expected 500", name, rec.Code)
		}
	}

	Check("platform error", `{"queryId":"q-1"}`, &stubTelegram{webAppErr: context.DeadlineExceeded})
	Check("missing query id", `{}`, &stubTelegram{})
	Check("bad json", `{`, &stubTelegram{})
}

func TestGenerateText(t *testing.T) {
	gen := &stubGenerator{text: domain.TextResult{Text: "Привет", Status: domain.StatusSuccess}}
	h := newTestServer(t, &stubTelegram{}, gen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate/text",
		strings.NewReader(`{"prompt":"скажи привет"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var result domain.TextResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Text != "Привет" || result.HTML != "<b>Привет</b>" {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateTextFailureSkipsRendering(t *testing.T) {
	gen := &stubGenerator{text: domain.TextFailure("boom")}
	h := newTestServer(t, &stubTelegram{}, gen)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate/text",
		strings.NewReader(`{"prompt":"x"}`)))

	var result domain.TextResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Status != domain.StatusError || result.HTML != "" {
		t.Errorf("result = %+v", result)
	}
}

func TestGenerateRequiresPrompt(t *testing.T) {
	h := newTestServer(t, &stubTelegram{}, &stubGenerator{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/generate/image",
		strings.NewReader(`{"prompt":"  "}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, expected 400", rec.Code)
	}
}

func TestServesUI(t *testing.T) {
	h := newTestServer(t, &stubTelegram{}, &stubGenerator{})

	Check := func(path, contains string) {
		t.Helper()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status = %d", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), contains) {
			t.Errorf("GET %s: body %q misses %q", path, rec.Body.String(), contains)
		}
	}

	Check("/", "ChatGPTi")
	Check("/assets/app.js", "console.log")
	// Unknown paths fall back to the SPA entry point.
	Check("/subscription", "ChatGPTi")
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, &stubTelegram{}, &stubGenerator{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/generate/text", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS headers")
	}
}
