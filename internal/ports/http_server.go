package ports

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatgpti/webapp-bot/internal/domain"
)

// HTMLRenderer renders model markdown output for the web UI.
type HTMLRenderer interface {
	Render(input string) string
}

// HTTPServer is the relay between the web UI, the generation API and the
// messaging platform. It also serves the bundled UI itself.
type HTTPServer struct {
	srv      *http.Server
	telegram domain.TelegramClient
	gen      domain.Generator
	renderer HTMLRenderer
	logger   *slog.Logger
}

func NewHTTPServer(
	addr string,
	telegram domain.TelegramClient,
	gen domain.Generator,
	renderer HTMLRenderer,
	ui fs.FS,
	logger *slog.Logger,
) *HTTPServer {
	s := &HTTPServer{
		telegram: telegram,
		gen:      gen,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "HTTPServer")),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /web-data", s.handleWebData)
	mux.HandleFunc("POST /api/generate/text", s.handleGenerateText)
	mux.HandleFunc("POST /api/generate/image", s.handleGenerateImage)
	mux.Handle("/", spaHandler(ui))

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.withAccessLog(withCORS(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// Handler exposes the root handler for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type webDataRequest struct {
	QueryID string `json:"queryId"`
	Message string `json:"message"`
}

// handleWebData acknowledges data sent from the web app by answering the
// originating web app query.
func (s *HTTPServer) handleWebData(w http.ResponseWriter, r *http.Request) {
	var req webDataRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QueryID == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]string{})
		return
	}
	if err := s.telegram.AnswerWebAppQuery(r.Context(), req.QueryID, req.Message); err != nil {
		s.logger.ErrorContext(r.Context(), "answer web app query",
			slog.String("query_id", req.QueryID),
			slog.Any("error", err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *HTTPServer) handleGenerateText(w http.ResponseWriter, r *http.Request) {
	prompt, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	result := s.gen.GenerateText(r.Context(), prompt)
	if result.Status == domain.StatusSuccess {
		result.HTML = s.renderer.Render(result.Text)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	prompt, ok := decodePrompt(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.gen.GenerateImage(r.Context(), prompt))
}

func decodePrompt(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prompt is required"})
		return "", false
	}
	return req.Prompt, true
}

// spaHandler serves the bundled UI, falling back to index.html for paths
// that have no matching file so that client-side routing keeps working.
func spaHandler(ui fs.FS) http.Handler {
	fileServer := http.FileServerFS(ui)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/")
		if path != "" {
			if _, err := fs.Stat(ui, path); err == nil {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFileFS(w, r, ui, "index.html")
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *HTTPServer) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.InfoContext(r.Context(), "request",
			slog.String("request_id", requestID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
