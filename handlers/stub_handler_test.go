package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"go_chat_client/middleware"
	"go_chat_client/models"
	"go_chat_client/platform/cache"
)

func newStubApp(t *testing.T, chatLimit int) *fiber.App {
	t.Helper()
	n := 0
	h := NewStubHandler(cache.InitL1Cache(time.Minute, time.Minute), "9.9.9", func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler, DisableStartupMessage: true})
	app.Post("/api/session", h.CreateSession)
	app.Post("/api/chat", middleware.RateLimit(chatLimit, time.Minute), h.Chat)
	app.Post("/api/feedback", h.Feedback)
	app.Get("/api/health", h.Health)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, data
}

func detailOf(t *testing.T, data []byte) string {
	t.Helper()
	var body models.ErrorBody
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("error body is not JSON: %s", data)
	}
	return body.Detail
}

func TestStub_Health(t *testing.T) {
	app := newStubApp(t, 10)
	resp, data := doJSON(t, app, http.MethodGet, "/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if string(data) != `{"status":"ok","version":"9.9.9"}` {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestStub_CreateSession(t *testing.T) {
	app := newStubApp(t, 10)
	resp, data := doJSON(t, app, http.MethodPost, "/api/session", `{"user_identifier":"reader"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var out models.SessionCreateResponse
	json.Unmarshal(data, &out)
	if out.SessionID != "id-1" {
		t.Errorf("unexpected session id: %s", out.SessionID)
	}
	if _, err := time.Parse(time.RFC3339, out.CreatedAt); err != nil {
		t.Errorf("created_at not RFC3339: %s", out.CreatedAt)
	}
}

func TestStub_ChatValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty query", `{"query":"  ","mode":"full_book"}`, "query must not be empty"},
		{"bad mode", `{"query":"q","mode":"chapter"}`, `invalid mode "chapter": must be 'full_book' or 'selection'`},
		{"selection without text", `{"query":"q","mode":"selection"}`, "selected_text is required in selection mode"},
		{"malformed", `{"query":`, "malformed JSON body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newStubApp(t, 10)
			resp, data := doJSON(t, app, http.MethodPost, "/api/chat", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status %d", resp.StatusCode)
			}
			if got := detailOf(t, data); got != tt.want {
				t.Errorf("detail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStub_ChatUnknownSession(t *testing.T) {
	app := newStubApp(t, 10)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/chat", `{"query":"q","mode":"full_book","session_id":"nope"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status %d", resp.StatusCode)
	}
}

func TestStub_ChatFullBook(t *testing.T) {
	app := newStubApp(t, 10)
	_, data := doJSON(t, app, http.MethodPost, "/api/session", `{}`)
	var session models.SessionCreateResponse
	json.Unmarshal(data, &session)

	resp, data := doJSON(t, app, http.MethodPost, "/api/chat",
		fmt.Sprintf(`{"query":"what is physical ai","mode":"full_book","session_id":"%s"}`, session.SessionID))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var out models.ChatResponse
	json.Unmarshal(data, &out)
	if out.SessionID != session.SessionID {
		t.Errorf("session id not echoed: %s", out.SessionID)
	}
	if len(out.SourceChunks) != len(stubChunks) {
		t.Fatalf("expected %d chunks, got %d", len(stubChunks), len(out.SourceChunks))
	}
	for i := range stubChunks {
		if out.SourceChunks[i] != stubChunks[i] {
			t.Errorf("chunk %d: %+v", i, out.SourceChunks[i])
		}
	}
}

func TestStub_ChatSelectionImplicitSession(t *testing.T) {
	app := newStubApp(t, 10)
	resp, data := doJSON(t, app, http.MethodPost, "/api/chat", `{"query":"explain","mode":"selection","selected_text":"a humanoid"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, data)
	}
	var out models.ChatResponse
	json.Unmarshal(data, &out)
	if out.SessionID == "" {
		t.Error("a session should be opened implicitly")
	}
	if out.SourceChunks == nil || len(out.SourceChunks) != 0 {
		t.Errorf("selection mode returns an empty chunk list, got %v", out.SourceChunks)
	}
	if !strings.Contains(out.ResponseText, "a humanoid") {
		t.Errorf("answer should quote the selection: %s", out.ResponseText)
	}
}

func TestStub_ChatRateLimited(t *testing.T) {
	app := newStubApp(t, 2)
	body := `{"query":"q","mode":"full_book"}`
	for i := 0; i < 2; i++ {
		if resp, _ := doJSON(t, app, http.MethodPost, "/api/chat", body); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status %d", i, resp.StatusCode)
		}
	}
	resp, data := doJSON(t, app, http.MethodPost, "/api/chat", body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if detailOf(t, data) != "Rate limit exceeded" {
		t.Errorf("unexpected body: %s", data)
	}
}

func TestStub_Feedback(t *testing.T) {
	app := newStubApp(t, 10)
	_, data := doJSON(t, app, http.MethodPost, "/api/chat", `{"query":"q","mode":"full_book"}`)
	var answer models.ChatResponse
	json.Unmarshal(data, &answer)

	fb := fmt.Sprintf(`{"response_id":"%s","rating":"positive","feedback_text":"nice"}`, answer.ResponseID)
	resp, _ := doJSON(t, app, http.MethodPost, "/api/feedback", fb)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("first feedback: status %d", resp.StatusCode)
	}

	resp, data = doJSON(t, app, http.MethodPost, "/api/feedback", fb)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate feedback: status %d", resp.StatusCode)
	}
	if detailOf(t, data) == "" {
		t.Error("conflict should carry a detail")
	}
}

func TestStub_FeedbackErrors(t *testing.T) {
	app := newStubApp(t, 10)
	tests := []struct {
		body string
		code int
	}{
		{`{"rating":"positive"}`, http.StatusBadRequest},
		{`{"response_id":"x","rating":"meh"}`, http.StatusBadRequest},
		{`{"response_id":"unknown","rating":"negative"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		if resp, data := doJSON(t, app, http.MethodPost, "/api/feedback", tt.body); resp.StatusCode != tt.code {
			t.Errorf("%s: status %d, want %d (%s)", tt.body, resp.StatusCode, tt.code, data)
		}
	}
}

func TestStub_RequestLogCarriesSession(t *testing.T) {
	var buf bytes.Buffer
	h := NewStubHandler(cache.InitL1Cache(time.Minute, time.Minute), "1", func() string { return "sess-7" })
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler, DisableStartupMessage: true})
	app.Use(middleware.Logger("", &buf))
	app.Post("/api/session", h.CreateSession)

	if resp, _ := doJSON(t, app, http.MethodPost, "/api/session", `{}`); resp.StatusCode != http.StatusCreated {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if !strings.Contains(buf.String(), "session=sess-7") {
		t.Errorf("log line should carry the session: %q", buf.String())
	}
}
