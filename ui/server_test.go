package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ikigai/app"
	"ikigai/domain/session"
	"ikigai/internal"
	"ikigai/internal/errors"
	"ikigai/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	mu     sync.Mutex
	byHash map[string]session.Snapshot
	nextID int
}

func newMemRepo() *memRepo {
	return &memRepo{byHash: make(map[string]session.Snapshot)}
}

func (r *memRepo) Create(ctx context.Context, s *session.Session) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := s.Snapshot()
	r.nextID++
	snap.ID = fmt.Sprintf("id-%d", r.nextID)
	r.byHash[snap.Hash] = snap
	return session.FromSnapshot(snap)
}

func (r *memRepo) FindByHash(ctx context.Context, hash string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.byHash[hash]
	if !ok {
		return nil, nil
	}
	return session.FromSnapshot(snap)
}

func (r *memRepo) Update(ctx context.Context, s *session.Session) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := s.Snapshot()
	stored, ok := r.byHash[snap.Hash]
	if !ok {
		return nil, errors.NotFound("session")
	}
	snap.ID = stored.ID
	r.byHash[snap.Hash] = snap
	return session.FromSnapshot(snap)
}

func (r *memRepo) HashExists(ctx context.Context, hash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byHash[hash]
	return ok, nil
}

type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeSession(ctx context.Context, userCtx session.Context, answers session.Answers) (*session.Analysis, error) {
	return &session.Analysis{
		ProfileSummary:           "A creative generalist.",
		SuggestedCareers:         []string{"Art educator"},
		IdentifiedGaps:           []string{"No credential"},
		ActionPlan:               "Start small.",
		CurrentSituationAnalysis: "Good moment to experiment.",
		GeneratedAt:              time.Now().UTC(),
	}, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(snap session.Snapshot) ([]byte, error) {
	return []byte("%PDF-1.4 stub " + snap.Hash), nil
}

type recordingEmailSender struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingEmailSender) SendResult(ctx context.Context, to, name string, pdf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, to)
	return nil
}

// stubCheckout trusts every webhook and reports a fixed paid status
type stubCheckout struct {
	event     *ports.CheckoutEvent
	verifyErr error
}

func (c *stubCheckout) CreateCheckout(ctx context.Context, req ports.CheckoutRequest) (string, error) {
	return "https://checkout.example/" + req.SessionHash, nil
}

func (c *stubCheckout) VerifyWebhook(payload []byte, signature string) (*ports.CheckoutEvent, error) {
	if c.verifyErr != nil {
		return nil, c.verifyErr
	}
	if c.event == nil {
		return &ports.CheckoutEvent{Type: "ignored.event"}, nil
	}
	return c.event, nil
}

func (c *stubCheckout) GetPaymentStatus(ctx context.Context, checkoutID string) (*ports.PaymentStatus, error) {
	return &ports.PaymentStatus{Paid: true, SessionHash: "hash123456"}, nil
}

type testEnv struct {
	server   *Server
	email    *recordingEmailSender
	checkout *stubCheckout
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := internal.NewLogger(internal.LogLevelError)
	repo := newMemRepo()
	email := &recordingEmailSender{}
	checkout := &stubCheckout{}

	sessions := app.NewSessionService(repo, stubAnalyzer{}, logger)
	reports := app.NewReportService(repo, stubRenderer{}, email, logger)
	payments := app.NewPaymentService(checkout, sessions, "http://localhost:3000", logger)

	return &testEnv{
		server:   NewServer(sessions, reports, payments, "test"),
		email:    email,
		checkout: checkout,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createBody() map[string]any {
	return map[string]any{
		"name":              "Marina Silva",
		"age":               29,
		"currentProfession": "Designer",
		"educationArea":     "Arts",
		"lifeStage":         "transition",
		"currentSituation":  "weighing a change",
	}
}

func allAnswers() map[string]any {
	return map[string]any{
		"love":       []string{"painting"},
		"skills":     []string{"teaching"},
		"worldNeeds": []string{"education"},
		"paidFor":    []string{"workshops"},
	}
}

// createSession drives the API to a fresh session and returns its hash
func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/sessions", createBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	hash, _ := decode(t, w)["hash"].(string)
	require.Len(t, hash, session.HashLength)
	return hash
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/sessions", createBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	sess, ok := body["session"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "in_progress", sess["status"])
	assert.NotContains(t, w.Body.String(), "aiAnalysis", "analysis must be omitted until present")
}

func TestCreateSession_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing name", func(m map[string]any) { delete(m, "name") }},
		{"short name", func(m map[string]any) { m["name"] = " A " }},
		{"age below range", func(m map[string]any) { m["age"] = 9 }},
		{"age above range", func(m map[string]any) { m["age"] = 121 }},
		{"unknown life stage", func(m map[string]any) { m["lifeStage"] = "retired_abroad" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := createBody()
			tt.mutate(body)
			w := env.do(t, http.MethodPost, "/api/sessions", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestGetSession_NotFound(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/sessions/nope456789", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnswerFlow(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	// Partial update keeps the session in progress
	w := env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", map[string]any{"love": []string{"painting"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "in_progress", decode(t, w)["status"])

	// Filling the remaining pillars completes it
	w = env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", allAnswers())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "completed", decode(t, w)["status"])
}

func TestAnalyzeFlow(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	// Analysis before completion is a client error
	w := env.do(t, http.MethodPost, "/api/sessions/"+hash+"/analyze", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	w = env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", allAnswers())
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/sessions/"+hash+"/analyze", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "analyzed", body["status"])
	analysis, ok := body["aiAnalysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A creative generalist.", analysis["profileSummary"])

	// Repeating the call returns the stored analysis
	w = env.do(t, http.MethodPost, "/api/sessions/"+hash+"/analyze", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionPDF(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	// No report before analysis
	w := env.do(t, http.MethodGet, "/api/sessions/"+hash+"/pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", allAnswers())
	env.do(t, http.MethodPost, "/api/sessions/"+hash+"/analyze", nil)

	w = env.do(t, http.MethodGet, "/api/sessions/"+hash+"/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ikigai-"+hash+".pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))
}

func TestSendEmail(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", allAnswers())
	env.do(t, http.MethodPost, "/api/sessions/"+hash+"/analyze", nil)

	w := env.do(t, http.MethodPost, "/api/sessions/"+hash+"/send-email", map[string]any{"email": "marina@example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])
	assert.Equal(t, []string{"marina@example.com"}, env.email.sent)
}

func TestSendEmail_RejectsBadAddress(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	w := env.do(t, http.MethodPost, "/api/sessions/"+hash+"/send-email", map[string]any{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckout(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)

	w := env.do(t, http.MethodPost, "/api/payments/create-checkout", map[string]any{
		"sessionHash": hash,
		"planId":      "basic",
		"email":       "marina@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://checkout.example/"+hash, decode(t, w)["url"])
}

func TestCreateCheckout_UnknownSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/payments/create-checkout", map[string]any{
		"sessionHash": "nope456789",
		"planId":      "basic",
		"email":       "marina@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentWebhook_TriggersAnalysis(t *testing.T) {
	env := newTestEnv(t)
	hash := env.createSession(t)
	env.do(t, http.MethodPatch, "/api/sessions/"+hash+"/answers", allAnswers())

	env.checkout.event = &ports.CheckoutEvent{
		Type:        "checkout.session.completed",
		SessionHash: hash,
		PlanID:      "basic",
	}

	w := env.do(t, http.MethodPost, "/api/payments/webhook", map[string]any{"any": "payload"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["received"])

	w = env.do(t, http.MethodGet, "/api/sessions/"+hash, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "analyzed", decode(t, w)["status"])
}

func TestPaymentWebhook_BadSignatureIsClientError(t *testing.T) {
	env := newTestEnv(t)
	env.checkout.verifyErr = fmt.Errorf("signature mismatch")

	w := env.do(t, http.MethodPost, "/api/payments/webhook", map[string]any{"any": "payload"})
	assert.Equal(t, http.StatusBadRequest, w.Code,
		"a 5xx here would make the provider retry an unverifiable payload")
}

func TestPaymentWebhook_IgnoresOtherEvents(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/payments/webhook", map[string]any{"any": "payload"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyPayment(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/payments/verify", map[string]any{"sessionId": "cs_test_1"})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["paid"])
	assert.Equal(t, "hash123456", body["sessionHash"])
}
