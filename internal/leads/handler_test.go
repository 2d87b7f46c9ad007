package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/webmcpsetup/pkg/logging"
)

func sampleSubmission(email, company string) *Submission {
	return &Submission{
		FullName:           "Jane Doe",
		Email:              email,
		Company:            company,
		WebsiteURL:         "https://x.com",
		ProjectType:        ProjectSaaS,
		AuthRequired:       "no_login",
		PrimaryUserActions: []string{"buy"},
		CurrentStack:       "Next.js",
		Timeline:           "flexible",
		Notes:              "call after 5pm",
	}
}

func TestListLeads_Redacted(t *testing.T) {
	store := NewMemoryStore()
	handler := NewHandler(store, logging.Default())
	ctx := context.Background()

	first, _ := store.Append(ctx, sampleSubmission("jane@x.com", "Acme"))
	second, _ := store.Append(ctx, sampleSubmission("joe@y.com", ""))

	req := httptest.NewRequest(http.MethodGet, "/api/intake", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	body := w.Body.String()
	for _, leaked := range []string{"Jane Doe", "Next.js", "call after 5pm", "https://x.com"} {
		if strings.Contains(body, leaked) {
			t.Fatalf("listing leaked %q: %s", leaked, body)
		}
	}

	var resp ListLeadsResponse
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || len(resp.Submissions) != 2 {
		t.Fatalf("expected 2 submissions, got %+v", resp)
	}
	if resp.Submissions[0].LeadID != first.LeadID || resp.Submissions[1].LeadID != second.LeadID {
		t.Fatalf("expected insertion order, got %+v", resp.Submissions)
	}
	if resp.Submissions[0].Company != "Acme" || resp.Submissions[1].Email != "joe@y.com" {
		t.Fatalf("unexpected redacted fields: %+v", resp.Submissions)
	}
}

func TestListLeads_Empty(t *testing.T) {
	handler := NewHandler(NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/intake", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"total":0,"submissions":[]}` {
		t.Fatalf("unexpected empty listing: %s", got)
	}
}

type failingStore struct{}

func (failingStore) Append(context.Context, *Submission) (*Record, error) {
	return nil, errors.New("boom")
}

func (failingStore) List(context.Context) ([]*Record, error) {
	return nil, errors.New("boom")
}

func (failingStore) GetByID(context.Context, string) (*Record, error) {
	return nil, errors.New("boom")
}

func getLead(handler *Handler, id string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/intake/{leadID}", handler.GetLead)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/intake/"+id, nil))
	return w
}

func TestGetLead_Redacted(t *testing.T) {
	store := NewMemoryStore()
	rec, _ := store.Append(context.Background(), sampleSubmission("jane@x.com", "Acme"))

	w := getLead(NewHandler(store, nil), rec.LeadID)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if strings.Contains(w.Body.String(), "call after 5pm") {
		t.Fatalf("lookup leaked notes: %s", w.Body.String())
	}

	var got Summary
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.LeadID != rec.LeadID || got.Email != "jane@x.com" {
		t.Fatalf("unexpected summary: %+v", got)
	}
}

func TestGetLead_NotFound(t *testing.T) {
	w := getLead(NewHandler(NewMemoryStore(), nil), "LEAD-1-MISSING00")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Lead not found") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = getLead(NewHandler(failingStore{}, nil), "LEAD-1-MISSING00")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestListLeads_StoreError(t *testing.T) {
	handler := NewHandler(failingStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/intake", nil)
	w := httptest.NewRecorder()
	handler.ListLeads(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestRecordMarshalJSON(t *testing.T) {
	store := NewMemoryStore().WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 12, 30, 0, 123_000_000, time.UTC)
	})
	rec, err := store.Append(context.Background(), sampleSubmission("jane@x.com", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["received_at"] != "2026-03-01T12:30:00.123Z" {
		t.Fatalf("unexpected received_at: %v", decoded["received_at"])
	}
	if decoded["lead_id"] != rec.LeadID || decoded["what_are_you_building"] != "saas" {
		t.Fatalf("unexpected record body: %s", raw)
	}
	if _, ok := decoded["company"]; ok {
		t.Fatalf("expected empty company to be omitted: %s", raw)
	}
}
