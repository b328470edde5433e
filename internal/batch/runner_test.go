package batch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/toolindex/enrich/internal/enricher"
	"github.com/toolindex/enrich/internal/fetch"
	"github.com/toolindex/enrich/internal/retry"
	"github.com/toolindex/enrich/pkg/models"
)

type fakeStore struct {
	tools      []models.Tool
	patches    map[uint]models.Patch
	failUpdate map[uint]bool
}

func newFakeStore(tools ...models.Tool) *fakeStore {
	return &fakeStore{
		tools:      tools,
		patches:    make(map[uint]models.Patch),
		failUpdate: make(map[uint]bool),
	}
}

func (f *fakeStore) FindUnderEnriched(ctx context.Context, limit int) ([]models.Tool, error) {
	if limit < len(f.tools) {
		return f.tools[:limit], nil
	}
	return f.tools, nil
}

func (f *fakeStore) AllTools(ctx context.Context) ([]models.Tool, error) {
	return f.tools, nil
}

func (f *fakeStore) UpdateTool(ctx context.Context, id uint, patch models.Patch) error {
	if f.failUpdate[id] {
		return errors.New("update failed")
	}
	f.patches[id] = patch
	return nil
}

func newTestRunner(st *fakeStore, out *bytes.Buffer) *Runner {
	en := enricher.New(
		fetch.NewClient(2*time.Second, "TestBot/1.0"),
		retry.Config{MaxRetries: 1, Delay: time.Millisecond},
	)
	return NewRunner(st, en, time.Millisecond, out)
}

func TestRun_MixedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>free tier, fork at github.com/a/b</html>`))
	}))
	defer srv.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	down.Close()

	st := newFakeStore(
		models.Tool{ID: 1, Title: "Good Tool", URL: srv.URL},
		models.Tool{ID: 2, Title: "Broken Tool", URL: down.URL},
		models.Tool{ID: 3, Title: "Another Good", URL: srv.URL},
	)

	out := &bytes.Buffer{}
	stats, err := newTestRunner(st, out).Run(context.Background(), 20)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Processed != 3 || stats.Succeeded != 2 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.FieldsUpdated == 0 {
		t.Error("expected some fields updated")
	}

	// Even the failed tool gets its bookkeeping patch persisted.
	for _, id := range []uint{1, 2, 3} {
		if _, ok := st.patches[id]; !ok {
			t.Errorf("no patch persisted for tool %d", id)
		}
	}
	if len(st.patches[2]) != 2 {
		t.Errorf("failed tool patch = %v, want bookkeeping pair only", st.patches[2])
	}

	if !strings.Contains(out.String(), "Success rate:   66.7%") {
		t.Errorf("summary missing success rate:\n%s", out.String())
	}
}

func TestRun_PersistFailureDoesNotAbort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	st := newFakeStore(
		models.Tool{ID: 1, Title: "Unstorable", URL: srv.URL},
		models.Tool{ID: 2, Title: "Fine", URL: srv.URL},
	)
	st.failUpdate[1] = true

	stats, err := newTestRunner(st, &bytes.Buffer{}).Run(context.Background(), 20)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if stats.Failed != 1 || stats.Succeeded != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if _, ok := st.patches[2]; !ok {
		t.Error("second tool should still have been processed")
	}
}

func TestRun_RespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	st := newFakeStore(
		models.Tool{ID: 1, URL: srv.URL},
		models.Tool{ID: 2, URL: srv.URL},
		models.Tool{ID: 3, URL: srv.URL},
	)

	stats, err := newTestRunner(st, &bytes.Buffer{}).Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Processed != 2 {
		t.Errorf("processed = %d, want 2", stats.Processed)
	}
}

func TestRun_EmptySelection(t *testing.T) {
	out := &bytes.Buffer{}
	stats, err := newTestRunner(newFakeStore(), out).Run(context.Background(), 20)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Processed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if !strings.Contains(out.String(), "No under-enriched tools") {
		t.Errorf("missing empty-selection message:\n%s", out.String())
	}
}

func TestStats_SuccessRate(t *testing.T) {
	s := &Stats{Processed: 4, Succeeded: 3}
	if s.SuccessRate() != 75 {
		t.Errorf("rate = %v", s.SuccessRate())
	}
	if (&Stats{}).SuccessRate() != 0 {
		t.Error("empty stats must report 0")
	}
}
