package paperless

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL: server.URL,
		Token:   "test-token",
	})
}

func TestSearchDocuments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json; version=5" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "invoice" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("page_size"); got != "10" {
			t.Errorf("page_size = %q, want default 10", got)
		}
		fmt.Fprint(w, `{
			"count": 2,
			"results": [
				{
					"id": 7,
					"title": "Invoice March",
					"correspondent": 3,
					"tags": [1, 2],
					"__search_hit__": {"score": 0.921, "highlights": "<span class=\"match\">invoice</span> total"}
				},
				{
					"id": 9,
					"title": "Invoice April",
					"correspondent": {"id": 3, "name": "ACME"}
				}
			]
		}`)
	})

	list, err := client.SearchDocuments(context.Background(), "invoice", 0)
	if err != nil {
		t.Fatalf("SearchDocuments() error = %v", err)
	}
	if list.Count != 2 {
		t.Errorf("Count = %d, want 2", list.Count)
	}
	if len(list.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(list.Results))
	}

	first := list.Results[0]
	if first.SearchHit == nil || first.SearchHit.Score != 0.921 {
		t.Errorf("SearchHit = %+v", first.SearchHit)
	}
	if first.Correspondent.ID != 3 || first.Correspondent.Name != "" {
		t.Errorf("numeric correspondent = %+v", first.Correspondent)
	}
	if len(first.Tags) != 2 || first.Tags[0].ID != 1 {
		t.Errorf("tags = %+v", first.Tags)
	}

	second := list.Results[1]
	if second.Correspondent.Name != "ACME" {
		t.Errorf("expanded correspondent = %+v", second.Correspondent)
	}
}

func TestGetDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/api/documents/42/" {
			t.Errorf("path = %q", got)
		}
		fmt.Fprint(w, `{"id": 42, "title": "Contract", "content": "terms and conditions"}`)
	})

	doc, err := client.GetDocument(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetDocument() error = %v", err)
	}
	if doc.Title != "Contract" {
		t.Errorf("Title = %q", doc.Title)
	}
}

func TestSimilarDocuments(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("more_like_id"); got != "42" {
			t.Errorf("more_like_id = %q", got)
		}
		fmt.Fprint(w, `{"count": 0, "results": []}`)
	})

	if _, err := client.SimilarDocuments(context.Background(), 42, 5); err != nil {
		t.Fatalf("SimilarDocuments() error = %v", err)
	}
}

func TestSearchFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   Filters
		wantQuery map[string]string
		absent    []string
	}{
		{
			name: "match any tags",
			filters: Filters{
				TagIDs:   []int64{1, 2, 3},
				PageSize: 5,
			},
			wantQuery: map[string]string{
				"tags__id__in": "1,2,3",
				"page_size":    "5",
				"ordering":     "-created",
			},
			absent: []string{"tags__id__all", "query"},
		},
		{
			name: "match all tags",
			filters: Filters{
				TagIDs:       []int64{4, 5},
				MatchAllTags: true,
			},
			wantQuery: map[string]string{"tags__id__all": "4,5"},
			absent:    []string{"tags__id__in"},
		},
		{
			name: "full filters",
			filters: Filters{
				Query:         "tax",
				Correspondent: 3,
				DocumentType:  7,
				CreatedAfter:  "2026-01-01",
				CreatedBefore: "2026-06-30",
			},
			wantQuery: map[string]string{
				"query":              "tax",
				"correspondent__id":  "3",
				"document_type__id":  "7",
				"created__date__gte": "2026-01-01",
				"created__date__lte": "2026-06-30",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				for key, want := range tt.wantQuery {
					if got := q.Get(key); got != want {
						t.Errorf("query[%s] = %q, want %q", key, got, want)
					}
				}
				for _, key := range tt.absent {
					if q.Has(key) {
						t.Errorf("query[%s] should be absent, got %q", key, q.Get(key))
					}
				}
				fmt.Fprint(w, `{"count": 0, "results": []}`)
			})

			if _, err := client.Search(context.Background(), tt.filters); err != nil {
				t.Fatalf("Search() error = %v", err)
			}
		})
	}
}

func TestResolveTagIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/api/tags/" {
			t.Errorf("path = %q", got)
		}
		fmt.Fprint(w, `{
			"count": 3,
			"results": [
				{"id": 1, "name": "Invoices", "document_count": 12},
				{"id": 2, "name": "Tax", "document_count": 5},
				{"id": 3, "name": "Receipts", "document_count": 8}
			]
		}`)
	})

	ids, missing, err := client.ResolveTagIDs(context.Background(), []string{"invoices", "TAX", "42", "unknown"})
	if err != nil {
		t.Fatalf("ResolveTagIDs() error = %v", err)
	}

	want := []int64{1, 2, 42}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, ids[i], want[i])
		}
	}
	if len(missing) != 1 || missing[0] != "unknown" {
		t.Errorf("missing = %v, want [unknown]", missing)
	}
}

func TestNotConfigured(t *testing.T) {
	client := NewClient(Config{})

	_, err := client.GetDocument(context.Background(), 1)
	if err == nil {
		t.Fatal("GetDocument() error = nil, want error when unconfigured")
	}
	if !strings.Contains(err.Error(), "not configured") {
		t.Errorf("error = %q, want mention of missing configuration", err)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantMsg    string
	}{
		{"unauthorized", http.StatusUnauthorized, "authentication failed"},
		{"not found", http.StatusNotFound, "not found"},
		{"forbidden", http.StatusForbidden, "access forbidden"},
		{"server error", http.StatusInternalServerError, "Paperless API error: 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			_, err := client.GetDocument(context.Background(), 1)
			if err == nil {
				t.Fatal("GetDocument() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err, tt.wantMsg)
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error has type %T, want *APIError", err)
			}
		})
	}
}
