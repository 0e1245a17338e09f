package legal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListByDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/processes", r.URL.Path)
		assert.Equal(t, "12345678900", r.URL.Query().Get("document"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"active": [
				{"internalCode": "PRC-001", "status": "Aguardando audiência", "tag": "Trabalhista",
				 "registrationNumber": "0001234-56.2024.5.02.0011", "court": "2ª Vara do Trabalho",
				 "city": "São Paulo", "lastPerformance": "Audiência designada",
				 "updatedAt": "2026-03-01T10:00:00Z"}
			],
			"finalized": [],
			"totalActive": 1,
			"totalFinalized": 0
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "secret")
	set, err := c.ListByDocument(context.Background(), "12345678900")
	require.NoError(t, err)

	assert.Equal(t, 1, set.Total())
	require.Len(t, set.Active, 1)
	assert.Empty(t, set.Finalized)

	p := set.Active[0]
	assert.Equal(t, "PRC-001", p.Code)
	assert.Equal(t, "Trabalhista", p.Tag)
	assert.Equal(t, "Aguardando audiência", p.Status)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), p.UpdatedAt)
}

func TestListByDocumentMissingCollections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"active": []}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.ListByDocument(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListByDocumentMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.ListByDocument(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestListByDocumentConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	c := NewClient(server.URL, "")
	_, err := c.ListByDocument(context.Background(), "123")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestGetDetailDerivesStatusFromPerformances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process/PRC-001", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"record": {
				"internalCode": "PRC-001",
				"registrationNumber": "0001234-56.2024.5.02.0011",
				"court": "2ª Vara do Trabalho",
				"city": "São Paulo",
				"tag": "Trabalhista",
				"plaintiffs": [{"name": "Maria da Silva", "document": "12345678900"}],
				"defendants": [{"name": "Acme Ltda"}],
				"performances": [
					{"performanceType": "Petição inicial", "responsible": "Dr. Souza",
					 "updatedAt": "2026-01-05T09:00:00Z"},
					{"performanceType": "Audiência designada", "responsible": "Dr. Souza",
					 "observation": "Pauta de 15/04", "updatedAt": "2026-03-01T10:00:00Z"}
				]
			}
		}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	detail, err := c.GetDetail(context.Background(), "PRC-001")
	require.NoError(t, err)

	// Status is never taken from the wire; it is derived from the history.
	assert.Equal(t, "Audiência designada", detail.Status)
	assert.Equal(t, "Audiência designada", detail.LastPerformance)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), detail.UpdatedAt)

	require.Len(t, detail.Plaintiffs, 1)
	assert.Equal(t, "Maria da Silva", detail.Plaintiffs[0].Name)
	require.Len(t, detail.Defendants, 1)
	require.Len(t, detail.Performances, 2)
	assert.Equal(t, "Pauta de 15/04", detail.Performances[1].Observation)
}

func TestGetDetailNotFound(t *testing.T) {
	t.Run("http 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetDetail(context.Background(), "PRC-404")
		assert.ErrorIs(t, err, ErrProcessNotFound)
	})

	// Some upstream versions answer 200 with an error body instead of 404.
	t.Run("200 with error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"error": "process not found"}`))
		}))
		defer server.Close()

		c := NewClient(server.URL, "")
		_, err := c.GetDetail(context.Background(), "PRC-404")
		assert.ErrorIs(t, err, ErrProcessNotFound)
	})
}

func TestGetDetailUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, "")
	_, err := c.GetDetail(context.Background(), "PRC-001")
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestParseTimeLenient(t *testing.T) {
	assert.True(t, parseTime("").IsZero())
	assert.True(t, parseTime("10/03/2026").IsZero())
	assert.Equal(t, time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC), parseTime("2026-03-10T08:30:00Z"))
}
