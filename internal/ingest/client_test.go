package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchSubject(t *testing.T) {
	fixture := readFixture(t, "csse1001.json")

	var gotQuery string
	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotQuery = r.URL.RawQuery
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/proxy.php", 5*time.Second, zerolog.Nop())
	listing, err := client.FetchSubject(context.Background(), Query{
		CourseCode: "CSSE1001",
		Campus:     "STLUC",
		Mode:       "IN",
		Year:       2020,
		Semester:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, "/subjects", gotQuery)
	assert.Equal(t, []string{"CSSE1001"}, gotForm["search-term"])
	assert.Equal(t, []string{"S2"}, gotForm["semester"])
	assert.Equal(t, []string{"STLUC"}, gotForm["campus"])
	assert.Len(t, gotForm["days"], 7)
	assert.Equal(t, "CSSE1001", listing.Name)
	assert.Len(t, listing.Components, 2)
}

func TestClient_FetchSubject_DefaultsAndStringBody(t *testing.T) {
	fixture := readFixture(t, "csse1001.json")
	wrapped, err := json.Marshal(string(fixture))
	require.NoError(t, err)

	var gotForm map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		_, _ = w.Write(wrapped)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	listing, err := client.FetchSubject(context.Background(), Query{CourseCode: "CSSE1001", Mode: "EX"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ALL"}, gotForm["campus"])
	assert.Equal(t, []string{"ALL"}, gotForm["semester"])
	assert.Equal(t, "EX", listing.DeliveryMode)
}

func TestClient_FetchSubject_Errors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
		_, err := client.FetchSubject(context.Background(), Query{CourseCode: "CSSE1001", Mode: "IN"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
		_, err := client.FetchSubject(context.Background(), Query{CourseCode: "CSSE1001", Mode: "IN"})
		assert.ErrorIs(t, err, ErrNoMatchingCourses)
	})

	t.Run("unknown delivery mode", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:0", time.Second, zerolog.Nop())
		_, err := client.FetchSubject(context.Background(), Query{CourseCode: "CSSE1001", Mode: "ZZ"})
		assert.ErrorIs(t, err, ErrUnknownDeliveryMode)
	})
}

func TestClient_ActiveSemesters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/currentSemesters", r.URL.RawQuery)
		body, _ := json.Marshal(`[{"year":2020,"semester":2,"active":true,"weeks":["27/07"]}]`)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second, zerolog.Nop())
	semesters, err := client.ActiveSemesters(context.Background())
	require.NoError(t, err)
	require.Len(t, semesters, 1)
	assert.Equal(t, 2020, semesters[0].Year)
	assert.True(t, semesters[0].Active)
}
