package templates

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blankFunction = `exports.handler = function(context, event, callback) {
  callback(null, {});
};`

// newTemplateServer serves a "blank" template shaped like the function
// templates repository: a functions directory, a README, a .env, and a
// tests directory that must not be copied.
func newTemplateServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var listings int32
	mux := http.NewServeMux()
	var srv *httptest.Server

	listing := func(w http.ResponseWriter, entries []map[string]string) {
		atomic.AddInt32(&listings, 1)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(entries))
	}

	mux.HandleFunc("/repos/twilio-labs/function-templates/contents/blank", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "next", r.URL.Query().Get("ref"))
		listing(w, []map[string]string{
			{"name": "functions"},
			{"name": "tests", "type": "dir"},
			{"name": ".env", "type": "file", "download_url": srv.URL + "/raw/blank/.env"},
			{"name": "README.md", "type": "file", "download_url": srv.URL + "/raw/blank/README.md"},
		})
	})
	mux.HandleFunc("/repos/twilio-labs/function-templates/contents/blank/functions", func(w http.ResponseWriter, r *http.Request) {
		listing(w, []map[string]string{
			{"name": "blank.js", "type": "file", "download_url": srv.URL + "/raw/blank/functions/blank.js"},
		})
	})
	mux.HandleFunc("/repos/twilio-labs/function-templates/contents/blank/tests", func(w http.ResponseWriter, r *http.Request) {
		t.Error("tests directory should not be listed")
	})
	mux.HandleFunc("/raw/blank/functions/blank.js", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(blankFunction))
	})
	mux.HandleFunc("/raw/blank/.env", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# blank template\nGREETING=hello\n"))
	})
	mux.HandleFunc("/raw/blank/README.md", func(w http.ResponseWriter, r *http.Request) {
		t.Error("README.md should not be downloaded")
	})
	mux.HandleFunc("/repos/twilio-labs/function-templates/contents/templates.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github.raw", r.Header.Get("Accept"))
		w.Write([]byte(`{"templates":[
			{"id":"hello-messaging","name":"Hello Messaging","description":"Respond to an SMS"},
			{"id":"blank","name":"Blank","description":"An empty function"}
		]}`))
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &listings
}

func newTestClient(srv *httptest.Server, opts ...Option) *Client {
	base := []Option{
		WithHTTPClient(srv.Client()),
		WithAPIBase(srv.URL),
		WithRepo("twilio-labs/function-templates"),
		WithRef("next"),
		WithRetry(2, time.Millisecond),
	}
	return New(append(base, opts...)...)
}

func TestFetch(t *testing.T) {
	srv, listings := newTemplateServer(t)
	c := newTestClient(srv)

	tree, err := c.Fetch(context.Background(), "blank")
	require.NoError(t, err)

	assert.Equal(t, []string{".env", "functions/blank.js"}, tree.Paths())
	assert.Equal(t, blankFunction, string(tree["functions/blank.js"]))
	assert.Contains(t, string(tree[".env"]), "GREETING=hello")
	assert.EqualValues(t, 2, atomic.LoadInt32(listings))
}

func TestFetch_NotFound(t *testing.T) {
	srv, _ := newTemplateServer(t)
	c := newTestClient(srv)

	_, err := c.Fetch(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestFetch_MissingFileIsNotTemplateNotFound(t *testing.T) {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/repos/twilio-labs/function-templates/contents/blank", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode([]map[string]string{
			{"name": ".env", "type": "file", "download_url": srv.URL + "/raw/blank/.env"},
		}))
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	_, err := newTestClient(srv).Fetch(context.Background(), "blank")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "downloading .env")
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_InvalidID(t *testing.T) {
	c := New()
	for _, id := range []string{"", "../secrets", "a//b"} {
		_, err := c.Fetch(context.Background(), id)
		assert.Error(t, err, "id %q", id)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tree, err := newTestClient(srv).Fetch(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, tree)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestFetch_RateLimitIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Fetch(context.Background(), "blank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestFetch_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "token ghp_test", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, WithToken("ghp_test")).Fetch(context.Background(), "blank")
	require.NoError(t, err)
}

func TestList(t *testing.T) {
	srv, _ := newTemplateServer(t)

	infos, err := newTestClient(srv).List(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "blank", infos[0].ID)
	assert.Equal(t, "Hello Messaging", infos[1].Name)
}

func TestWantDir(t *testing.T) {
	c := New(WithInclude("functions/**", "assets/**", ".env"))
	assert.True(t, c.wantDir("functions"))
	assert.True(t, c.wantDir("functions/nested"))
	assert.False(t, c.wantDir("tests"))

	c = New(WithInclude("**/*.js"))
	assert.True(t, c.wantDir("anything"))
}
