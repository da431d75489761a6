package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers just enough of the S3 API for bucket checks and uploads.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		f.types[r.URL.Path] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestStore_Put(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()
	endpoint := strings.TrimPrefix(srv.URL, "http://")

	store, err := New(context.Background(), endpoint, "us-east-1", "venture", "access", "secret", false)
	require.NoError(t, err)
	require.NoError(t, store.Ping(context.Background()))

	url, err := store.Put(context.Background(), "pitches/a.md", []byte("# Pitch"), "text/markdown")
	require.NoError(t, err)

	assert.Equal(t, "http://"+endpoint+"/venture/pitches/a.md", url)
	require.Contains(t, fake.objects, "/venture/pitches/a.md")
	assert.Contains(t, string(fake.objects["/venture/pitches/a.md"]), "# Pitch")
	assert.Equal(t, "text/markdown", fake.types["/venture/pitches/a.md"])
}
