package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeAsset is an asset as served by ImmichServer.
type FakeAsset struct {
	ID               string `json:"id"`
	OriginalPath     string `json:"originalPath,omitempty"`
	OriginalFileName string `json:"originalFileName,omitempty"`
}

// FakeAlbum is an album as served by ImmichServer.
type FakeAlbum struct {
	ID        string      `json:"id"`
	AlbumName string      `json:"albumName"`
	Assets    []FakeAsset `json:"assets"`
}

type fakeDuplicate struct {
	DuplicateID string      `json:"duplicateId"`
	Assets      []FakeAsset `json:"assets"`
}

// ImmichServer is an in-memory stand-in for the Immich endpoints the tool
// talks to. It records stack requests so tests can assert on them.
type ImmichServer struct {
	URL    string
	APIKey string

	mu         sync.Mutex
	duplicates []fakeDuplicate
	albums     []FakeAlbum
	failStacks map[string]int
	stacks     [][]string
	requestIDs []string
}

// NewImmichServer starts a fake server accepting apiKey and registers
// cleanup on t.
func NewImmichServer(t testing.TB, apiKey string) *ImmichServer {
	t.Helper()

	fake := &ImmichServer{APIKey: apiKey, failStacks: make(map[string]int)}
	server := httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(server.Close)
	fake.URL = server.URL
	return fake
}

// AddDuplicate registers a duplicate group.
func (s *ImmichServer) AddDuplicate(id string, assets ...FakeAsset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duplicates = append(s.duplicates, fakeDuplicate{DuplicateID: id, Assets: assets})
}

// AddAlbum registers an album.
func (s *ImmichServer) AddAlbum(album FakeAlbum) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.albums = append(s.albums, album)
}

// FailStack makes stack requests whose first asset id is primaryID answer
// with status.
func (s *ImmichServer) FailStack(primaryID string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStacks[primaryID] = status
}

// StackRequests returns the asset id lists received by POST /api/stacks.
func (s *ImmichServer) StackRequests() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.stacks))
	copy(out, s.stacks)
	return out
}

// RequestIDs returns every X-Request-Id header seen, in arrival order.
func (s *ImmichServer) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *ImmichServer) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-api-key") != s.APIKey {
		http.Error(w, `{"message":"Invalid API key"}`, http.StatusUnauthorized)
		return
	}
	s.mu.Lock()
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		s.requestIDs = append(s.requestIDs, rid)
	}
	s.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && path == "api/duplicates":
		s.mu.Lock()
		body := append([]fakeDuplicate{}, s.duplicates...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	case r.Method == http.MethodGet && path == "api/albums":
		s.mu.Lock()
		body := make([]map[string]any, 0, len(s.albums))
		for _, album := range s.albums {
			body = append(body, map[string]any{
				"id":         album.ID,
				"albumName":  album.AlbumName,
				"assetCount": len(album.Assets),
			})
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, body)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "api/albums/"):
		id := strings.TrimPrefix(path, "api/albums/")
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, album := range s.albums {
			if album.ID == id {
				writeJSON(w, http.StatusOK, album)
				return
			}
		}
		http.Error(w, `{"message":"Not found or no album.read access"}`, http.StatusNotFound)
	case r.Method == http.MethodPost && path == "api/stacks":
		var req struct {
			AssetIDs []string `json:"assetIds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.AssetIDs) < 2 {
			http.Error(w, `{"message":"assetIds must contain at least 2 elements"}`, http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		status, fail := s.failStacks[req.AssetIDs[0]]
		if !fail {
			s.stacks = append(s.stacks, req.AssetIDs)
		}
		s.mu.Unlock()
		if fail {
			http.Error(w, `{"message":"stack rejected"}`, status)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":             "stack-" + req.AssetIDs[0],
			"primaryAssetId": req.AssetIDs[0],
			"assets":         []any{},
		})
	default:
		http.NotFound(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
