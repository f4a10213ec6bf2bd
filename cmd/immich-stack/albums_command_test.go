package main

import (
	"encoding/json"
	"testing"

	"immichstack/internal/testsupport"
)

func TestAlbumsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	env.server.AddAlbum(testsupport.FakeAlbum{ID: "b-id", AlbumName: "beach", Assets: []testsupport.FakeAsset{{ID: "1"}, {ID: "2"}}})
	env.server.AddAlbum(testsupport.FakeAlbum{ID: "a-id", AlbumName: "Alps"})

	out, _, err := runCLI(t, []string{"albums"}, env.configPath)
	if err != nil {
		t.Fatalf("albums: %v", err)
	}
	requireContains(t, out, "Alps")
	requireContains(t, out, "beach")
	requireContains(t, out, "2 albums")

	out, _, err = runCLI(t, []string{"albums", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("albums --json: %v", err)
	}
	var albums []struct {
		ID         string `json:"id"`
		AlbumName  string `json:"albumName"`
		AssetCount int    `json:"assetCount"`
	}
	if err := json.Unmarshal([]byte(out), &albums); err != nil {
		t.Fatalf("decode albums: %v", err)
	}
	if len(albums) != 2 || albums[0].AlbumName != "Alps" || albums[1].AssetCount != 2 {
		t.Fatalf("unexpected albums: %+v", albums)
	}
}

func TestAlbumsCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"albums"}, env.configPath)
	if err != nil {
		t.Fatalf("albums: %v", err)
	}
	if out != "No albums found.\n" {
		t.Fatalf("unexpected output %q", out)
	}
}
