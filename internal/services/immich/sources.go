package immich

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"immichstack/internal/pairing"
	"immichstack/internal/services"
)

// DuplicatesSource feeds the server's duplicate groups to the matcher.
type DuplicatesSource struct {
	Client *Client
}

// Groups fetches GET /api/duplicates and converts every entry to a
// candidate group keyed by its duplicate id.
func (s DuplicatesSource) Groups(ctx context.Context) ([]pairing.Group, error) {
	if s.Client == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "duplicates", "client unavailable", nil)
	}
	dupes, err := s.Client.Duplicates(ctx)
	if err != nil {
		return nil, err
	}
	groups := make([]pairing.Group, 0, len(dupes))
	for i, dupe := range dupes {
		key := dupe.DuplicateID
		if key == "" {
			key = fmt.Sprintf("duplicate[%d]", i)
		}
		groups = append(groups, pairing.Group{Key: key, Assets: toPairingAssets(dupe.Assets)})
	}
	return groups, nil
}

// AlbumSource pairs neighbouring assets of one or more albums. Albums are
// fetched concurrently; the resulting groups keep the album order given.
type AlbumSource struct {
	Client      *Client
	AlbumIDs    []string
	Concurrency int
}

// Groups fetches every album and returns its adjacent candidate groups.
func (s AlbumSource) Groups(ctx context.Context) ([]pairing.Group, error) {
	if s.Client == nil {
		return nil, services.Wrap(services.ErrConfiguration, stageName, "albums", "client unavailable", nil)
	}
	if len(s.AlbumIDs) == 0 {
		return nil, nil
	}
	limit := s.Concurrency
	if limit <= 0 {
		limit = 1
	}

	perAlbum := make([][]pairing.Group, len(s.AlbumIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range s.AlbumIDs {
		g.Go(func() error {
			album, err := s.Client.Album(services.WithAlbum(gctx, id), id)
			if err != nil {
				return err
			}
			label := album.AlbumName
			if label == "" {
				label = id
			}
			perAlbum[i] = pairing.AdjacentGroups(label, toPairingAssets(album.Assets))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var groups []pairing.Group
	for _, batch := range perAlbum {
		groups = append(groups, batch...)
	}
	return groups, nil
}

// ResolveAlbums maps album references (ids or names) to album ids. Anything
// that parses as a UUID is taken as an id; names match case-insensitively
// against the album list and must be unambiguous.
func (c *Client) ResolveAlbums(ctx context.Context, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	pending := make(map[int]string)
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" {
			continue
		}
		if _, err := uuid.Parse(ref); err == nil {
			ids = append(ids, ref)
			continue
		}
		pending[len(ids)] = ref
		ids = append(ids, "")
	}
	if len(pending) == 0 {
		return ids, nil
	}

	albums, err := c.Albums(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string][]string, len(albums))
	for _, album := range albums {
		key := strings.ToLower(strings.TrimSpace(album.AlbumName))
		byName[key] = append(byName[key], album.ID)
	}
	for i := range ids {
		name, ok := pending[i]
		if !ok {
			continue
		}
		matches := byName[strings.ToLower(name)]
		switch len(matches) {
		case 0:
			return nil, services.Wrap(services.ErrNotFound, stageName, "resolve album", fmt.Sprintf("no album named %q", name), nil)
		case 1:
			ids[i] = matches[0]
		default:
			return nil, services.Wrap(services.ErrValidation, stageName, "resolve album", fmt.Sprintf("album name %q is ambiguous (%d matches); pass the album id instead", name, len(matches)), nil)
		}
	}
	return ids, nil
}
