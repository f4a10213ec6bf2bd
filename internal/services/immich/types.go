package immich

import "immichstack/internal/pairing"

// Asset is the subset of an Immich asset response the tool reads.
type Asset struct {
	ID               string `json:"id"`
	OriginalPath     string `json:"originalPath"`
	OriginalFileName string `json:"originalFileName"`
	// Filename is accepted for older servers and hand-written fixtures.
	Filename string `json:"filename,omitempty"`
}

// DuplicateGroup is one entry of GET /api/duplicates.
type DuplicateGroup struct {
	DuplicateID string  `json:"duplicateId"`
	Assets      []Asset `json:"assets"`
}

// Album is returned by GET /api/albums and GET /api/albums/{id}. Assets is
// only populated by the single-album endpoint.
type Album struct {
	ID         string  `json:"id"`
	AlbumName  string  `json:"albumName"`
	AssetCount int     `json:"assetCount"`
	Assets     []Asset `json:"assets"`
}

// Stack is the response of POST /api/stacks.
type Stack struct {
	ID             string  `json:"id"`
	PrimaryAssetID string  `json:"primaryAssetId"`
	Assets         []Asset `json:"assets"`
}

type createStackRequest struct {
	AssetIDs []string `json:"assetIds"`
}

func (a Asset) toPairing() pairing.Asset {
	return pairing.Asset{
		ID:               a.ID,
		OriginalPath:     a.OriginalPath,
		OriginalFileName: a.OriginalFileName,
		Filename:         a.Filename,
	}
}

func toPairingAssets(assets []Asset) []pairing.Asset {
	out := make([]pairing.Asset, len(assets))
	for i, a := range assets {
		out[i] = a.toPairing()
	}
	return out
}
