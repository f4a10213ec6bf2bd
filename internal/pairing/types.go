package pairing

// Asset is the slice of a library asset the matcher consumes.
type Asset struct {
	ID               string
	OriginalPath     string
	OriginalFileName string
	Filename         string
}

// Name resolves the asset's effective name: the original path when known,
// then the original file name, then the legacy filename field.
func (a Asset) Name() string {
	return firstNonEmpty(a.OriginalPath, a.OriginalFileName, a.Filename)
}

// Group is a candidate group as delivered by a source. Key identifies the
// group for logging (duplicate id, album position).
type Group struct {
	Key    string
	Assets []Asset
}

// Pair is a matched group ordered with the primary asset first.
type Pair struct {
	Key   string    `json:"key,omitempty"`
	IDs   [2]string `json:"ids"`
	Paths [2]string `json:"paths"`
	Exts  [2]string `json:"exts"`
}

// Primary returns the identifier chosen to represent the stack.
func (p Pair) Primary() string {
	return p.IDs[0]
}

// StackRequest returns the asset ids to group, primary first.
func (p Pair) StackRequest() []string {
	return []string{p.IDs[0], p.IDs[1]}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
