package cache

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	Placement string   `json:"placement"`
	Filter    []string `json:"filter,omitempty"`
	StyleHash string   `json:"style_hash"`
}

// ArtifactKeyOpts holds every option that changes rendered bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Engine     string  `json:"engine"`
	StyleHash  string  `json:"style_hash"`
	Scale      float64 `json:"scale,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	HideLabels bool    `json:"hide_labels,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
