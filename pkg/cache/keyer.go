package cache

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// DatasetKey identifies a loaded dataset by its source location and the
	// server-side query sent with it.
	DatasetKey(source, query string) string
	// LayoutKey identifies a layout computed from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one rendered output. contentHash must cover the
	// layout and every person field the sinks print.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every input besides the dataset that changes a layout.
type LayoutKeyOpts struct {
	Filter        string  `json:"filter,omitempty"`
	Padding       int     `json:"padding,omitempty"`
	PxPerYear     float64 `json:"px_per_year,omitempty"`
	Epsilon       int     `json:"epsilon,omitempty"`
	MinLabelWidth float64 `json:"min_label_width,omitempty"`
	SkipEmpty     bool    `json:"skip_empty,omitempty"`
}

// ArtifactKeyOpts holds the render settings of one output.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Style    string `json:"style,omitempty"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
	Axis     bool   `json:"axis,omitempty"`
	Legend   bool   `json:"legend,omitempty"`
	Minimap  bool   `json:"minimap,omitempty"`
	Seed     uint64 `json:"seed,omitempty"`

	PersonURL string `json:"person_url,omitempty"`
	Columns   int    `json:"columns,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256 under a stage prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DatasetKey(source, query string) string {
	return hashKey("dataset", source, query)
}

func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

func (DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", contentHash, opts)
}

var _ Keyer = DefaultKeyer{}
