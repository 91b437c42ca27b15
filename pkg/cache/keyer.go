package cache

// ReportKeyOpts holds everything besides the input that changes a report.
type ReportKeyOpts struct {
	Description string `json:"description"`
	Composition string `json:"composition"`
	// Version invalidates entries written by other builds.
	Version string `json:"version"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ReportKey returns the key for the report of the input whose canonical
	// encoding hashes to inputHash.
	ReportKey(inputHash string, opts ReportKeyOpts) string
}

// DefaultKeyer produces "report:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ReportKey hashes inputHash together with opts.
func (DefaultKeyer) ReportKey(inputHash string, opts ReportKeyOpts) string {
	return hashKey("report", inputHash, opts)
}
