package reconcile

// Config holds configuration for import runs.
type Config struct {
	// TimeoutSeconds bounds one whole import; rows still pending when the
	// deadline passes are reported as failed with partial progress kept.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}
