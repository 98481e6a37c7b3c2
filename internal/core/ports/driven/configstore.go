package driven

// ConfigStore provides read access to application configuration.
// Keys use dot notation for nested tables, e.g. "keywords.sheets.worksheet".
type ConfigStore interface {
	// Get retrieves a configuration value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns "" when the key is missing or not a string.
	GetString(key string) string

	// GetInt returns 0 when the key is missing or not an integer.
	GetInt(key string) int

	// GetStringSlice returns nil when the key is missing or not an array.
	GetStringSlice(key string) []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Load re-reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
