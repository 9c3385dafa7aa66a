package driven

// ConfigStore is the flat key/value settings file. Keys use dots to name
// sections ("backend.url"). Typed getters return the zero value for a
// missing key or a value of another type.
type ConfigStore interface {
	// Get returns the raw value and whether key is set.
	Get(key string) (any, bool)

	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool

	// GetStringSlice returns nil unless the value is a list of strings.
	GetStringSlice(key string) []string

	// Set stores value and writes the file.
	Set(key string, value any) error

	// Delete removes key and writes the file. Deleting a missing key is not
	// an error.
	Delete(key string) error

	// Save writes the current values.
	Save() error

	// Load re-reads the file, replacing the in-memory values.
	Load() error

	// Path returns the file location.
	Path() string
}
