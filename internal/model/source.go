// Package model defines the data structures shared by the schema test runner.
package model

// Path represents a file system path.
type Path string

// SchemaFormat identifies how a schema source is encoded on disk.
type SchemaFormat string

const (
	// FormatJSON is a JSON encoded schema document.
	FormatJSON SchemaFormat = "json"

	// FormatYAML is a YAML encoded schema document.
	FormatYAML SchemaFormat = "yaml"
)

// Target is a schema file picked up for a single invocation. It only lives
// until the schema has been decoded.
type Target struct {
	Path       Path
	RawContent []byte
}

// Invocation is what a host hands to the runner for one file.
type Invocation struct {
	TestPath     Path
	Config       ProcessingConfig
	GlobalConfig any
}

// ProcessingConfig controls the source transform pipeline.
type ProcessingConfig struct {
	// TransformIgnorePatterns are regular expressions; a matching path is
	// decoded without running any transformer.
	TransformIgnorePatterns []string `mapstructure:"ignore_patterns" yaml:"ignore_patterns"`

	// Transform maps path patterns to registered transformer IDs. The first
	// matching entry wins.
	Transform []TransformSpec `mapstructure:"rules" yaml:"rules"`
}

// TransformSpec pairs a path pattern with a transformer ID.
type TransformSpec struct {
	Pattern     string `mapstructure:"pattern" yaml:"pattern"`
	Transformer string `mapstructure:"transformer" yaml:"transformer"`
}
