package types

// ScanConfig holds settings for texture discovery.
type ScanConfig struct {
	// Recursive controls whether subdirectories are scanned (default true).
	Recursive bool `json:"recursive" yaml:"recursive"`

	// Filter is an optional substring filter on the file name.
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// ToolConfig holds settings for the external maketx invocation.
type ToolConfig struct {
	// MaketxPath is the path to the maketx executable. Empty means look it
	// up on PATH.
	MaketxPath string `json:"maketx_path" yaml:"maketx_path"`

	// OCIOPath is the OpenColorIO configuration file passed via --colorconfig.
	OCIOPath string `json:"ocio_path" yaml:"ocio_path"`

	// Verbose adds -v to the tool invocation.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// RunnerConfig holds settings for the bounded job runner.
type RunnerConfig struct {
	// Workers is the maximum number of concurrent tool processes.
	// Zero means max(1, cpu_count - 1).
	Workers int `json:"workers" yaml:"workers"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables history recording.
	Path string `json:"path" yaml:"path"`
}

// BatchConfig groups all settings for one conversion batch.
type BatchConfig struct {
	Scan    ScanConfig    `json:"scan" yaml:"scan"`
	Tool    ToolConfig    `json:"tool" yaml:"tool"`
	Runner  RunnerConfig  `json:"runner" yaml:"runner"`
	History HistoryConfig `json:"history" yaml:"history"`
}
