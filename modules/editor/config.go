package editor

import "time"

// Config holds editor behavior settings.
type Config struct {
	TemplatePath      string        `env:"EDITOR_TEMPLATE_PATH"`
	HistoryLimit      int           `env:"EDITOR_HISTORY_LIMIT" envDefault:"20"`
	MaxImageWidth     int           `env:"EDITOR_MAX_IMAGE_WIDTH" envDefault:"800"`
	MaxUploadSize     int64         `env:"EDITOR_MAX_UPLOAD_SIZE" envDefault:"10485760"`
	GenerationTimeout time.Duration `env:"EDITOR_GENERATION_TIMEOUT" envDefault:"90s"`
	TestEmailSubject  string        `env:"EDITOR_TEST_EMAIL_SUBJECT" envDefault:"Email template preview"`
	ArtifactPrefix    string        `env:"EDITOR_ARTIFACT_PREFIX" envDefault:"exports"`
}

// DefaultConfig returns the settings used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		HistoryLimit:      20,
		MaxImageWidth:     800,
		MaxUploadSize:     10 << 20,
		GenerationTimeout: 90 * time.Second,
		TestEmailSubject:  "Email template preview",
		ArtifactPrefix:    "exports",
	}
}
