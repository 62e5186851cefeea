package file

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures artifact storage.
type Config struct {
	Driver           string `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir         string `env:"STORAGE_LOCAL_DIR" envDefault:"tmp/artifacts"`
	LocalBaseURL     string `env:"STORAGE_LOCAL_BASE_URL" envDefault:"/artifacts/"`
	S3Bucket         string `env:"STORAGE_S3_BUCKET"`
	S3Region         string `env:"STORAGE_S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"STORAGE_S3_SECRET_KEY"`
	S3Endpoint       string `env:"STORAGE_S3_ENDPOINT"`
	S3BaseURL        string `env:"STORAGE_S3_BASE_URL"`
	S3ForcePathStyle bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}
