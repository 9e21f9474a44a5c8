package config

// StorageConfig describes the optional S3 archive for uploaded report
// files. When Bucket is empty archival is disabled and uploads stay on
// local disk only.
type StorageConfig struct {
	Bucket     string
	Region     string
	Endpoint   string
	PresignTTL int // seconds
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Bucket:     getEnv("S3_BUCKET", ""),
		Region:     getEnv("AWS_REGION", "us-east-1"),
		Endpoint:   getEnv("S3_ENDPOINT", ""),
		PresignTTL: getEnvInt("S3_PRESIGN_TTL", 3600),
	}
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}
