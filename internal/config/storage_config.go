package config

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetStaticDir() string {
	return GetEnv("STATIC_DIR", "./static")
}

// GetS3Bucket selects the S3 object store when non-empty.
func (Storage) GetS3Bucket() string {
	return GetEnv("S3_BUCKET", "")
}

func (Storage) GetS3Region() string {
	return GetEnv("S3_REGION", "us-east-1")
}

// GetS3Endpoint overrides the AWS endpoint, e.g. for MinIO.
func (Storage) GetS3Endpoint() string {
	return GetEnv("S3_ENDPOINT", "")
}

func (Storage) GetS3AccessKey() string {
	return GetEnv("S3_ACCESS_KEY", "")
}

func (Storage) GetS3SecretKey() string {
	return GetEnv("S3_SECRET_KEY", "")
}

func (Storage) GetS3PublicURL() string {
	return GetEnv("S3_PUBLIC_URL", "")
}
