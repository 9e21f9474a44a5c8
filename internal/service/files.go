package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/arogyalab/backend/config"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips path components and unsafe characters. Uploads
// with the same sanitized name overwrite each other on disk; the database
// row keeps its own copy of the name so history is unaffected.
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}

// FileStore writes uploads to local disk and, when configured, archives a
// copy to S3. Local disk is authoritative; S3 failures are logged only.
type FileStore struct {
	uploadDir string
	s3Client  *s3.Client
	bucket    string
	presign   time.Duration
}

func NewFileStore(ctx context.Context, uploadDir string, storage config.StorageConfig) (*FileStore, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	fs := &FileStore{
		uploadDir: uploadDir,
		presign:   time.Duration(storage.PresignTTL) * time.Second,
	}

	if storage.Enabled() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(storage.Region),
		)
		if err != nil {
			return nil, err
		}
		fs.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if storage.Endpoint != "" {
				o.BaseEndpoint = aws.String(storage.Endpoint)
			}
		})
		fs.bucket = storage.Bucket
	}

	return fs, nil
}

// Save writes the upload under the sanitized name and returns the local
// path. An existing file with the same name is overwritten.
func (fs *FileStore) Save(ctx context.Context, name string, src io.Reader) (string, error) {
	safe := SanitizeFilename(name)
	path := filepath.Join(fs.uploadDir, safe)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	fs.archive(ctx, safe, path)
	return path, nil
}

// archive copies the stored file to S3. Best effort only.
func (fs *FileStore) archive(ctx context.Context, key, path string) {
	if fs.s3Client == nil {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		log.Printf("s3 archive skipped for %s: %v", key, err)
		return
	}
	defer f.Close()

	_, err = fs.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String("reports/" + key),
		Body:   f,
	})
	if err != nil {
		log.Printf("s3 archive failed for %s: %v", key, err)
	}
}

// ArchiveURL returns a presigned link to the archived copy, or "" when
// archival is disabled.
func (fs *FileStore) ArchiveURL(ctx context.Context, name string) (string, error) {
	if fs.s3Client == nil {
		return "", nil
	}

	presignClient := s3.NewPresignClient(fs.s3Client)
	presigned, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String("reports/" + SanitizeFilename(name)),
	}, s3.WithPresignExpires(fs.presign))
	if err != nil {
		return "", err
	}
	return presigned.URL, nil
}

func (fs *FileStore) UploadDir() string {
	return fs.uploadDir
}
