// Package backup uploads compressed output files to S3 so shrunk media can
// be archived off the local machine. Uploads are deduplicated by comparing
// the local MD5 hash against the remote ETag.
package backup

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/shrinkgo/shrink/internal/logger"
)

// Uploader defines the interface for uploading files to S3
type Uploader interface {
	// UploadFiles uploads the given files to the bucket, skipping files that
	// already exist remotely with a matching hash.
	UploadFiles(ctx context.Context, paths []string, bucket string, maxConcurrent int) error
}

// s3Uploader implements the Uploader interface
type s3Uploader struct {
	client *s3.Client
}

// NewUploader creates a new Uploader using the default AWS configuration
func NewUploader(ctx context.Context) (Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &s3Uploader{
		client: s3.NewFromConfig(cfg),
	}, nil
}

// UploadFiles uploads files to S3 in parallel
func (u *s3Uploader) UploadFiles(ctx context.Context, paths []string, bucket string, maxConcurrent int) error {
	if len(paths) == 0 {
		logger.Info("No files to upload")
		return nil
	}
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	logger.Info("Starting S3 upload", "files", len(paths), "bucket", bucket, "concurrency", maxConcurrent)

	jobs := make(chan string, len(paths))
	results := make(chan error, len(paths))
	var wg sync.WaitGroup

	for i := 0; i < maxConcurrent; i++ {
		wg.Add(1)
		go u.uploadWorker(ctx, i, bucket, jobs, results, &wg)
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)

	wg.Wait()
	close(results)

	var failures []error
	successCount := 0
	for err := range results {
		if err != nil {
			failures = append(failures, err)
		} else {
			successCount++
		}
	}

	if len(failures) > 0 {
		logger.Error("Upload completed with errors", "successful", successCount, "failed", len(failures))
		return fmt.Errorf("upload failed for %d files", len(failures))
	}

	logger.Info("Upload completed successfully", "files_uploaded", successCount)
	return nil
}

// uploadWorker processes upload jobs from the jobs channel
func (u *s3Uploader) uploadWorker(ctx context.Context, workerID int, bucket string, jobs <-chan string, results chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()
	for path := range jobs {
		logger.Debug("Worker processing file", "worker", workerID, "file", path)
		if err := u.uploadFile(ctx, path, bucket); err != nil {
			logger.Error("Failed to upload file", "file", path, "error", err)
			results <- fmt.Errorf("file %s: %w", path, err)
		} else {
			results <- nil
		}
	}
}

// uploadFile uploads a single file, skipping it when the remote copy matches
func (u *s3Uploader) uploadFile(ctx context.Context, path, bucket string) error {
	key := filepath.Base(path)

	localHash, err := calculateMD5(path)
	if err != nil {
		return fmt.Errorf("failed to calculate MD5: %w", err)
	}

	headOutput, err := u.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})

	if err == nil {
		remoteETag := ""
		if headOutput.ETag != nil {
			// Remove quotes from ETag
			remoteETag = strings.Trim(*headOutput.ETag, "\"")
		}

		if remoteETag == localHash {
			logger.Info("Object already exists in S3 with matching hash, skipping", "key", key, "hash", localHash)
			return nil
		}

		return fmt.Errorf("hash mismatch for %q: S3 object exists with different content (local: %s, remote: %s)", key, localHash, remoteETag)
	} else if !isNotFoundError(err) {
		return fmt.Errorf("failed to check S3 object existence: %w", err)
	}

	logger.Info("Uploading to S3", "bucket", bucket, "key", key, "hash", localHash)

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}

	logger.Info("Successfully uploaded file", "key", key)
	return nil
}

// calculateMD5 calculates the MD5 hash of a file
func calculateMD5(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// isNotFoundError checks if the error is a NotFound error
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if apiErr.ErrorCode() == "NotFound" {
			return true
		}
	}

	// Check error message as fallback
	errMsg := err.Error()
	return strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "StatusCode: 404")
}
