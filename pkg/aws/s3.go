package aws

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// UploadFiles uploads the specified path to an S3 bucket. If the path is a
// directory, it uploads all regular files in the directory (non-recursive).
// If the path is a file, it uploads the single file.
func UploadFiles(ctx context.Context, client *s3.Client, bucket, srcPath string) error {
	info, err := os.Stat(srcPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return uploadDirectory(ctx, client, bucket, srcPath)
	}
	return uploadFile(ctx, client, bucket, srcPath, filepath.Base(srcPath))
}

func uploadDirectory(ctx context.Context, client *s3.Client, bucket, srcDir string) error {
	files, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if err := uploadFile(ctx, client, bucket, filepath.Join(srcDir, f.Name()), f.Name()); err != nil {
			return err
		}
	}
	return nil
}

func uploadFile(ctx context.Context, client *s3.Client, bucket, srcPath, key string) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   file,
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", bucket, key, err)
	}
	log.Info().Str("src", srcPath).Str("bucket", bucket).Str("key", key).Msg("uploaded")
	return nil
}
