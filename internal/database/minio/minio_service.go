package minio

import (
	"context"
	"encoding/json"
	"farmbiz-service/internal/config"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioClient struct {
	client      *minio.Client
	resourceURL string
}

var Storage = struct {
	ActivityImages string
	ActivityVideos string
	BusinessImages string
}{
	ActivityImages: "activity-images",
	ActivityVideos: "activity-videos",
	BusinessImages: "business-images",
}

var BucketNames = []string{Storage.ActivityImages, Storage.ActivityVideos, Storage.BusinessImages}

func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		log.Printf("Invalid value for MinIO secure flag: %v. Defaulting to false.", err)
		isSecure = false
	}
	minioClient, err := minio.New(cfg.MinioUrl, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
	})
	if err != nil {
		log.Printf("error connecting to MinIO client: %v", err)
		return nil, err
	}

	// Ensure all buckets exist with public read access; stored media URLs are
	// served straight from the bucket.
	for _, v := range BucketNames {
		if err := ensureBucket(minioClient, v, cfg.MinioLocation); err != nil {
			return nil, err
		}
		if err := SetPublicBucketPolicy(minioClient, v); err != nil {
			log.Printf("Failed to set public policy for bucket %s: %v", v, err)
			return nil, err
		}
	}

	return &MinioClient{
		client:      minioClient,
		resourceURL: strings.TrimSuffix(cfg.MinioResourceUrl, "/"),
	}, nil
}

func SetPublicBucketPolicy(minioClient *minio.Client, bucketName string) error {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Action":    []string{"s3:GetObject"},
				"Effect":    "Allow",
				"Principal": map[string]any{"AWS": []string{"*"}},
				"Resource":  []string{fmt.Sprintf("arn:aws:s3:::%s/*", bucketName)},
			},
		},
	}

	policyJSON, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("failed to marshal bucket policy: %w", err)
	}

	return minioClient.SetBucketPolicy(context.Background(), bucketName, string(policyJSON))
}

func ensureBucket(client *minio.Client, bucketName, location string) error {
	ctx := context.Background()

	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		log.Printf("error checking bucket existence: %v", err)
		return err
	}
	if !exists {
		err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			log.Printf("error creating bucket: %v", err)
			return err
		}
		log.Printf("Bucket created successfully %s", bucketName)
	}

	return nil
}

// UploadFile streams an object into the given bucket and returns its public URL.
func (mc *MinioClient) UploadFile(ctx context.Context, bucket, fileName, contentType string, reader io.Reader, size int64) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := mc.client.PutObject(ctx, bucket, fileName, reader, size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", fileName, bucket, err)
	}
	return fmt.Sprintf("%s/%s/%s", mc.resourceURL, bucket, fileName), nil
}

func (mc *MinioClient) DeleteFile(ctx context.Context, bucket, fileName string) error {
	return mc.client.RemoveObject(ctx, bucket, fileName, minio.RemoveObjectOptions{})
}
