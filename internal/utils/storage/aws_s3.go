package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	awsSdk "github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"recipehub-backend/internal/utils"
)

var AllowImage = []string{"jpg", "jpeg", "png", "gif", "webp"}

type (
	AwsS3 interface {
		UploadBlob(dir string, blob utils.ImageBlob) (string, error)
		DeleteFile(objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(region),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading AWS config: %v", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

func allowedExt(ext string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(ext, a) {
			return true
		}
	}
	return false
}

func (s *awsS3) UploadBlob(dir string, blob utils.ImageBlob) (string, error) {
	if !allowedExt(blob.Ext, AllowImage) {
		return "", fmt.Errorf("file extension %q not allowed", blob.Ext)
	}

	objectKey := fmt.Sprintf("%s/%s.%s", dir, uuid.New().String(), blob.Ext)
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      awsSdk.String(s.bucket),
		Key:         awsSdk.String(objectKey),
		Body:        bytes.NewReader(blob.Data),
		ContentType: awsSdk.String("image/" + blob.Ext),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(objectKey string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: awsSdk.String(s.bucket),
		Key:    awsSdk.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(link, prefix)
}
