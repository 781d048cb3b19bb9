package storage

import (
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"centratutor/internal/logger"
)

// NewSession builds an S3 session from the ambient AWS credentials. Region
// defaults to us-east-1 when AWS_REGION is unset.
func NewSession() (*session.Session, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}
	return session.NewSession(&aws.Config{Region: aws.String(region)})
}

// UploadObject streams a media file to the content bucket and returns the
// object key stored on the Content row as file_path.
func UploadObject(sess *session.Session, bucket string, key string, contentType string, body io.Reader) error {
	uploader := s3manager.NewUploader(sess)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Errorf("failed to upload object %q to %q: %v", key, bucket, err)
		return err
	}

	logger.Infof("uploaded %q to %q", key, bucket)
	return nil
}
