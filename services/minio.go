package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// MinIOService is the object store behind problem sheet assets. A single
// bucket holds every asset; keys are namespaced per sheet so all of a
// sheet's files share the "sheets/<sheetID>/" prefix.
type MinIOService struct {
	appContext.DefaultService

	client *minio.Client

	endpoint  string
	accessKey string
	secretKey string
	bucket    string
	useSSL    bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucket = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucket == "" {
		svc.bucket = "nxtgen-arena"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}
	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"endpoint": svc.endpoint,
		"bucket":   svc.bucket,
	}).Info("Object store ready")
	return nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", svc.bucket, err)
	}
	if exists {
		return nil
	}

	if err := svc.client.MakeBucket(ctx, svc.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %q: %w", svc.bucket, err)
	}
	log.WithField("bucket", svc.bucket).Info("Created asset bucket")
	return nil
}

// AssetObjectName builds the bucket key for a new sheet asset. The
// nanosecond component keeps repeated uploads of the same filename from
// colliding.
func (svc *MinIOService) AssetObjectName(sheetID, filename string) string {
	return fmt.Sprintf("sheets/%s/%d%s", sheetID, time.Now().UnixNano(), filepath.Ext(filename))
}

// PutAsset streams an uploaded file into the bucket under objectName.
func (svc *MinIOService) PutAsset(objectName string, r io.Reader, size int64, contentType string) error {
	_, err := svc.client.PutObject(context.Background(), svc.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("put %q: %w", objectName, err)
	}
	return nil
}

// PresignAssetURL returns a time-limited download link for a stored asset.
func (svc *MinIOService) PresignAssetURL(objectName string, expiry time.Duration) (string, error) {
	u, err := svc.client.PresignedGetObject(context.Background(), svc.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", objectName, err)
	}
	return u.String(), nil
}

// RemoveAsset deletes a stored asset. Removing an already-gone object is
// not an error, so orphan cleanup can retry safely.
func (svc *MinIOService) RemoveAsset(objectName string) error {
	if err := svc.client.RemoveObject(context.Background(), svc.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %q: %w", objectName, err)
	}
	return nil
}
