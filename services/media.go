package services

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tarunbommali/nxtgen-arena-sub000/dto"
	"github.com/tarunbommali/nxtgen-arena-sub000/model"
	"github.com/tarunbommali/nxtgen-arena-sub000/shared"
)

// MediaService stores problem sheet attachments (PDF exports, solution
// archives) in the object store and tracks them as SheetAsset rows.
type MediaService struct {
	context.DefaultService
	sqlSvc   *SqlService
	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

const assetURLExpiry = 15 * time.Minute

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// ==================== SHEET ASSETS ====================

func (svc *MediaService) UploadSheetAsset(sheetID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error) {
	if _, err := svc.sqlSvc.GetSheet(sheetID); err != nil {
		return nil, err
	}

	if !svc.isValidAssetFile(file.Filename) {
		return nil, shared.NewBadRequestError(nil, "Invalid file format. Supported: PDF, ZIP, PNG, JPG")
	}

	if file.Size > 25*1024*1024 {
		return nil, shared.NewBadRequestError(nil, "File too large. Maximum size: 25MB")
	}

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to read uploaded file")
	}
	defer src.Close()

	objectName := svc.minioSvc.AssetObjectName(sheetID, file.Filename)

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := svc.minioSvc.PutAsset(objectName, src, file.Size, contentType); err != nil {
		return nil, shared.NewInternalError(err, "Failed to store file")
	}

	asset := &model.SheetAsset{
		ID:          uuid.Must(uuid.NewV7()).String(),
		SheetID:     sheetID,
		ObjectName:  objectName,
		FileName:    file.Filename,
		ContentType: contentType,
		SizeBytes:   file.Size,
		CreatedAt:   time.Now(),
	}
	if err := svc.sqlSvc.CreateSheetAsset(asset); err != nil {
		// Keep the store consistent with the database row.
		if delErr := svc.minioSvc.RemoveAsset(objectName); delErr != nil {
			log.WithError(delErr).WithField("object", objectName).Warn("Failed to clean up orphaned object")
		}
		return nil, err
	}

	return &dto.MediaUploadResponse{
		AssetID:     asset.ID,
		ObjectName:  asset.ObjectName,
		FileName:    asset.FileName,
		ContentType: asset.ContentType,
		SizeBytes:   asset.SizeBytes,
		UploadedAt:  asset.CreatedAt,
	}, nil
}

func (svc *MediaService) GetSheetAssets(sheetID string) ([]model.SheetAsset, error) {
	if _, err := svc.sqlSvc.GetSheet(sheetID); err != nil {
		return nil, err
	}
	return svc.sqlSvc.GetSheetAssets(sheetID)
}

// GetSheetAssetURL returns a short-lived presigned download link.
func (svc *MediaService) GetSheetAssetURL(assetID string) (*dto.MediaURLResponse, error) {
	asset, err := svc.sqlSvc.GetSheetAsset(assetID)
	if err != nil {
		return nil, err
	}

	url, err := svc.minioSvc.PresignAssetURL(asset.ObjectName, assetURLExpiry)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to generate download URL")
	}

	return &dto.MediaURLResponse{
		AssetID:   asset.ID,
		URL:       url,
		ExpiresAt: time.Now().Add(assetURLExpiry),
	}, nil
}

func (svc *MediaService) DeleteSheetAsset(assetID string) error {
	asset, err := svc.sqlSvc.GetSheetAsset(assetID)
	if err != nil {
		return err
	}

	if err := svc.minioSvc.RemoveAsset(asset.ObjectName); err != nil {
		return shared.NewInternalError(err, "Failed to delete stored file")
	}
	return svc.sqlSvc.DeleteSheetAsset(assetID)
}

func (svc *MediaService) isValidAssetFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".zip", ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
