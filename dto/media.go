package dto

import "time"

type MediaUploadResponse struct {
	AssetID     string    `json:"asset_id"`
	ObjectName  string    `json:"object_name"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type MediaURLResponse struct {
	AssetID   string    `json:"asset_id"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
