package models

import "time"

// Entity is implemented by the per-file-type payload tables.
type Entity interface {
	TableName() string
	Base() *MediaEntity
}

// MediaEntity holds the columns shared by every entity table. ID is
// "<prefix>_<submission id>".
type MediaEntity struct {
	ID           string    `gorm:"column:id;type:text;primaryKey" json:"id"`
	SubmissionID string    `gorm:"column:submission_id;type:text;not null;uniqueIndex" json:"submissionId"`
	OwnerEmail   string    `gorm:"column:owner_email;type:text;not null;index" json:"userEmail"`
	FileName     string    `gorm:"column:file_name;type:text;not null" json:"fileName"`
	FileSize     int64     `gorm:"column:file_size;not null" json:"fileSize"`
	PreviewData  *string   `gorm:"column:preview_data;type:text" json:"previewData,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

type Image struct {
	MediaEntity
	Width  *int `gorm:"column:width" json:"width,omitempty"`
	Height *int `gorm:"column:height" json:"height,omitempty"`
}

func (Image) TableName() string {
	return "images"
}

func (i *Image) Base() *MediaEntity {
	return &i.MediaEntity
}

type Video struct {
	MediaEntity
	DurationSeconds *float64 `gorm:"column:duration_seconds" json:"durationSeconds,omitempty"`
}

func (Video) TableName() string {
	return "videos"
}

func (v *Video) Base() *MediaEntity {
	return &v.MediaEntity
}

type AudioFile struct {
	MediaEntity
	DurationSeconds *float64 `gorm:"column:duration_seconds" json:"durationSeconds,omitempty"`
}

func (AudioFile) TableName() string {
	return "audio_files"
}

func (a *AudioFile) Base() *MediaEntity {
	return &a.MediaEntity
}

// WebData stores document submissions.
type WebData struct {
	MediaEntity
	Extension string `gorm:"column:extension;type:text;not null;default:''" json:"extension"`
}

func (WebData) TableName() string {
	return "web_data"
}

func (w *WebData) Base() *MediaEntity {
	return &w.MediaEntity
}

