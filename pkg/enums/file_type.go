package enums

import (
	"fmt"
	"strings"
)

// FileType identifies which entity store receives a submission's payload.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeAudio    FileType = "audio"
	FileTypeVideo    FileType = "video"
	FileTypeDocument FileType = "document"
)

var validFileTypes = []FileType{
	FileTypeImage,
	FileTypeAudio,
	FileTypeVideo,
	FileTypeDocument,
}

// String implements fmt.Stringer.
func (f FileType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known file type.
func (f FileType) IsValid() bool {
	for _, candidate := range validFileTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFileType converts raw input into FileType. Matching is case-insensitive.
func ParseFileType(value string) (FileType, error) {
	normalized := FileType(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid file type %q", value)
}
