package model

import "errors"

// Attachment is an uploaded image. The row is created at upload time with a
// NULL tweet_id and claimed when a tweet is created with its id; until then it
// is an orphan owned by nobody.
type Attachment struct {
	ID        int64  `db:"id" json:"id"`
	TweetID   *int64 `db:"tweet_id" json:"tweet_id,omitempty"`
	ImagePath string `db:"image_path" json:"image_path"`
}

// MediaUploadResponse returns the id of the stored attachment.
type MediaUploadResponse struct {
	Result  bool  `json:"result"`
	MediaID int64 `json:"media_id"`
}

// Supported image content types for upload validation.
const (
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
)

// ExtensionForContentType maps an allowed content type to the stored file
// extension. Returns "" for unknown types.
func ExtensionForContentType(contentType string) string {
	switch contentType {
	case ContentTypeJPEG:
		return ".jpg"
	case ContentTypePNG:
		return ".png"
	case ContentTypeGIF:
		return ".gif"
	}
	return ""
}

var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrInvalidImageType   = errors.New("invalid image type")
	ErrNotAnImage         = errors.New("file is not a decodable image")
	ErrAttachmentNotFound = errors.New("attachment not found")
)
