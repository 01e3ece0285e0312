package blob

import (
	"context"
	"io"
	"strings"
)

// CropMode mirrors the transform modes the upload flows use: "fill"
// produces an exact WxH crop, "limit" only scales down to fit.
type CropMode string

const (
	CropFill  CropMode = "fill"
	CropLimit CropMode = "limit"
)

// Transform is applied to an image before it is stored.
type Transform struct {
	Width  int
	Height int
	Crop   CropMode
}

// Storage is the blob collaborator contract: store a transformed image
// under a folder and return its public URL, or destroy one by public id.
type Storage interface {
	Upload(ctx context.Context, r io.Reader, folder string, t Transform) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// PublicIDFromURL derives the "folder/filename" public id from a stored
// object URL. Returns "" when the URL does not look like one of ours.
func PublicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return ""
	}
	filename := parts[len(parts)-1]
	folder := parts[len(parts)-2]
	if filename == "" || folder == "" {
		return ""
	}
	if i := strings.LastIndex(filename, "."); i > 0 {
		filename = filename[:i]
	}
	return folder + "/" + filename
}
