// Package mediatype maps file extensions to upload content types and the
// per-family size limits the analysis service enforces.
package mediatype

import (
	"path/filepath"
	"strings"
)

const (
	videoSizeLimit = 262144000 // 250 MiB
	imageSizeLimit = 52428800  // 50 MiB
	audioSizeLimit = 20971520  // 20 MiB
	textSizeLimit  = 5242880   // 5 MiB
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".txt":  "text/plain",
}

var sizeLimits = map[string]int64{
	".mp4":  videoSizeLimit,
	".mov":  videoSizeLimit,
	".jpg":  imageSizeLimit,
	".jpeg": imageSizeLimit,
	".png":  imageSizeLimit,
	".gif":  imageSizeLimit,
	".webp": imageSizeLimit,
	".flac": audioSizeLimit,
	".wav":  audioSizeLimit,
	".mp3":  audioSizeLimit,
	".m4a":  audioSizeLimit,
	".aac":  audioSizeLimit,
	".alac": audioSizeLimit,
	".ogg":  audioSizeLimit,
	".txt":  textSizeLimit,
}

// ForPath returns the upload content type for a file path, falling back to
// application/octet-stream for unknown extensions.
func ForPath(path string) string {
	if ct, ok := contentTypes[normalizeExt(path)]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SizeLimit returns the service's upload size limit for the file's media
// family. Unknown extensions have no limit; the service decides for those.
func SizeLimit(path string) (int64, bool) {
	limit, ok := sizeLimits[normalizeExt(path)]
	return limit, ok
}

func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
