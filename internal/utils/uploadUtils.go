package utils

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// UploadDir is where multipart image uploads are stored; the server exposes
// it read-only under /uploads/.
const UploadDir = "uploads"

var ErrNoUpload = errors.New("no uploaded file")

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// SaveUploadedImage stores the multipart file under field in UploadDir with a
// unique suffix and returns its public URL path. Returns ErrNoUpload when the
// request carries no file for the field.
func SaveUploadedImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", ErrNoUpload
		}
		return "", err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return "", fmt.Errorf("only image files are allowed, got %q", contentType)
	}

	if err := os.MkdirAll(UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	base := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(header.Filename), ext), " ", "_")
	name := fmt.Sprintf("%s-%d-%d%s", base, time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)

	dst, err := os.Create(filepath.Join(UploadDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	log.Debug().Str("file", name).Msg("Stored uploaded image")
	return "/uploads/" + name, nil
}
