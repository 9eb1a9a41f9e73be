// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/clubarena/clubsite-go/internal/model"
	"github.com/clubarena/clubsite-go/internal/util"
)

// MaxUploadBytes is the upload size limit.
const MaxUploadBytes = 10 << 20 // 10 MB

// thumbnailWidth is the bounding width of generated image thumbnails.
const thumbnailWidth = 400

// MediaService stores uploaded files under the upload directory. Files
// are renamed to a generated id; image uploads get a thumbnail.
type MediaService struct {
	uploadDir string
	audit     *AuditService
}

// NewMediaService creates a MediaService rooted at uploadDir, creating
// the directory if needed.
func NewMediaService(uploadDir string, audit *AuditService) (*MediaService, error) {
	if err := util.EnsureDir(uploadDir); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &MediaService{uploadDir: uploadDir, audit: audit}, nil
}

// UploadedFile describes a stored upload.
type UploadedFile struct {
	FileName      string `json:"file_name"` // generated name on disk
	OriginalName  string `json:"original_name"`
	Path          string `json:"path"`
	ThumbnailPath string `json:"thumbnail_path,omitempty"`
	Size          int64  `json:"size"`
	MimeType      string `json:"mime_type"`
}

// Save validates and stores one uploaded file. The MIME type must be
// on the allow-list and the content must not exceed MaxUploadBytes.
// Image uploads get a thumbnail next to the original; a failed
// thumbnail is logged and skipped.
func (s *MediaService) Save(ctx context.Context, originalName, mimeType string, r io.Reader) (UploadedFile, error) {
	mimeType = strings.TrimSpace(strings.ToLower(mimeType))
	if !model.AllowedUploadMimeTypes[mimeType] {
		return UploadedFile{}, &ValidationError{Field: "file", Reason: "unsupported file type " + mimeType}
	}

	name := uuid.New().String() + extensionFor(mimeType, originalName)
	path := filepath.Join(s.uploadDir, name)

	out, err := os.Create(path)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("creating upload file: %w", err)
	}

	// One byte over the limit distinguishes "too large" from "exactly
	// at the limit".
	written, err := io.Copy(out, io.LimitReader(r, MaxUploadBytes+1))
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return UploadedFile{}, fmt.Errorf("writing upload: %w", err)
	}
	if written > MaxUploadBytes {
		_ = os.Remove(path)
		return UploadedFile{}, &ValidationError{Field: "file", Reason: "exceeds the 10 MB limit"}
	}

	uploaded := UploadedFile{
		FileName:     name,
		OriginalName: originalName,
		Path:         path,
		Size:         written,
		MimeType:     mimeType,
	}

	if model.IsImageMime(mimeType) {
		if thumb, err := s.writeThumbnail(path, name); err != nil {
			slog.Warn("thumbnail generation failed", "file", name, "error", err)
		} else {
			uploaded.ThumbnailPath = thumb
		}
	}

	s.audit.Log(ctx, model.AuditLevelInfo, model.AuditCategoryContent, "file uploaded",
		map[string]any{"file": name, "size": written, "mime": mimeType})
	return uploaded, nil
}

// writeThumbnail renders a width-bounded thumbnail beside the original.
func (s *MediaService) writeThumbnail(path, name string) (string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return "", err
	}
	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	thumbPath := filepath.Join(s.uploadDir, "thumb_"+name)
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return "", err
	}
	return thumbPath, nil
}

// Remove deletes a stored file and its thumbnail if present.
func (s *MediaService) Remove(name string) error {
	if strings.Contains(name, "/") || strings.Contains(name, "..") {
		return &ValidationError{Field: "file", Reason: "invalid file name"}
	}
	if err := os.Remove(filepath.Join(s.uploadDir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(filepath.Join(s.uploadDir, "thumb_"+name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// extensionFor picks a file extension from the MIME type, falling back
// to the original name's extension.
func extensionFor(mimeType, originalName string) string {
	switch mimeType {
	case model.MimeTypeJPEG:
		return ".jpg"
	case model.MimeTypePNG:
		return ".png"
	case model.MimeTypeGIF:
		return ".gif"
	case model.MimeTypeWebP:
		return ".webp"
	case model.MimeTypePDF:
		return ".pdf"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return filepath.Ext(originalName)
}
