package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/harshith-dev/coursehub-api/internal/observability"
)

var (
	// ErrUploadTooLarge indicates the payload exceeded the limit for its kind.
	ErrUploadTooLarge = errors.New("file exceeds maximum allowed size")
	// ErrUploadTypeNotAllowed indicates the detected MIME type is not permitted.
	ErrUploadTypeNotAllowed = errors.New("file type not allowed")
)

const (
	maxVideoBytes    = 500 * 1024 * 1024
	maxDocumentBytes = 50 * 1024 * 1024
)

// FileStorage abstracts the upload destination. resourceType is the
// storage pipeline hint ("video" or "raw").
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader, resourceType string) (string, error)
}

// UploadService validates and stores course assets. Lesson videos and
// assignment documents have separate size and type gates.
type UploadService interface {
	UploadVideo(ctx context.Context, file *multipart.FileHeader) (string, error)
	UploadDocument(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type uploadService struct {
	storage FileStorage
	logger  zerolog.Logger
	tracer  trace.Tracer
}

// NewUploadService constructs an upload service.
func NewUploadService(storage FileStorage, logger zerolog.Logger) UploadService {
	return &uploadService{
		storage: storage,
		logger:  logger.With().Str("component", "upload_service").Logger(),
		tracer:  otel.Tracer("github.com/harshith-dev/coursehub-api/internal/service/upload"),
	}
}

func (s *uploadService) UploadVideo(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "video", maxVideoBytes, isAllowedVideo)
}

func (s *uploadService) UploadDocument(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return s.upload(ctx, file, "raw", maxDocumentBytes, isAllowedDocument)
}

func (s *uploadService) upload(ctx context.Context, file *multipart.FileHeader, resourceType string, maxBytes int64, allowed func(mime, ext string) bool) (string, error) {
	ctx, span := s.tracer.Start(ctx, "upload.store")
	defer span.End()

	span.SetAttributes(
		attribute.String("upload.resource_type", resourceType),
		attribute.Int64("upload.max_bytes", maxBytes),
	)

	if file == nil {
		err := errors.New("file is required")
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return "", err
	}

	span.SetAttributes(
		attribute.String("upload.original_name", strings.TrimSpace(file.Filename)),
		attribute.Int64("upload.request_size", file.Size),
	)

	if file.Size > maxBytes {
		observability.UploadsRejected().WithLabelValues("too_large").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return "", ErrUploadTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return "", err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, maxBytes+1)); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return "", err
	}
	if int64(buf.Len()) > maxBytes {
		observability.UploadsRejected().WithLabelValues("too_large").Inc()
		span.RecordError(ErrUploadTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return "", ErrUploadTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	ext := strings.ToLower(filepath.Ext(file.Filename))
	span.SetAttributes(attribute.String("upload.detected_mime", mime.String()))

	// The declared extension and the sniffed content must agree; a
	// renamed executable fails here regardless of its extension.
	if !allowed(mime.String(), ext) {
		observability.UploadsRejected().WithLabelValues("type_not_allowed").Inc()
		span.RecordError(ErrUploadTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return "", ErrUploadTypeNotAllowed
	}

	sanitizedName := sanitizeFileName(file.Filename)
	span.SetAttributes(
		attribute.String("upload.sanitized_name", sanitizedName),
		attribute.Int64("upload.size_bytes", int64(buf.Len())),
	)

	url, err := s.storage.Upload(ctx, sanitizedName, bytes.NewReader(buf.Bytes()), resourceType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failed")
		return "", &StorageError{Op: "upload", Err: err}
	}

	span.SetStatus(codes.Ok, "stored")
	return url, nil
}

func isAllowedVideo(mime, ext string) bool {
	lower := strings.ToLower(mime)
	if !strings.HasPrefix(lower, "video/") {
		return false
	}
	switch ext {
	case ".mp4", ".webm", ".mov", ".mkv":
		return true
	}
	return false
}

func isAllowedDocument(mime, ext string) bool {
	lower := strings.ToLower(mime)
	switch lower {
	case "application/pdf":
		return ext == ".pdf"
	case "application/zip", "application/x-zip-compressed":
		// docx and similar formats are zip containers.
		switch ext {
		case ".zip", ".docx", ".xlsx", ".pptx":
			return true
		}
		return false
	case "text/plain; charset=utf-8", "text/plain":
		return ext == ".txt" || ext == ".md"
	case "application/msword":
		return ext == ".doc"
	}
	return false
}

func sanitizeFileName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		if r == '-' || r == '_' {
			return r
		}
		return '-'
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		base = fmt.Sprintf("upload-%d", time.Now().Unix())
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".bin"
	}
	return base + ext
}
