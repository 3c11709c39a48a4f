package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only PDF resumes are accepted")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
)

// UploadReader loads an uploaded resume into memory. Nothing is written to
// disk.
type UploadReader interface {
	ReadResume(file *multipart.FileHeader) ([]byte, error)
}

type uploadReader struct {
	maxFileSize int64
}

func NewUploadReader(maxFileSize int64) UploadReader {
	return &uploadReader{
		maxFileSize: maxFileSize,
	}
}

func (u *uploadReader) ReadResume(file *multipart.FileHeader) ([]byte, error) {
	if file == nil {
		return nil, &MissingInputError{Input: "resume"}
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFileType, ext)
	}

	if u.maxFileSize > 0 && file.Size > u.maxFileSize {
		return nil, fmt.Errorf("%w (%d > %d bytes)", ErrFileTooLarge, file.Size, u.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	reader := io.Reader(src)
	if u.maxFileSize > 0 {
		reader = io.LimitReader(src, u.maxFileSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if u.maxFileSize > 0 && int64(len(data)) > u.maxFileSize {
		return nil, ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, &MissingInputError{Input: "resume"}
	}

	return data, nil
}
