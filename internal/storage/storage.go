// Package storage persists uploaded article images on disk and maps each
// stored file to a retrievable URL.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxFileSize is 5 MB per image.
	MaxFileSize = 5 * 1024 * 1024
	// MaxFilesPerUpload caps one submission at five images.
	MaxFilesPerUpload = 5

	uploadFolder = "noticias"
)

var (
	ErrTooManyFiles = errors.New("too many files in one submission")
	ErrFileTooLarge = errors.New("file exceeds the 5 MB limit")
	ErrInvalidType  = errors.New("file type not allowed")
	ErrEmptyUpload  = errors.New("no files in submission")
	ErrInvalidName  = errors.New("invalid file name")
)

var allowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type ImageStore interface {
	SaveAll(authorUID string, files []*multipart.FileHeader) ([]string, error)
}

// DiskStore writes uploads under Root and serves them below BaseURL.
// Files land at noticias/{authorUID}/{epochMillis}_{token}_{name}.
type DiskStore struct {
	Root    string
	BaseURL string
}

func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SaveAll stores every file of one submission in order and returns their
// URLs. A failure aborts the remaining files; files already written stay
// on disk but their URLs are not returned, so nothing references them.
func (s *DiskStore) SaveAll(authorUID string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, ErrEmptyUpload
	}
	if len(files) > MaxFilesPerUpload {
		return nil, fmt.Errorf("%w: got %d, limit is %d", ErrTooManyFiles, len(files), MaxFilesPerUpload)
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		url, err := s.Save(authorUID, fh.Filename, fh.Size, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Save validates and writes a single file, returning its URL. The reader
// must support seeking because the content type is sniffed before the
// copy starts.
func (s *DiskStore) Save(authorUID, filename string, size int64, src io.ReadSeeker) (string, error) {
	if size > MaxFileSize {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrFileTooLarge, filename, size)
	}

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", err
	}
	if !allowedType(mtype) {
		return "", fmt.Errorf("%w: %s is %s", ErrInvalidType, filename, mtype.String())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	clean, err := cleanFilename(filename)
	if err != nil {
		return "", err
	}

	token := strings.Split(uuid.NewString(), "-")[0]
	stored := fmt.Sprintf("%d_%s_%s", time.Now().UnixMilli(), token, clean)
	relative := path.Join(uploadFolder, authorUID, stored)

	dir := filepath.Join(s.Root, uploadFolder, authorUID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		zap.S().Errorf("Error writing upload %s: %v", relative, err)
		return "", err
	}

	return s.BaseURL + "/" + relative, nil
}

func allowedType(mtype *mimetype.MIME) bool {
	for _, t := range allowedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// cleanFilename strips any path components and rejects names that would
// escape the upload folder.
func cleanFilename(name string) (string, error) {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, "/\x00") {
		return "", ErrInvalidName
	}
	return name, nil
}
