package images

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrTooLarge marks uploads exceeding the configured size cap.
	ErrTooLarge = errors.New("image exceeds the maximum allowed size")

	// ErrUnsupportedType marks uploads whose extension isn't allowed.
	ErrUnsupportedType = errors.New("image type isn't supported")
)

// Store persists uploaded images to a local directory and derives public URLs for them.
type Store struct {
	logger  logrus.FieldLogger
	path    string
	maxSize int64
	allowed map[string]struct{}
}

// New creates the images directory when needed and returns a store enforcing the
// given size cap, in bytes, and the allowed file extensions (".jpg", ".png", etc.).
func New(logger logrus.FieldLogger, path string, maxSize int64, allowedExtensions []string) (*Store, error) {
	logger.Println("initialising images store")

	// attempt to create an images directory if it doesn't exist
	if err := os.MkdirAll(path, 0750); err != nil {
		return nil, fmt.Errorf("creating images directory: %w", err)
	}

	var allowed = make(map[string]struct{}, len(allowedExtensions))
	for _, extension := range allowedExtensions {
		allowed[strings.ToLower(extension)] = struct{}{}
	}

	return &Store{logger: logger, path: path, maxSize: maxSize, allowed: allowed}, nil
}

// Save writes an uploaded image to the store and returns its public URL.
// Files are renamed to a fresh UUID; client supplied names never reach the disk.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {

	if header.Size > s.maxSize {
		return "", ErrTooLarge
	}

	var extension = strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := s.allowed[extension]; !ok {
		return "", ErrUnsupportedType
	}

	name, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generating image name: %w", err)
	}
	var filename = name.String() + extension

	destination, err := os.Create(filepath.Join(s.path, filename))
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	defer func() { _ = destination.Close() }()

	// the declared header size isn't trusted; copy one byte past the cap to detect excess
	written, err := io.Copy(destination, io.LimitReader(file, s.maxSize+1))
	if err != nil {
		s.remove(filename)
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if written > s.maxSize {
		s.remove(filename)
		return "", ErrTooLarge
	}

	s.logger.Debugf("stored image %s (%d bytes)", filename, written)
	return "/uploads/" + filename, nil
}

func (s *Store) remove(filename string) {
	if err := os.Remove(filepath.Join(s.path, filename)); err != nil {
		s.logger.WithError(err).Warningf("couldn't remove partial upload %s", filename)
	}
}
