package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"evently/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"
)

// DefaultURLPrefix is the public path under which stored images are served.
const DefaultURLPrefix = "/uploads"

const jpegQuality = 95

// DiskImageStore keeps event images as flat files in a single directory.
type DiskImageStore struct {
	dir       string
	urlPrefix string
	logger    *slog.Logger
	now       func() time.Time
}

// NewDiskImageStore creates dir if needed and returns a store serving references under urlPrefix.
func NewDiskImageStore(dir, urlPrefix string, logger *slog.Logger) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = DefaultURLPrefix
	}
	return &DiskImageStore{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger,
		now:       time.Now,
	}, nil
}

var _ domain.ImageStore = (*DiskImageStore)(nil)

// Dir returns the directory images are written to.
func (s *DiskImageStore) Dir() string { return s.dir }

// Save decodes the upload to make sure it is a real image, applies JPEG EXIF
// orientation, and writes it under a fresh timestamped name.
func (s *DiskImageStore) Save(ctx context.Context, img *domain.ImageUpload) (string, error) {
	format := detectFormat(img.Data)
	if format == "" {
		return "", domain.ErrInvalidImageType
	}
	decoded, err := imaging.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return "", domain.ErrInvalidImageType
	}

	data := img.Data
	if format == "jpeg" {
		if orientation := readExifOrientation(bytes.NewReader(img.Data)); orientation != 1 {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, applyOrientation(decoded, orientation), &jpeg.Options{Quality: jpegQuality}); err != nil {
				return "", fmt.Errorf("encode oriented image: %w", err)
			}
			data = buf.Bytes()
		}
	}

	name := s.newFileName(img.Filename)
	if err := s.writeFile(name, data); err != nil {
		return "", err
	}
	s.logger.DebugContext(ctx, "image stored", "name", name, "bytes", len(data))
	return s.urlPrefix + "/" + name, nil
}

// Delete removes the file behind ref. References outside the store are rejected.
func (s *DiskImageStore) Delete(ctx context.Context, ref string) error {
	name, ok := s.nameFromRef(ref)
	if !ok {
		return fmt.Errorf("image reference %q is outside the uploads directory", ref)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image: %w", err)
	}
	s.logger.DebugContext(ctx, "image removed", "name", name)
	return nil
}

// List returns every stored image with its modification time. Hidden and temporary files are skipped.
func (s *DiskImageStore) List(ctx context.Context) ([]domain.StoredImage, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read uploads dir: %w", err)
	}
	images := make([]domain.StoredImage, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		images = append(images, domain.StoredImage{
			Ref:     s.urlPrefix + "/" + e.Name(),
			ModTime: info.ModTime(),
		})
	}
	return images, nil
}

// newFileName builds <unix millis>-<random><ext> keeping the client's extension, lower-cased.
func (s *DiskImageStore) newFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%d%s", s.now().UnixMilli(), uuid.New().ID(), ext)
}

func (s *DiskImageStore) nameFromRef(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, s.urlPrefix+"/")
	if !ok || name == "" || name != path.Base(name) || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}

// writeFile writes to a temporary file and renames it so readers never see partial images.
func (s *DiskImageStore) writeFile(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod image: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename image: %w", err)
	}
	return nil
}

// detectFormat sniffs the content type. Only jpeg, png and gif are accepted.
func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(contentType, "image/jpeg"):
		return "jpeg"
	case strings.HasPrefix(contentType, "image/png"):
		return "png"
	case strings.HasPrefix(contentType, "image/gif"):
		return "gif"
	default:
		return ""
	}
}

// readExifOrientation returns the EXIF orientation tag, or 1 when absent or unreadable.
func readExifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

// applyOrientation undoes the camera rotation described by an EXIF orientation value (2 to 8).
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
