package cats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cat-collector/internal/platform/logger"
	"cat-collector/internal/platform/metrics"

	"github.com/google/uuid"
)

const maxPhotoURLLen = 200

var errBadPhotoURL = errors.New("photo store returned an invalid url")

// PhotoUpload es el archivo recibido en el form.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PhotoKey arma la key del objeto: prefijo aleatorio + extensión original
// (desde el último "."), p.ej. "pic.JPG" => "bd504f.JPG".
func PhotoKey(prefix, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ext = name[i:]
	}
	return prefix + ext
}

func randomKeyPrefix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:6]
}

// AddPhoto sube el archivo y guarda la Photo. Un fallo del storage no es error
// para quien llama: se loguea y se devuelve stored=false sin crear fila.
// Solo se devuelve error si el gato no existe/no es del usuario o falla la DB.
func (s *Service) AddPhoto(ctx context.Context, ownerUserID string, catID int64, up PhotoUpload) (Photo, bool, error) {
	if _, err := s.GetOwned(ctx, ownerUserID, catID); err != nil {
		return Photo{}, false, err
	}
	if up.Body == nil || strings.TrimSpace(up.Filename) == "" {
		s.metrics.PhotoUpload(metrics.UploadSkipped)
		return Photo{}, false, nil
	}
	if s.photos == nil {
		s.log.Warn("photo store not configured", logger.Fields{"cat_id": catID})
		s.metrics.PhotoUpload(metrics.UploadError)
		return Photo{}, false, nil
	}

	key := PhotoKey(s.newKey(), up.Filename)
	log := s.log.With(logger.Fields{"cat_id": catID, "key": key})

	uctx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	u, err := s.photos.Store(uctx, key, up.Body, up.ContentType)
	if err == nil {
		err = checkPhotoURL(u)
	}
	if err != nil {
		log.Warn("an error occurred uploading file to storage", logger.Fields{"err": err})
		s.metrics.PhotoUpload(metrics.UploadError)
		return Photo{}, false, nil
	}

	p, err := s.repos.Photos.Create(ctx, Photo{CatID: catID, URL: u})
	if err != nil {
		return Photo{}, false, err
	}

	s.metrics.PhotoUpload(metrics.UploadOK)
	log.Info("photo stored", logger.Fields{"photo_id": p.ID})
	return p, true, nil
}

func (s *Service) Photos(ctx context.Context, catID int64) ([]Photo, error) {
	return s.repos.Photos.ListByCat(ctx, catID)
}

func checkPhotoURL(raw string) error {
	if len(raw) > maxPhotoURLLen {
		return fmt.Errorf("%w: longer than %d chars", errBadPhotoURL, maxPhotoURLLen)
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", errBadPhotoURL, raw)
	}
	return nil
}
