package infra

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload kinds; each one maps to a sub-directory served under /uploads.
const (
	UploadProductos = "products"
	UploadUsuarios  = "users"
)

const (
	MaxImagenProducto = 5 << 20
	MaxImagenPerfil   = 2 << 20
)

var (
	ErrNoEsImagen      = errors.New("solo se permiten archivos de imagen")
	ErrImagenGrande    = errors.New("la imagen excede el tamaño permitido")
	ErrTipoDesconocido = errors.New("tipo de upload desconocido")
)

// Uploads decides where multipart images land on disk and which public path
// they get. Writing the bytes is left to the HTTP layer.
type Uploads struct {
	dir string
}

// NewUploads creates the sub-directories of dir.
func NewUploads(dir string) (*Uploads, error) {
	for _, kind := range []string{UploadProductos, UploadUsuarios} {
		if err := os.MkdirAll(filepath.Join(dir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("uploads: %w", err)
		}
	}
	return &Uploads{dir: dir}, nil
}

// Dir returns the directory of kind, for static serving.
func (u *Uploads) Dir(kind string) string { return filepath.Join(u.dir, kind) }

// Prepare validates fh and returns its destination on disk and its public path.
// Files are named <field>-<unix ms>-<uuid><ext>.
func (u *Uploads) Prepare(fh *multipart.FileHeader, kind, field string) (dst, public string, err error) {
	var limit int64
	switch kind {
	case UploadProductos:
		limit = MaxImagenProducto
	case UploadUsuarios:
		limit = MaxImagenPerfil
	default:
		return "", "", ErrTipoDesconocido
	}
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return "", "", ErrNoEsImagen
	}
	if fh.Size > limit {
		return "", "", ErrImagenGrande
	}

	name := fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), uuid.NewString(),
		strings.ToLower(filepath.Ext(fh.Filename)))
	return filepath.Join(u.dir, kind, name), path.Join("/uploads", kind, name), nil
}

// Remove deletes the file behind a public path returned by Prepare. Paths
// outside the known upload kinds are refused.
func (u *Uploads) Remove(public string) error {
	kind, name := path.Split(strings.TrimPrefix(public, "/uploads/"))
	kind = strings.TrimSuffix(kind, "/")
	if (kind != UploadProductos && kind != UploadUsuarios) || name == "" || name != filepath.Base(name) {
		return ErrTipoDesconocido
	}
	err := os.Remove(filepath.Join(u.dir, kind, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
