// Package storage guarda los archivos de comprobantes en disco.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
)

var _ finance.DocumentStorage = (*Local)(nil)

// Local guarda bajo <root>/comprobantes/YYYY/MM/<unix_nano>_<nombre>.
type Local struct {
	root string
	now  func() time.Time
}

// NewLocal construye el almacenamiento con raíz root (STORAGE_DIR).
func NewLocal(root string) *Local {
	return &Local{root: root, now: time.Now}
}

// Save copia r al archivo de destino y devuelve su ruta.
func (l *Local) Save(_ context.Context, date time.Time, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(l.root, "comprobantes", date.Format("2006"), date.Format("01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%d_%s", l.now().UnixNano(), safeName(filename)))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: abrir %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: escribir %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("storage: cerrar %s: %w", path, err)
	}
	return path, nil
}

// Remove borra un archivo guardado. Que no exista no es error.
func (l *Local) Remove(_ context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar %s: %w", path, err)
	}
	return nil
}

// safeName descarta directorios del nombre subido y reemplaza espacios y separadores.
func safeName(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', ':':
			return '_'
		}
		return r
	}, name)
	if name == "." || name == ".." || name == "" {
		return "comprobante"
	}
	return name
}
