package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SaveYRemove(t *testing.T) {
	root := t.TempDir()
	l := NewLocal(root)
	l.now = func() time.Time { return time.Unix(0, 42) }
	ctx := context.Background()

	path, err := l.Save(ctx, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), "ticket nafta.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "comprobantes", "2026", "03", "42_ticket_nafta.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	require.NoError(t, l.Remove(ctx, path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, l.Remove(ctx, path))
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "passwd", safeName("../../etc/passwd"))
	assert.Equal(t, "factura.jpg", safeName(`C:\fotos\factura.jpg`))
	assert.Equal(t, "comprobante", safeName(".."))
	assert.Equal(t, "a_b.png", safeName("a b.png"))
}
