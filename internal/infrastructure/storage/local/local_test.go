package local

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "media")

	p, err := store.Save(context.Background(), "logo", "brand.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "media/logo/"), p)

	onDisk := filepath.Join(dir, strings.TrimPrefix(p, "media/"))
	data, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
}

func TestStore_SaveRejectsNonImage(t *testing.T) {
	store := New(t.TempDir(), "media")
	_, err := store.Save(context.Background(), "logo", "evil.exe", strings.NewReader("x"))
	assert.Error(t, err)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store := New(dir, "media")

	p, err := store.Save(context.Background(), "image", "dish.png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), p))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(p, "media/")))
	assert.True(t, os.IsNotExist(err))

	// already gone
	assert.NoError(t, store.Remove(context.Background(), p))
	assert.Error(t, store.Remove(context.Background(), "media/../secrets.png"))
	assert.Error(t, store.Remove(context.Background(), "other/image/x.png"))
}
