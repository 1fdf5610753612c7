package video

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func TestRecorderWritesWebP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	rec, err := NewRecorder(path, 24)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, rec.Append(solidFrame(16, 16, color.NRGBA{R: uint8(i * 80), A: 255})))
	}
	assert.Equal(t, 3, rec.FrameCount())
	require.NoError(t, rec.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 12)
	assert.Equal(t, "RIFF", string(raw[0:4]))
	assert.Equal(t, "WEBP", string(raw[8:12]))
}

func TestRecorderAppendAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.webp")
	rec, err := NewRecorder(path, 24)
	require.NoError(t, err)
	require.NoError(t, rec.Append(solidFrame(8, 8, color.NRGBA{A: 255})))
	require.NoError(t, rec.Close())

	err = rec.Append(solidFrame(8, 8, color.NRGBA{A: 255}))
	require.Error(t, err)

	// second Close is a no-op
	assert.NoError(t, rec.Close())
}

func TestRecorderNoFrames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.webp")
	rec, err := NewRecorder(path, 24)
	require.NoError(t, err)

	err = rec.Close()
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "empty output should be removed")
}

func TestRecorderBadArgs(t *testing.T) {
	_, err := NewRecorder(filepath.Join(t.TempDir(), "x.webp"), 0)
	require.Error(t, err)

	_, err = NewRecorder(filepath.Join(t.TempDir(), "missing", "dir", "x.webp"), 24)
	require.Error(t, err)
}
