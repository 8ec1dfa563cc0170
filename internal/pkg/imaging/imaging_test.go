package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressScalesDown(t *testing.T) {
	out, err := Compress(makePNG(t, 1600, 400), 800, 70)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestCompressNeverUpscales(t *testing.T) {
	out, err := Compress(makePNG(t, 120, 90), 800, 70)
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Width)
	assert.Equal(t, 90, cfg.Height)
}

func TestCompressRejectsGarbage(t *testing.T) {
	_, err := Compress(nil, 800, 70)
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = Compress([]byte("not an image"), 800, 70)
	require.Error(t, err)
}

func TestDataURIRoundTrip(t *testing.T) {
	uri := DataURI("image/png", []byte{1, 2, 3})
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	mime, data, err := ParseDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, []byte{1, 2, 3}, data)

	for _, bad := range []string{"image/png;base64,AQID", "data:image/png,AQID", "data:image/png;base64", "data:image/png;base64,%%%"} {
		_, _, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}

func TestNormalize(t *testing.T) {
	n := NewNormalizer(100, 70)

	// 寬度內的 JPEG data URI 保持原樣
	small, err := Compress(makePNG(t, 80, 40), 100, 70)
	require.NoError(t, err)
	existing := DataURI(JPEGMime, small)
	got, err := n.Normalize(existing)
	require.NoError(t, err)
	assert.Equal(t, existing, got)

	// 原始檔 base64 會被壓縮成 JPEG
	requireJPEG(t, n, base64.StdEncoding.EncodeToString(makePNG(t, 400, 200)), 100, 50)

	// PNG data URI 就算尺寸內也重新編碼
	requireJPEG(t, n, DataURI("image/png", makePNG(t, 10, 10)), 10, 10)

	// 過寬的 JPEG data URI 要縮小
	wide, err := Compress(makePNG(t, 600, 300), 800, 70)
	require.NoError(t, err)
	requireJPEG(t, n, DataURI(JPEGMime, wide), 100, 50)

	_, err = n.Normalize(DataURI("image/png", []byte("not an image")))
	require.Error(t, err)

	_, err = n.Normalize("   ")
	require.ErrorIs(t, err, ErrEmptyImage)

	_, err = n.Normalize("@@not-base64@@")
	require.Error(t, err)
}

func requireJPEG(t *testing.T, n *Normalizer, input string, width, height int) {
	t.Helper()
	got, err := n.Normalize(input)
	require.NoError(t, err)
	mime, data, err := ParseDataURI(got)
	require.NoError(t, err)
	assert.Equal(t, JPEGMime, mime)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, width, cfg.Width)
	assert.Equal(t, height, cfg.Height)
}
