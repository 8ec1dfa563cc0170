package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"strings"

	"golang.org/x/image/draw"
)

const (
	DefaultMaxWidth = 800
	DefaultQuality  = 70
	JPEGMime        = "image/jpeg"
)

var (
	ErrEmptyImage     = errors.New("empty image")
	ErrInvalidDataURI = errors.New("invalid data uri")
)

// Compress 解碼 JPEG/PNG/GIF，寬度超過 maxWidth 時等比例縮小，再以 JPEG 輸出
// 不會放大圖片
func Compress(data []byte, maxWidth, quality int) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	if quality < 1 || quality > 100 {
		quality = DefaultQuality
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxWidth {
		height = height * maxWidth / width
		if height < 1 {
			height = 1
		}
		width = maxWidth
	}

	// 一律畫到 RGBA 上，透明背景的 PNG 轉 JPEG 會變黑，先鋪白底
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI 只支援 base64 格式
func ParseDataURI(uri string) (mime string, data []byte, err error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	mime, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURI
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return mime, data, nil
}

// Normalizer 把表單上傳的圖片整理成可以直接存進文件的 data URI
type Normalizer struct {
	MaxWidth int
	Quality  int
}

func NewNormalizer(maxWidth, quality int) *Normalizer {
	return &Normalizer{MaxWidth: maxWidth, Quality: quality}
}

// Normalize 寬度在 MaxWidth 以內的 JPEG data URI 原樣保存
// 其他 data URI 以及圖片原始檔的 base64 一律壓縮後包成 JPEG data URI
func (n *Normalizer) Normalize(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyImage
	}

	var raw []byte
	if strings.HasPrefix(input, "data:") {
		mime, data, err := ParseDataURI(input)
		if err != nil {
			return "", err
		}
		if mime == JPEGMime && n.withinBounds(data) {
			return input, nil
		}
		raw = data
	} else {
		data, err := base64.StdEncoding.DecodeString(input)
		if err != nil {
			return "", fmt.Errorf("decode base64 image: %w", err)
		}
		raw = data
	}

	compressed, err := Compress(raw, n.MaxWidth, n.Quality)
	if err != nil {
		return "", err
	}
	return DataURI(JPEGMime, compressed), nil
}

func (n *Normalizer) withinBounds(data []byte) bool {
	maxWidth := n.MaxWidth
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return cfg.Width <= maxWidth
}
