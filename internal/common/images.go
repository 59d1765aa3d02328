package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"unicode"

	"github.com/finds-lab/backend/pkg/errorx"
	"github.com/finds-lab/backend/pkg/storage"
	"github.com/finds-lab/backend/pkg/xcontext"
	"github.com/nfnt/resize"
)

const (
	MaxImagesPerFind = 10
	MaxImageBytes    = 10 << 20

	thumbnailWidth  = 320
	thumbnailHeight = 240
)

// NormalizeImage converts a caller-supplied image reference into a canonical
// upload source. URLs and data URIs pass through unchanged; anything else is
// treated as raw base64, cleaned up and wrapped as a data URI with a MIME
// type sniffed from the payload prefix. Data-URI sources are size-checked,
// URLs are not. The index is 1-based in error messages.
func NormalizeImage(raw string, index int) (string, error) {
	source := raw
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		if !strings.HasPrefix(raw, "data:") {
			cleaned := stripSpaces(raw)
			source = fmt.Sprintf("data:%s;base64,%s", sniffMime(cleaned), cleaned)
		}

		_, payload, _ := strings.Cut(source, ",")
		if len(payload)*3/4 > MaxImageBytes {
			return "", errorx.New(errorx.BadRequest, "Image %d exceeds 10MB limit", index)
		}
	}

	return source, nil
}

func sniffMime(b64 string) string {
	switch {
	case strings.HasPrefix(b64, "/9j/"):
		return "image/jpeg"
	case strings.HasPrefix(b64, "iVBOR"):
		return "image/png"
	case strings.HasPrefix(b64, "R0lGO"):
		return "image/gif"
	case strings.HasPrefix(b64, "UklGR"):
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// UploadImages normalizes and uploads a batch of image references, returning
// the resolved URLs in input order. Blank entries are skipped. The whole
// batch fails on the first normalization or upload error.
func UploadImages(ctx context.Context, fileStorage storage.Storage, images []string) ([]string, error) {
	if len(images) > MaxImagesPerFind {
		return nil, errorx.New(errorx.BadRequest, "Maximum %d images allowed", MaxImagesPerFind)
	}

	urls := []string{}
	for i, img := range images {
		if strings.TrimSpace(img) == "" {
			continue
		}

		source, err := NormalizeImage(img, i+1)
		if err != nil {
			return nil, err
		}

		resp, err := fileStorage.UploadSource(ctx, source, "finds")
		if err != nil {
			xcontext.Logger(ctx).Errorf("Upload error for image %d: %v", i+1, err)
			return nil, errorx.New(errorx.BadRequest,
				"Failed to upload image %d: %v. Images should be a URL (https://...), "+
					"a data URI (data:image/jpeg;base64,...), or a raw base64 string", i+1, err)
		}

		urls = append(urls, resp.Url)
	}

	return urls, nil
}

// ProcessFindImages reads image files from the already-parsed multipart form
// and uploads each along with a thumbnail. A file that fails to decode or
// upload is logged and skipped rather than failing the submission.
func ProcessFindImages(ctx context.Context, fileStorage storage.Storage, key string) []string {
	req := xcontext.HTTPRequest(ctx)
	if req.MultipartForm == nil {
		return nil
	}

	headers := req.MultipartForm.File[key]
	if len(headers) > MaxImagesPerFind {
		headers = headers[:MaxImagesPerFind]
	}

	urls := []string{}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot open uploaded file %s: %v", header.Filename, err)
			continue
		}

		data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
		file.Close()
		if err != nil || len(data) > MaxImageBytes {
			xcontext.Logger(ctx).Warnf("Cannot read uploaded file %s: %v", header.Filename, err)
			continue
		}

		mime := header.Header.Get("Content-Type")
		resp, err := fileStorage.Upload(ctx, &storage.UploadObject{
			Prefix:   "finds",
			FileName: header.Filename,
			Mime:     mime,
			Data:     data,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upload file %s: %v", header.Filename, err)
			continue
		}

		if err := uploadThumbnail(ctx, fileStorage, mime, header.Filename, data); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot upload thumbnail of %s: %v", header.Filename, err)
		}

		urls = append(urls, resp.Url)
	}

	return urls
}

func uploadThumbnail(ctx context.Context, fileStorage storage.Storage, mime, name string, data []byte) error {
	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return err
	}

	thumb := resize.Thumbnail(thumbnailWidth, thumbnailHeight, img, resize.Lanczos2)
	b, err := encodeImg(mime, thumb)
	if err != nil {
		return err
	}

	_, err = fileStorage.Upload(ctx, &storage.UploadObject{
		Prefix:   "finds/thumbs",
		FileName: fmt.Sprintf("%dx%d-%s", thumbnailWidth, thumbnailHeight, name),
		Mime:     mime,
		Data:     b,
	})
	return err
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported content type %s", mime)
	}
	return img, err
}

func encodeImg(mime string, img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)

	var err error
	switch mime {
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	default:
		err = jpeg.Encode(buf, img, nil)
	}
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
