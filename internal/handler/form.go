package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/mr-prasai2004/realestate/internal/service"
	"github.com/spf13/cast"
)

// formValues reads typed multipart fields and keeps the first conversion error.
type formValues struct {
	vals url.Values
	err  error
}

func (f *formValues) has(key string) bool {
	_, ok := f.vals[key]
	return ok
}

func (f *formValues) str(key string) string {
	return strings.TrimSpace(f.vals.Get(key))
}

func (f *formValues) fail(key, format string) {
	if f.err == nil {
		f.err = echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf(format, key))
	}
}

func (f *formValues) int(key string) int {
	raw := f.str(key)
	if raw == "" {
		return 0
	}
	v, err := cast.ToIntE(raw)
	if err != nil {
		f.fail(key, "%s must be a whole number")
	}
	return v
}

func (f *formValues) float(key string) float64 {
	raw := f.str(key)
	if raw == "" {
		return 0
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		f.fail(key, "%s must be a number")
	}
	return v
}

func (f *formValues) date(key string) time.Time {
	raw := f.str(key)
	if raw == "" {
		f.fail(key, "%s is not a valid date")
		return time.Time{}
	}
	t, err := parseDate(key, raw)
	if err != nil && f.err == nil {
		f.err = err
	}
	return t
}

// list decodes a JSON array field. Repeated plain values are accepted as well.
func (f *formValues) list(key string) []string {
	raw := f.vals[key]
	if len(raw) == 1 && strings.HasPrefix(strings.TrimSpace(raw[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(raw[0]), &out); err != nil {
			f.fail(key, "invalid %s format")
			return nil
		}
		return out
	}
	var out []string
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func uploadsFrom(files []*multipart.FileHeader) []service.ImageUpload {
	uploads := make([]service.ImageUpload, 0, len(files))
	for _, fh := range files {
		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return uploads
}
