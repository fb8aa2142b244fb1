package handlers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"nkeinfinity/internal/forms"
)

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// readUploads returns the files posted under field. The content type is
// sniffed from the bytes; the browser's claim is ignored.
func readUploads(c *fiber.Ctx, field string) ([]forms.Upload, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	var out []forms.Upload
	for _, fh := range form.File[field] {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, forms.Upload{
			Name:        filepath.Base(fh.Filename),
			ContentType: mimetype.Detect(data).String(),
			Data:        data,
		})
	}
	return out, nil
}

// formValues returns every value posted under key, for both urlencoded and
// multipart bodies.
func formValues(c *fiber.Ctx, key string) []string {
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil
		}
		return form.Value[key]
	}
	var out []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		out = append(out, string(v))
	}
	return out
}
