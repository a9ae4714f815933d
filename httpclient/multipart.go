package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// MultipartBody describes a multipart/form-data request body.
type MultipartBody struct {
	// Fields holds plain form fields.
	Fields map[string]string

	// Files holds file parts, written in order after the fields.
	Files []FileField
}

// FileField describes one file part of a multipart body.
type FileField struct {
	// FieldName is the form field name.
	FieldName string

	// FileName is the file name reported in the part header.
	FileName string

	// ContentType is the part content type. Defaults to
	// application/octet-stream.
	ContentType string

	// Data is the file content. Ignored when Reader is set.
	Data []byte

	// Reader streams the file content when set.
	Reader io.Reader
}

// encode writes the multipart body into a buffer and returns it with the
// boundary-bearing content type.
func (m *MultipartBody) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range m.Fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("httpclient: write form field %q: %w", name, err)
		}
	}

	for _, file := range m.Files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(file.FieldName), escapeQuotes(file.FileName)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("httpclient: create file part %q: %w", file.FieldName, err)
		}
		if file.Reader != nil {
			if _, err := io.Copy(part, file.Reader); err != nil {
				return nil, "", fmt.Errorf("httpclient: copy file part %q: %w", file.FieldName, err)
			}
		} else if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("httpclient: write file part %q: %w", file.FieldName, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("httpclient: close multipart writer: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
