package apiclient

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

type field struct {
	name  string
	value string
}

type filePart struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

// Multipart is an ordered multipart/form-data body.
type Multipart struct {
	fields []field
	files  []filePart
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

// Field appends a text field. Empty values are skipped.
func (m *Multipart) Field(name, value string) *Multipart {
	if value == "" {
		return m
	}
	m.fields = append(m.fields, field{name: name, value: value})
	return m
}

// File appends a binary part.
func (m *Multipart) File(fieldName, filename, contentType string, data []byte) *Multipart {
	m.files = append(m.files, filePart{
		field:       fieldName,
		filename:    filename,
		contentType: contentType,
		data:        data,
	})
	return m
}

// Encode renders the body and returns its Content-Type.
func (m *Multipart) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	for _, f := range m.files {
		contentType := f.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(f.field), escapeQuotes(f.filename)))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.field, err)
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", f.field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
