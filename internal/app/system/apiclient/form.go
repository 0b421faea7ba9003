package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
)

// Field is one name/value pair of a mutation payload. Repeated names are
// sent as arrays.
type Field struct {
	Name  string
	Value string
}

// File is an attachment. Open is called once while the body is built.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// Form is a mutation payload. It is sent as multipart/form-data when it
// carries at least one file and as a JSON object otherwise.
type Form struct {
	Fields []Field
	Files  []File
}

// Set appends a field.
func (f *Form) Set(name, value string) *Form {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
	return f
}

// Attach appends a file.
func (f *Form) Attach(file File) *Form {
	f.Files = append(f.Files, file)
	return f
}

// Multipart reports whether the form will be sent as multipart/form-data.
func (f *Form) Multipart() bool {
	return len(f.Files) > 0
}

// encode returns the request body and its content type.
func (f *Form) encode() (io.Reader, string, error) {
	if !f.Multipart() {
		b, err := json.Marshal(f.object())
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, fld := range f.Fields {
		if err := mw.WriteField(fld.Name, fld.Value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.Files {
		if err := writeFile(mw, file); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// object folds fields into a JSON object. Names ending in "[]" and names
// that repeat become arrays.
func (f *Form) object() map[string]any {
	out := make(map[string]any, len(f.Fields))
	counts := make(map[string]int, len(f.Fields))
	for _, fld := range f.Fields {
		counts[jsonName(fld.Name)]++
	}
	for _, fld := range f.Fields {
		name := jsonName(fld.Name)
		if counts[name] > 1 || name != fld.Name {
			list, _ := out[name].([]string)
			out[name] = append(list, fld.Value)
			continue
		}
		out[name] = fld.Value
	}
	return out
}

func jsonName(name string) string {
	if n := len(name); n > 2 && name[n-2:] == "[]" {
		return name[:n-2]
	}
	return name
}

func writeFile(mw *multipart.Writer, file File) error {
	rc, err := file.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Filename, err)
	}
	defer rc.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, rc)
	return err
}
