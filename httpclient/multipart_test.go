package httpclient

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"
)

func TestMultipartBody_Encode(t *testing.T) {
	body := &MultipartBody{
		Fields: map[string]string{
			"model":    "large-v3",
			"language": "sv",
		},
		Files: []FileField{{
			FieldName:   "file",
			FileName:    "meeting.wav",
			ContentType: "audio/wav",
			Data:        []byte("RIFF....WAVE"),
		}},
	}

	reader, contentType, err := body.encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType failed: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Errorf("expected multipart/form-data, got %q", mediaType)
	}

	mr := multipart.NewReader(reader, params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm failed: %v", err)
	}
	defer form.RemoveAll()

	if got := form.Value["model"]; len(got) != 1 || got[0] != "large-v3" {
		t.Errorf("expected model=large-v3, got %v", got)
	}
	if got := form.Value["language"]; len(got) != 1 || got[0] != "sv" {
		t.Errorf("expected language=sv, got %v", got)
	}

	files := form.File["file"]
	if len(files) != 1 {
		t.Fatalf("expected one file part, got %d", len(files))
	}
	if files[0].Filename != "meeting.wav" {
		t.Errorf("expected filename meeting.wav, got %q", files[0].Filename)
	}
	if got := files[0].Header.Get("Content-Type"); got != "audio/wav" {
		t.Errorf("expected content type audio/wav, got %q", got)
	}

	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "RIFF....WAVE" {
		t.Errorf("file content mismatch: %q", string(data))
	}
}

func TestMultipartBody_Encode_Reader(t *testing.T) {
	body := &MultipartBody{
		Files: []FileField{{
			FieldName: "file",
			FileName:  "stream.wav",
			Reader:    strings.NewReader("streamed bytes"),
		}},
	}

	reader, contentType, err := body.encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("ParseMediaType failed: %v", err)
	}
	mr := multipart.NewReader(reader, params["boundary"])
	part, err := mr.NextPart()
	if err != nil {
		t.Fatalf("NextPart failed: %v", err)
	}
	if got := part.Header.Get("Content-Type"); got != "application/octet-stream" {
		t.Errorf("expected default content type, got %q", got)
	}
	data, _ := io.ReadAll(part)
	if string(data) != "streamed bytes" {
		t.Errorf("expected streamed content, got %q", string(data))
	}
}

func TestEscapeQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain.wav`, `plain.wav`},
		{`has"quote.wav`, `has\"quote.wav`},
		{`back\slash.wav`, `back\\slash.wav`},
	}
	for _, tt := range tests {
		if got := escapeQuotes(tt.in); got != tt.want {
			t.Errorf("escapeQuotes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
