package service

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/edulane/edulane-backend/internal/config"
)

type fakeUploadFile struct {
	*bytes.Reader
}

func (fakeUploadFile) Close() error { return nil }

func uploadOf(content string, contentType string) (multipart.File, *multipart.FileHeader) {
	header := &multipart.FileHeader{
		Filename: "upload.bin",
		Size:     int64(len(content)),
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
	return fakeUploadFile{bytes.NewReader([]byte(content))}, header
}

func newMediaService(t *testing.T) *MediaService {
	t.Helper()
	return NewMediaService(&config.Config{
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 1024,
	})
}

func TestSaveImageAllowList(t *testing.T) {
	svc := newMediaService(t)

	file, header := uploadOf("fake png bytes", "image/png")
	url, err := svc.SaveImage(file, header)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %s, want /uploads/*.png", url)
	}

	file, header = uploadOf("%PDF-1.7", "application/pdf")
	if _, err := svc.SaveImage(file, header); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("err = %v, want ErrUnsupportedFileType for pdf as image", err)
	}
}

func TestSaveContentFileAcceptsPDFAndVideo(t *testing.T) {
	svc := newMediaService(t)

	for contentType, ext := range map[string]string{
		"application/pdf": ".pdf",
		"video/mp4":       ".mp4",
	} {
		file, header := uploadOf("payload", contentType)
		url, err := svc.SaveContentFile(file, header)
		if err != nil {
			t.Fatalf("%s: %v", contentType, err)
		}
		if !strings.HasSuffix(url, ext) {
			t.Errorf("url = %s, want suffix %s", url, ext)
		}
	}

	file, header := uploadOf("#!/bin/sh", "application/x-sh")
	if _, err := svc.SaveContentFile(file, header); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("err = %v, want ErrUnsupportedFileType", err)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	svc := newMediaService(t)

	file, header := uploadOf("x", "image/png")
	header.Size = 10 * 1024 * 1024
	if _, err := svc.SaveImage(file, header); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestSaveWritesFileToDisk(t *testing.T) {
	dir := t.TempDir()
	svc := NewMediaService(&config.Config{UploadDir: dir, MaxUploadBytes: 1024})

	file, header := uploadOf("the payload", "image/jpeg")
	url, err := svc.SaveImage(file, header)
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "the payload" {
		t.Errorf("stored %q, want %q", data, "the payload")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := NewAuthService(&config.Config{BcryptCost: bcrypt.MinCost}, nil)

	hash, err := svc.HashPassword("secret123")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.CheckPassword(hash, "secret123"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}
