package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/wintakam/wintakam/internal/client/gateway"
	"github.com/wintakam/wintakam/internal/client/models"
)

type fakeUploadGateway struct {
	gateway.Gateway

	presignKey string
	presignURL string
	presignErr error

	presignCalls int
	attachedID   string
	attachedKey  string
}

func (f *fakeUploadGateway) PresignImageUpload(_ context.Context, propertyID string) (string, string, error) {
	f.presignCalls++
	return f.presignKey, f.presignURL, f.presignErr
}

func (f *fakeUploadGateway) AttachImage(_ context.Context, propertyID, key string) error {
	f.attachedID, f.attachedKey = propertyID, key
	return nil
}

func TestUpload_HappyPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	content := []byte("\xff\xd8\xff\xe0 fake jpeg payload")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}

	gw := &fakeUploadGateway{presignKey: "images/p1/abc.jpg", presignURL: "https://bucket.test/put"}
	a := &App{
		sessions: &fakeManager{user: &models.User{ID: "u1"}},
		gw:       gw,
	}

	var gotURL string
	var gotData []byte
	orig := uploadFn
	uploadFn = func(_ context.Context, url string, data []byte, _ string) error {
		gotURL, gotData = url, data
		return nil
	}
	defer func() { uploadFn = orig }()

	if err := a.Upload(context.Background(), "p1", path); err != nil {
		t.Fatalf("Upload err: %v", err)
	}
	if gotURL != "https://bucket.test/put" {
		t.Fatalf("url = %q", gotURL)
	}
	if string(gotData) != string(content) {
		t.Fatal("uploaded bytes differ from file content")
	}
	if gw.attachedID != "p1" || gw.attachedKey != "images/p1/abc.jpg" {
		t.Fatalf("attach = (%q, %q)", gw.attachedID, gw.attachedKey)
	}
}

func TestUpload_RequiresLogin(t *testing.T) {
	gw := &fakeUploadGateway{}
	a := &App{sessions: &fakeManager{}, gw: gw}

	if err := a.Upload(context.Background(), "p1", "ignored.jpg"); err != nil {
		t.Fatalf("Upload err: %v", err)
	}
	if gw.presignCalls != 0 {
		t.Fatal("must not reach the gateway when logged out")
	}
}

func TestUpload_MissingFile(t *testing.T) {
	gw := &fakeUploadGateway{}
	a := &App{
		sessions: &fakeManager{user: &models.User{ID: "u1"}},
		gw:       gw,
	}

	if err := a.Upload(context.Background(), "p1", filepath.Join(t.TempDir(), "nope.jpg")); err != nil {
		t.Fatalf("Upload err: %v", err)
	}
	if gw.presignCalls != 0 {
		t.Fatal("must not presign for an unreadable file")
	}
}
