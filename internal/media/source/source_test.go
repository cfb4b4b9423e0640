package source_test

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"montage/internal/media/source"
	"montage/internal/testsupport"
	"montage/internal/timeline"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.SetRGBA(i%2, i/2, c)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
}

func TestImageFileIsAlwaysReady(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "red.png")
	writePNG(t, path, color.RGBA{R: 255, A: 255})

	src := source.NewImageFile(path)
	if !src.Ready(0) {
		t.Fatal("image source should be ready")
	}
	frame, ok := src.FrameAt(123.4)
	if !ok || frame == nil {
		t.Fatal("image source should ignore the instant")
	}
	if frame.Bounds().Dx() != 2 {
		t.Fatalf("bounds: %v", frame.Bounds())
	}
}

func TestImageFileDegradesOnMissingFile(t *testing.T) {
	src := source.NewImageFile("/nonexistent/file.png")
	if src.Ready(0) {
		t.Fatal("missing file should not be ready")
	}
	if _, ok := src.FrameAt(0); ok {
		t.Fatal("missing file should yield no frame")
	}
}

func TestVideoFileSeekBecomesReady(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	testsupport.StubBinary(t, "ffmpeg", fmt.Sprintf("#!/bin/sh\nbase64 -d <<'B64'\n%s\nB64\n", encoded))

	src := source.NewVideoFile("", "/media/clip.mp4")
	if src.Ready(1.5) {
		t.Fatal("no frame before any seek")
	}

	src.RequestSeek(1.5)
	deadline := time.Now().Add(2 * time.Second)
	for !src.Ready(1.5) {
		if time.Now().After(deadline) {
			t.Fatal("seek never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	frame, ok := src.FrameAt(1.5)
	if !ok || frame == nil {
		t.Fatal("frame should be available after seek")
	}
	// A different instant is not satisfied by the cached frame.
	if src.Ready(3.0) {
		t.Fatal("cached frame should not satisfy a distant instant")
	}
}

func TestFileLibraryResolvesByAssetKind(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "still.png")
	writePNG(t, imgPath, color.RGBA{G: 255, A: 255})

	registry := timeline.NewRegistry()
	imgAsset := registry.Add(timeline.AssetImage, "file://"+imgPath, "Still", 0)
	vidAsset := registry.Add(timeline.AssetVideo, filepath.Join(dir, "clip.mp4"), "Clip", 8)
	txtAsset := registry.Add(timeline.AssetText, "", "Title", 0)
	remote := registry.Add(timeline.AssetImage, "https://cdn.example/img.png", "Remote", 0)

	lib := source.NewFileLibrary("ffmpeg", registry)

	if src, ok := lib.Source(imgAsset.ID); !ok || !src.Ready(0) {
		t.Fatal("image asset should resolve to a ready source")
	}
	if _, ok := lib.Source(vidAsset.ID); !ok {
		t.Fatal("video asset should resolve")
	}
	if _, ok := lib.Source(txtAsset.ID); ok {
		t.Fatal("text asset has no file source")
	}
	if _, ok := lib.Source(remote.ID); ok {
		t.Fatal("non-file locator should not resolve")
	}
	if _, ok := lib.Source("unknown"); ok {
		t.Fatal("unknown asset should not resolve")
	}

	// The same source instance is reused across lookups.
	a, _ := lib.Source(imgAsset.ID)
	b, _ := lib.Source(imgAsset.ID)
	if a != b {
		t.Fatal("sources should be cached per asset")
	}
}
