package service

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRPNG(t *testing.T) {
	svc := NewQRService("https://portal.example.com/")

	png, err := svc.PNG(svc.URL("/public/micropage/maria"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("expected PNG output")
	}
}

func TestQRURLJoining(t *testing.T) {
	svc := NewQRService("https://portal.example.com/")

	if got := svc.URL("public/flyers/5"); got != "https://portal.example.com/public/flyers/5" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := svc.URL("/public/flyers/5"); got != "https://portal.example.com/public/flyers/5" {
		t.Fatalf("unexpected url %q", got)
	}
}
