package service

import (
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// QRService encodes portal URLs into PNG QR codes for printed flyers.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL joins a portal path onto the configured public base URL.
func (s *QRService) URL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.baseURL + path
}

// PNG encodes content as a QR code image. Size <= 0 picks the default.
func (s *QRService) PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
