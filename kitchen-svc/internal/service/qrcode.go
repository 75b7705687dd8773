package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// TrackingQRGenerator encodes the public order tracking link.
type TrackingQRGenerator struct {
	BaseURL string
}

func (g TrackingQRGenerator) TrackingURL(orderID int) string {
	return fmt.Sprintf("%s/track/%d", g.BaseURL, orderID)
}

func (g TrackingQRGenerator) Generate(orderID int) ([]byte, error) {
	return qrcode.Encode(g.TrackingURL(orderID), qrcode.Medium, 256)
}
