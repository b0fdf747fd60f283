package link

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCode renders uri as a block-character QR code for display in a terminal.
func QRCode(uri string) (string, error) {
	code, err := qrcode.New(uri, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return code.ToSmallString(false), nil
}
