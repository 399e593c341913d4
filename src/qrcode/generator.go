package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// Encoder turns text into a PNG QR code.
type Encoder struct {
	Size  int
	Level qrcode.RecoveryLevel
}

func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = DefaultSize
	}
	return &Encoder{Size: size, Level: qrcode.Medium}
}

// EncodePNG returns the PNG bytes of a QR code holding data.
func (e *Encoder) EncodePNG(data string) ([]byte, error) {
	if data == "" {
		return nil, fmt.Errorf("qr payload is empty")
	}
	png, err := qrcode.Encode(data, e.Level, e.Size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
