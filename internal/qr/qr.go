// Package qr bridges physical labels and digital records: it renders scan
// payloads as QR images and reads them back from uploaded pictures.
package qr

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	imageSize     = 256
	dataURIPrefix = "data:image/png;base64,"
)

// Payload is what a product label encodes. A scanned payload should carry
// the transaction hash; id and batchId are present when the writer knew
// them.
type Payload struct {
	TransactionHash string `json:"transactionHash"`
	BatchID         string `json:"batchId,omitempty"`
	Manufacturer    string `json:"manufacturer,omitempty"`
	ID              uint64 `json:"id,omitempty"`
}

// Encode renders the payload as a PNG QR code and returns it as a base64
// data URI, the format the metadata store persists.
func Encode(payload Payload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal qr payload: %w", err)
	}

	png, err := qrcode.Encode(string(body), qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(png), nil
}

// Decode extracts the raw payload text from a QR image (PNG or JPEG bytes).
func Decode(imageBytes []byte) (string, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to binarize image: %w", err)
	}

	result, err := zxqrcode.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", fmt.Errorf("no qr code found in image: %w", err)
	}
	return result.GetText(), nil
}

// DecodeDataURI strips a base64 data URI down to raw image bytes.
func DecodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, "base64,")
	if idx < 0 {
		return nil, fmt.Errorf("not a base64 data URI")
	}
	raw, err := base64.StdEncoding.DecodeString(uri[idx+len("base64,"):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 image: %w", err)
	}
	return raw, nil
}

// ParsePayload parses the JSON text a scanner read from a label.
func ParsePayload(text string) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return Payload{}, fmt.Errorf("invalid qr payload format: %w", err)
	}
	return payload, nil
}
