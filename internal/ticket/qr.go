// Package ticket produces the scannable artifact attached to a booking: a
// QR code image encoding the booking's identity for entry verification.
package ticket

import (
	"encoding/base64"
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"
)

// imageSize is the pixel width/height of the generated PNG.
const imageSize = 300

// Payload is the data encoded into the QR image. Scanners at the venue
// decode this JSON to verify the booking without a network round trip.
type Payload struct {
	Reference  string `json:"bookingId"`
	EventTitle string `json:"eventTitle"`
	HolderName string `json:"userName"`
	Seats      int64  `json:"seats"`
	EventDate  string `json:"date"`
}

// Generate encodes the payload as a PNG QR code. The highest
// error-correction level is used so the ticket stays scannable despite
// moderate damage or occlusion of the printed code.
func Generate(p Payload) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Highest, imageSize)
}

// DataURL wraps PNG bytes in a data URL suitable for embedding directly in
// JSON responses and HTML email bodies.
func DataURL(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
