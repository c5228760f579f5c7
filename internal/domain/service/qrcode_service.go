package service

// QRCodeService renders login URLs as QR images so chat clients can show a
// scannable handshake entry point.
type QRCodeService interface {
	// GenerateLoginQR returns a PNG rendering of the login URL.
	GenerateLoginQR(loginURL string) ([]byte, error)
}
