package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateInviteQR renders a bot invite URL as a PNG QR code, letting an
	// admin pull the invite onto a phone without retyping the link.
	GenerateInviteQR(inviteURL string) ([]byte, error)
}
