package dto

import (
	"encoding/base64"

	"github.com/tehnczon/projectecho/internal/identity/domain"
)

// SubmitIdentityResponse acknowledges a stored submission. The caller gets
// the ciphertext and lookup token back, never the plaintext.
type SubmitIdentityResponse struct {
	Success   bool   `json:"success"`
	Encrypted string `json:"encrypted"`
	PhoneHmac string `json:"phoneHmac"`
}

// ToSubmitIdentityResponse converts a stored identity to the submission
// acknowledgement.
func ToSubmitIdentityResponse(identity *domain.EncryptedIdentity) SubmitIdentityResponse {
	return SubmitIdentityResponse{
		Success:   true,
		Encrypted: base64.StdEncoding.EncodeToString(identity.Ciphertext),
		PhoneHmac: identity.BlindIndex,
	}
}
