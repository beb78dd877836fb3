package domain

import (
	"encoding/base64"
)

// EncodeEnvelope joins nonce and sealed ciphertext and returns them as a single
// standard Base64 string without line wrapping.
func EncodeEnvelope(nonce, ciphertext []byte) string {
	buf := make([]byte, 0, len(nonce)+len(ciphertext))
	buf = append(buf, nonce...)
	buf = append(buf, ciphertext...)
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeEnvelope splits a value produced by EncodeEnvelope back into nonce and
// ciphertext. The ciphertext must at least hold an authentication tag.
func DecodeEnvelope(encoded string) (nonce, ciphertext []byte, err error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, nil, ErrInvalidEnvelope
	}
	if len(raw) < NonceSize+TagSize {
		return nil, nil, ErrInvalidEnvelope
	}
	return raw[:NonceSize], raw[NonceSize:], nil
}

// EnvelopeSize returns the decoded length of an envelope sealing a plaintext of n bytes.
func EnvelopeSize(n int) int {
	return NonceSize + n + TagSize
}
