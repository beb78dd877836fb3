// Package dto provides data transfer objects for secret cache HTTP responses.
package dto

// SecretResponse carries the cached ciphertext of a secret.
type SecretResponse struct {
	Name       string `json:"name"`
	Ciphertext string `json:"ciphertext"`
}

// MapSecretToResponse builds the response for the entry name and its cached value.
func MapSecretToResponse(name, ciphertext string) SecretResponse {
	return SecretResponse{
		Name:       name,
		Ciphertext: ciphertext,
	}
}
