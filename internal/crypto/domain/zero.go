package domain

// Zero overwrites every given buffer in place. The use case clears the plaintext
// secret and the CipherKey with it once the entry is sealed; nil buffers are skipped.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
