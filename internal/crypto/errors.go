package crypto

import "errors"

var (
	// ErrWrongPassword is returned when wrapped key material does not open
	// under the presented password.
	ErrWrongPassword = errors.New("wrong password")
	// ErrCorruptKeyMaterial is returned when wrapped key material is
	// structurally invalid regardless of the password.
	ErrCorruptKeyMaterial = errors.New("corrupt key material")
	// ErrDecryptFailed is returned by the secret codec and token sealer on
	// any decryption failure.
	ErrDecryptFailed = errors.New("decrypt failed")
	// ErrMalformedDigest is returned when a digest cannot be parsed in the
	// requested format.
	ErrMalformedDigest = errors.New("malformed digest")
	// ErrUnsupportedFormat is returned when asked to produce a format the
	// operation does not support.
	ErrUnsupportedFormat = errors.New("unsupported format")
)
