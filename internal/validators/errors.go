package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID         = errors.New("invalid user ID")
	ErrInvalidSecretKind     = errors.New("invalid secret kind")
	ErrInvalidOwnerID        = errors.New("invalid secret owner ID")
	ErrInvalidVaultKey       = errors.New("invalid vault key")
	ErrEmptyMasterPassword   = errors.New("master password is required")
	ErrEmptyOldPassword      = errors.New("old master password is required")
	ErrMasterPasswordTooLong = errors.New("master password is too long")
	ErrEmptyPlaintext        = errors.New("secret plaintext is required")
	ErrTemporaryKeyTooLong   = errors.New("temporary key is too long")
)
