package validators

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-vault-keeper/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUserID            = "user_id"
	FieldMasterPassword    = "master_password"
	FieldOldMasterPassword = "old_master_password"
	FieldTemporaryKey      = "temporary_key"
	FieldKind              = "kind"
	FieldOwnerID           = "owner_id"
	FieldVaultKey          = "vault_key"
	FieldPlaintext         = "plaintext"
)

const (
	// MaxMasterPasswordLen bounds the password fed into the key derivation.
	MaxMasterPasswordLen = 1024

	vaultKeyLen        = 32
	maxTemporaryKeyLen = 256
)

// SecretAccess is validated before a secret is stored or revealed.
type SecretAccess struct {
	VaultKey  []byte
	Ref       models.SecretRef
	Plaintext []byte
}

// VaultRequestValidator validates login, migration and secret access
// requests.
type VaultRequestValidator struct {
}

func NewVaultRequestValidator() Validator {
	return &VaultRequestValidator{}
}

func (v *VaultRequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLoginRequest(value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(*value, fields...)

	case models.MigrationRequest:
		return v.validateMigrationRequest(value, fields...)
	case *models.MigrationRequest:
		return v.validateMigrationRequest(*value, fields...)

	case models.SecretRef:
		return v.validateSecretRef(value, fields...)
	case *models.SecretRef:
		return v.validateSecretRef(*value, fields...)

	case SecretAccess:
		return v.validateSecretAccess(value, fields...)
	case *SecretAccess:
		return v.validateSecretAccess(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateLoginRequest accepts an empty master password: a user without key
// material and without a password resolves to NotSet.
func (v *VaultRequestValidator) validateLoginRequest(request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldMasterPassword, FieldTemporaryKey}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldMasterPassword:
			if len(request.MasterPassword) > MaxMasterPasswordLen || len(request.OldMasterPassword) > MaxMasterPasswordLen {
				return ErrMasterPasswordTooLong
			}
			// a temporary key takes precedence over the old password
			if request.TemporaryKey == "" && request.OldMasterPassword != "" && request.MasterPassword == "" {
				return ErrEmptyMasterPassword
			}
		case FieldTemporaryKey:
			if len(request.TemporaryKey) > maxTemporaryKeyLen {
				return ErrTemporaryKeyTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultRequestValidator) validateMigrationRequest(request models.MigrationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOldMasterPassword, FieldMasterPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldOldMasterPassword:
			if request.OldMasterPassword == "" {
				return ErrEmptyOldPassword
			}
			if len(request.OldMasterPassword) > MaxMasterPasswordLen {
				return ErrMasterPasswordTooLong
			}
		case FieldMasterPassword:
			if len(request.NewMasterPassword) > MaxMasterPasswordLen {
				return ErrMasterPasswordTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultRequestValidator) validateSecretRef(ref models.SecretRef, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldOwnerID}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !slices.Contains(models.SecretKinds(), ref.Kind) {
				return ErrInvalidSecretKind
			}
		case FieldOwnerID:
			if ref.OwnerID <= 0 {
				return ErrInvalidOwnerID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *VaultRequestValidator) validateSecretAccess(access SecretAccess, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldVaultKey, FieldKind, FieldOwnerID}
	}

	for _, f := range fields {
		switch f {
		case FieldVaultKey:
			if len(access.VaultKey) != vaultKeyLen {
				return ErrInvalidVaultKey
			}
		case FieldKind, FieldOwnerID:
			if err := v.validateSecretRef(access.Ref, f); err != nil {
				return err
			}
		case FieldPlaintext:
			if len(access.Plaintext) == 0 {
				return ErrEmptyPlaintext
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
