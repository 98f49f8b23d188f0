// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-keeper/models"
)

func validKey() []byte {
	return make([]byte, 32)
}

func TestNewVaultRequestValidator(t *testing.T) {
	require.NotNil(t, NewVaultRequestValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewVaultRequestValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("login request pointer", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, &models.LoginRequest{UserID: 1, MasterPassword: "pw"}))
	})

	t.Run("migration request value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.MigrationRequest{OldMasterPassword: "pw"}))
	})

	t.Run("secret ref value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: 3}))
	})

	t.Run("secret access pointer", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, &SecretAccess{
			VaultKey: validKey(),
			Ref:      models.SecretRef{Kind: models.SecretCustomField, OwnerID: 3},
		}))
	})
}

func TestValidateLoginRequest(t *testing.T) {
	v := NewVaultRequestValidator()
	ctx := context.Background()
	long := strings.Repeat("x", MaxMasterPasswordLen+1)

	tests := []struct {
		name    string
		req     models.LoginRequest
		fields  []string
		wantErr error
	}{
		{name: "password login", req: models.LoginRequest{UserID: 1, MasterPassword: "pw"}},
		{name: "no password is allowed", req: models.LoginRequest{UserID: 1}},
		{name: "bad user", req: models.LoginRequest{MasterPassword: "pw"}, wantErr: ErrInvalidUserID},
		{name: "too long", req: models.LoginRequest{UserID: 1, MasterPassword: long}, wantErr: ErrMasterPasswordTooLong},
		{name: "old without new", req: models.LoginRequest{UserID: 1, OldMasterPassword: "old"}, wantErr: ErrEmptyMasterPassword},
		{name: "temp key wins over old password", req: models.LoginRequest{UserID: 1, OldMasterPassword: "old", TemporaryKey: "k"}},
		{name: "temp key too long", req: models.LoginRequest{UserID: 1, TemporaryKey: strings.Repeat("k", 257)}, wantErr: ErrTemporaryKeyTooLong},
		{name: "scoped to user id", req: models.LoginRequest{UserID: 1, MasterPassword: long}, fields: []string{FieldUserID}},
		{name: "unknown field", req: models.LoginRequest{UserID: 1}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.req, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateMigrationRequest(t *testing.T) {
	v := NewVaultRequestValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.MigrationRequest{OldMasterPassword: "a", NewMasterPassword: "b"}))
	assert.ErrorIs(t, v.Validate(ctx, models.MigrationRequest{NewMasterPassword: "b"}), ErrEmptyOldPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.MigrationRequest{
		OldMasterPassword: "a",
		NewMasterPassword: strings.Repeat("x", MaxMasterPasswordLen+1),
	}), ErrMasterPasswordTooLong)
}

func TestValidateSecretAccess(t *testing.T) {
	v := NewVaultRequestValidator()
	ctx := context.Background()
	ref := models.SecretRef{Kind: models.SecretAccountPassword, OwnerID: 7}

	tests := []struct {
		name    string
		access  SecretAccess
		fields  []string
		wantErr error
	}{
		{name: "valid", access: SecretAccess{VaultKey: validKey(), Ref: ref}},
		{name: "short key", access: SecretAccess{VaultKey: []byte("short"), Ref: ref}, wantErr: ErrInvalidVaultKey},
		{name: "unknown kind", access: SecretAccess{VaultKey: validKey(), Ref: models.SecretRef{Kind: "note", OwnerID: 7}}, wantErr: ErrInvalidSecretKind},
		{name: "zero owner", access: SecretAccess{VaultKey: validKey(), Ref: models.SecretRef{Kind: models.SecretCustomField}}, wantErr: ErrInvalidOwnerID},
		{name: "empty plaintext", access: SecretAccess{VaultKey: validKey(), Ref: ref}, fields: []string{FieldPlaintext}, wantErr: ErrEmptyPlaintext},
		{name: "plaintext present", access: SecretAccess{VaultKey: validKey(), Ref: ref, Plaintext: []byte("x")}, fields: []string{FieldVaultKey, FieldPlaintext}},
		{name: "unknown field", access: SecretAccess{VaultKey: validKey(), Ref: ref}, fields: []string{"nope"}, wantErr: ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.access, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
