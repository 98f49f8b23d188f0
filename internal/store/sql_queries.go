package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vault-keeper/models"
)

const (
	configTable      = "config"
	keyMaterialTable = "user_key_material"
	tempPassTable    = "temporary_master_passes"
	trackingTable    = "tracking"
)

var (
	keyMaterialColumns = []string{"user_id", "ciphertext", "nonce", "salt", "format", "key_revision", "updated_at"}
	tempPassColumns    = []string{"id", "key_hash", "wrapped_pass", "nonce", "expires_at", "consumed", "created_at"}
)

// secretTable maps a secret kind to its table and owner id column.
type secretTable struct {
	name     string
	idColumn string
}

var secretTables = map[models.SecretKind]secretTable{
	models.SecretAccountPassword: {name: "account_secrets", idColumn: "account_id"},
	models.SecretCustomField:     {name: "custom_field_secrets", idColumn: "field_id"},
}

func tableFor(kind models.SecretKind) (secretTable, error) {
	t, ok := secretTables[kind]
	if !ok {
		return secretTable{}, fmt.Errorf("%w: unknown secret kind %q", ErrBuildingSQLQuery, kind)
	}
	return t, nil
}

func (t secretTable) columns() []string {
	return []string{t.idColumn, "ciphertext", "nonce", "format", "updated_at"}
}

// upsertSuffix renders ON CONFLICT ... DO UPDATE for every non-key column.
// The syntax is shared by PostgreSQL and SQLite.
func upsertSuffix(key string, columns []string) string {
	sets := make([]string, 0, len(columns))
	for _, c := range columns {
		if c == key {
			continue
		}
		sets = append(sets, c+" = excluded."+c)
	}
	return "ON CONFLICT (" + key + ") DO UPDATE SET " + strings.Join(sets, ", ")
}

func buildGetConfigQuery(b sq.StatementBuilderType, parameter string) (string, []any, error) {
	return b.Select("value").
		From(configTable).
		Where(sq.Eq{"parameter": parameter}).
		ToSql()
}

func buildGetConfigManyQuery(b sq.StatementBuilderType, parameters []string) (string, []any, error) {
	return b.Select("parameter", "value").
		From(configTable).
		Where(sq.Eq{"parameter": parameters}).
		ToSql()
}

func buildSetConfigQuery(b sq.StatementBuilderType, parameter, value string) (string, []any, error) {
	return b.Insert(configTable).
		Columns("parameter", "value").
		Values(parameter, value).
		Suffix(upsertSuffix("parameter", []string{"parameter", "value"})).
		ToSql()
}

func buildCreateConfigQuery(b sq.StatementBuilderType, parameter, value string) (string, []any, error) {
	return b.Insert(configTable).
		Columns("parameter", "value").
		Values(parameter, value).
		ToSql()
}

// buildLockVaultQuery is a no-op write on the master password row. It takes
// the row lock in PostgreSQL and the database write lock in SQLite.
func buildLockVaultQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Update(configTable).
		Set("value", sq.Expr("value")).
		Where(sq.Eq{"parameter": ConfigMasterPassword}).
		ToSql()
}

func buildGetKeyMaterialQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(keyMaterialColumns...).
		From(keyMaterialTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildUpsertKeyMaterialQuery(b sq.StatementBuilderType, m models.UserKeyMaterial) (string, []any, error) {
	return b.Insert(keyMaterialTable).
		Columns(keyMaterialColumns...).
		Values(m.UserID, m.Key.Ciphertext, m.Key.Nonce, m.Key.Salt, int16(m.Key.Format), m.KeyRevision, m.UpdatedAt.Unix()).
		Suffix(upsertSuffix("user_id", keyMaterialColumns)).
		ToSql()
}

func buildListKeyMaterialQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(keyMaterialColumns...).
		From(keyMaterialTable).
		OrderBy("user_id").
		ToSql()
}

func buildListKeyMaterialByRevisionQuery(b sq.StatementBuilderType, revision, excludeUserID int64) (string, []any, error) {
	return b.Select(keyMaterialColumns...).
		From(keyMaterialTable).
		Where(sq.Eq{"key_revision": revision}).
		Where(sq.NotEq{"user_id": excludeUserID}).
		OrderBy("user_id").
		ToSql()
}

func buildListSecretsQuery(b sq.StatementBuilderType, t secretTable, afterOwnerID int64, limit int) (string, []any, error) {
	return b.Select(t.columns()...).
		From(t.name).
		Where(sq.Gt{t.idColumn: afterOwnerID}).
		OrderBy(t.idColumn).
		Limit(uint64(limit)).
		ToSql()
}

func buildGetSecretQuery(b sq.StatementBuilderType, t secretTable, ownerID int64) (string, []any, error) {
	return b.Select(t.columns()...).
		From(t.name).
		Where(sq.Eq{t.idColumn: ownerID}).
		ToSql()
}

func buildSaveSecretQuery(b sq.StatementBuilderType, t secretTable, s models.EncryptedSecret) (string, []any, error) {
	return b.Insert(t.name).
		Columns(t.columns()...).
		Values(s.Ref.OwnerID, s.Ciphertext, s.Nonce, int16(s.Format), s.UpdatedAt.Unix()).
		Suffix(upsertSuffix(t.idColumn, t.columns())).
		ToSql()
}

func buildCountSecretsQuery(b sq.StatementBuilderType, t secretTable) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(t.name).
		ToSql()
}

func buildCreateTempPassQuery(b sq.StatementBuilderType, p models.TemporaryMasterPass) (string, []any, error) {
	return b.Insert(tempPassTable).
		Columns(tempPassColumns...).
		Values(p.ID, p.KeyHash, p.WrappedPass, p.Nonce, p.ExpiresAt.Unix(), p.Consumed, p.CreatedAt.Unix()).
		ToSql()
}

// buildConsumeTempPassQuery flips consumed only for an active pass, so the
// affected row alone decides whether the caller won.
func buildConsumeTempPassQuery(b sq.StatementBuilderType, keyHash string, now time.Time) (string, []any, error) {
	return b.Update(tempPassTable).
		Set("consumed", true).
		Where(sq.Eq{"key_hash": keyHash}).
		Where(sq.Eq{"consumed": false}).
		Where(sq.Gt{"expires_at": now.Unix()}).
		Suffix("RETURNING " + strings.Join(tempPassColumns, ", ")).
		ToSql()
}

func buildGetTempPassQuery(b sq.StatementBuilderType, keyHash string) (string, []any, error) {
	return b.Select(tempPassColumns...).
		From(tempPassTable).
		Where(sq.Eq{"key_hash": keyHash}).
		ToSql()
}

func buildDeleteExpiredTempPassQuery(b sq.StatementBuilderType, now time.Time) (string, []any, error) {
	return b.Delete(tempPassTable).
		Where(sq.LtOrEq{"expires_at": now.Unix()}).
		ToSql()
}

func buildAddTrackingQuery(b sq.StatementBuilderType, e models.TrackEvent) (string, []any, error) {
	return b.Insert(trackingTable).
		Columns("user_id", "source", "kind", "created_at").
		Values(e.UserID, e.Source, e.Kind, e.At.Unix()).
		ToSql()
}

func buildCountTrackingQuery(b sq.StatementBuilderType, column string, value any, since time.Time) (string, []any, error) {
	return b.Select("COUNT(*)").
		From(trackingTable).
		Where(sq.Eq{column: value}).
		Where(sq.GtOrEq{"created_at": since.Unix()}).
		ToSql()
}

func buildDeleteTrackingQuery(b sq.StatementBuilderType, before time.Time) (string, []any, error) {
	return b.Delete(trackingTable).
		Where(sq.Lt{"created_at": before.Unix()}).
		ToSql()
}
