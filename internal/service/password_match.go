package service

import (
	"errors"
	"slices"

	"github.com/MKhiriev/go-vault-keeper/internal/crypto"
	"github.com/MKhiriev/go-vault-keeper/models"
)

// passwordMatcher checks a password against the master password record. The
// recorded format is tried first, then every format of the upgrade path.
type passwordMatcher struct {
	hasher      crypto.PasswordHasher
	upgradePath []models.FormatVersion
}

func newPasswordMatcher(hasher crypto.PasswordHasher, upgradePath []models.FormatVersion) passwordMatcher {
	return passwordMatcher{
		hasher:      hasher,
		upgradePath: slices.Clone(upgradePath),
	}
}

// match returns the format the digest verified in. A digest that does not
// parse in a candidate format only rules that format out.
func (m passwordMatcher) match(record models.MasterPasswordRecord, password string) (models.FormatVersion, bool, error) {
	if password == "" || record.Digest == "" {
		return models.FormatUnknown, false, nil
	}

	for _, format := range m.candidates(record.Format) {
		ok, err := m.hasher.Verify(password, record.Digest, format)
		if err != nil {
			if errors.Is(err, crypto.ErrMalformedDigest) {
				continue
			}
			return models.FormatUnknown, false, err
		}
		if ok {
			return format, true, nil
		}
	}

	return models.FormatUnknown, false, nil
}

func (m passwordMatcher) candidates(recorded models.FormatVersion) []models.FormatVersion {
	result := make([]models.FormatVersion, 0, len(m.upgradePath)+1)
	if recorded.IsKnown() {
		result = append(result, recorded)
	}
	for _, f := range m.upgradePath {
		if f.IsKnown() && !slices.Contains(result, f) {
			result = append(result, f)
		}
	}
	return result
}
