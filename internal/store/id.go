package store

import "github.com/google/uuid"

// NewID returns a random UUIDv4 in canonical form.
func NewID() string {
	return uuid.NewString()
}

// CanonicalID returns id in canonical lowercase form, or false when it is not a
// hyphenated UUID. Rows can only have such ids, so anything else cannot match.
func CanonicalID(id string) (string, bool) {
	if len(id) != 36 {
		return "", false
	}
	u, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return u.String(), true
}
