package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PostUUID derives a stable post id from its slug, handy for seeding fixtures
// that must keep the same id across runs.
func PostUUID(slug string) uuid.UUID {
	return UUID("go-blog:post:" + strings.ToLower(strings.TrimSpace(slug)))
}

// CategoryUUID derives a stable category id from its slug.
func CategoryUUID(slug string) uuid.UUID {
	return UUID("go-blog:category:" + strings.ToLower(strings.TrimSpace(slug)))
}

// ProfileUUID derives a stable profile id from an external identity subject.
func ProfileUUID(subject string) uuid.UUID {
	return UUID("go-blog:profile:" + strings.TrimSpace(subject))
}
