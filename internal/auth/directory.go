package auth

import (
	"sync/atomic"
	"unicode/utf8"

	"starboard/pkg/gameerr"
)

// Directory mints process-unique user ids. A JWT is self-verifying, so
// unlike the lru_time_cache the original server used to map opaque
// tokens back to users, no server-side token table is needed here — the
// signed claims already carry the identity. The directory's only job is
// the atomic id counter, mirroring the original's AtomicUsize.
type Directory struct {
	nextID atomic.Uint64
}

// NewDirectory returns an empty directory; ids start at 1.
func NewDirectory() *Directory {
	return &Directory{}
}

// Register validates a display name and mints a fresh user id for it.
func (d *Directory) Register(displayName string) (uint64, error) {
	if err := ValidateDisplayName(displayName); err != nil {
		return 0, err
	}
	return d.nextID.Add(1), nil
}

// ValidateDisplayName enforces the same bound the original server used
// for both user names and room names: non-empty, at most 15 characters.
func ValidateDisplayName(name string) error {
	if n := utf8.RuneCountInString(name); n == 0 || n > 15 {
		return gameerr.New(gameerr.InvalidArgument, "display name must be 1-15 characters")
	}
	return nil
}
