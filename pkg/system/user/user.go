// Package user maps numeric user ids to account names.
package user

import (
	osuser "os/user"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of distinct uids remembered.
const DefaultCacheSize = 512

// LookupFunc resolves a uid to a name; an error means the uid has no entry.
type LookupFunc func(uid uint32) (string, error)

// Resolver caches uid to name lookups. Unknown uids resolve to their decimal
// form and are cached too, so the account database is consulted at most once
// per uid. A Resolver is safe for concurrent use.
type Resolver struct {
	cache  *lru.Cache[uint32, string]
	lookup LookupFunc
}

// NewResolver returns a Resolver backed by the system account database.
func NewResolver() *Resolver {
	return NewResolverWith(DefaultCacheSize, systemLookup)
}

// NewResolverWith returns a Resolver using lookup and an LRU of size entries.
func NewResolverWith(size int, lookup LookupFunc) *Resolver {
	if size <= 0 {
		size = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[uint32, string](size)
	return &Resolver{cache: cache, lookup: lookup}
}

// Name returns the account name for uid, or the uid itself in decimal.
func (r *Resolver) Name(uid uint32) string {
	if name, ok := r.cache.Get(uid); ok {
		return name
	}
	name, err := r.lookup(uid)
	if err != nil || name == "" {
		name = strconv.FormatUint(uint64(uid), 10)
	}
	r.cache.Add(uid, name)
	return name
}

func systemLookup(uid uint32) (string, error) {
	u, err := osuser.LookupId(strconv.FormatUint(uint64(uid), 10))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}
