// Package access implements the time-boxed beta access gate. A grant lives
// for 24 hours from the moment it was issued (not sliding); after that any
// read treats the stored record as absent and clears it.
package access

import (
	"log"
	"strconv"
	"sync"
	"time"
)

const (
	// Storage keys, kept byte-for-byte compatible with the frontend's
	// localStorage schema so either side can own the record.
	AccessKey     = "betaAccess"
	AccessTimeKey = "betaAccessTime"

	// GrantedValue is the only value of AccessKey that means anything.
	GrantedValue = "granted"

	// TTL is the fixed lifetime of a grant.
	TTL = 24 * time.Hour
)

// Store is the persistence abstraction behind the gate. Get returns
// ("", nil) for an absent key; an error from any method means the backing
// storage itself failed.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Remove(key string) error
}

// Gate reads and writes the access record. Storage failures never escape:
// they are logged and the gate fails closed (no access).
type Gate struct {
	store Store

	mu  sync.Mutex
	now func() time.Time
}

func NewGate(store Store) *Gate {
	return &Gate{
		store: store,
		now:   time.Now,
	}
}

// HasAccess reports whether a non-expired grant is present. Detecting an
// expired grant clears both keys as a side effect.
func (g *Gate) HasAccess() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	flag, err := g.store.Get(AccessKey)
	if err != nil {
		log.Printf("access check failed to read %v: %v", AccessKey, err.Error())
		return false
	}
	ts, err := g.store.Get(AccessTimeKey)
	if err != nil {
		log.Printf("access check failed to read %v: %v", AccessTimeKey, err.Error())
		return false
	}
	if flag != GrantedValue || ts == "" {
		return false
	}

	grantedAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		log.Printf("access check found unparseable grant time %q: %v", ts, err.Error())
		g.clear()
		return false
	}

	elapsed := g.now().UnixNano()/int64(time.Millisecond) - grantedAt
	if elapsed >= int64(TTL/time.Millisecond) {
		g.clear()
		return false
	}
	return true
}

// GrantAccess writes a fresh grant. Granting again resets the expiry
// window: latest grant wins.
func (g *Gate) GrantAccess() {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := g.now().UnixNano() / int64(time.Millisecond)
	err := g.store.Set(AccessKey, GrantedValue)
	if err != nil {
		log.Printf("failed to write %v: %v", AccessKey, err.Error())
		return
	}
	err = g.store.Set(AccessTimeKey, strconv.FormatInt(millis, 10))
	if err != nil {
		log.Printf("failed to write %v: %v", AccessTimeKey, err.Error())
	}
}

// RevokeAccess clears the record entirely; HasAccess is false immediately.
func (g *Gate) RevokeAccess() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clear()
}

// ExtendAccess resets the grant timestamp if a grant is currently active
// and reports whether it did. There is nothing to extend once the grant
// has lapsed.
func (g *Gate) ExtendAccess() bool {
	if !g.HasAccess() {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	millis := g.now().UnixNano() / int64(time.Millisecond)
	err := g.store.Set(AccessTimeKey, strconv.FormatInt(millis, 10))
	if err != nil {
		log.Printf("failed to extend %v: %v", AccessTimeKey, err.Error())
		return false
	}
	return true
}

// Remaining returns the time left on an active grant.
func (g *Gate) Remaining() (time.Duration, bool) {
	if !g.HasAccess() {
		return 0, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	ts, err := g.store.Get(AccessTimeKey)
	if err != nil {
		return 0, false
	}
	grantedAt, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, false
	}
	elapsed := time.Duration(g.now().UnixNano()/int64(time.Millisecond)-grantedAt) * time.Millisecond
	return TTL - elapsed, true
}

// clear removes both keys together. The two fields are never cleared
// independently. Callers hold g.mu.
func (g *Gate) clear() {
	err := g.store.Remove(AccessKey)
	if err != nil {
		log.Printf("failed to remove %v: %v", AccessKey, err.Error())
	}
	err = g.store.Remove(AccessTimeKey)
	if err != nil {
		log.Printf("failed to remove %v: %v", AccessTimeKey, err.Error())
	}
}
