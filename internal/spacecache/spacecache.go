// Package spacecache disk-caches a generated and prioritized search space,
// keyed by the content hash of its candidate-locations input, so re-running
// repair against an unchanged instrumentation output skips synthesis and
// prioritization entirely. An entry written under a different payload
// schemaVersion reads as a miss. Follows a DiskCache/DiskPayload pattern:
// msgpack payloads, atomic rename-into-place writes, sync.RWMutex-guarded
// access.
package spacecache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"corrigo/internal/expr"
	"corrigo/internal/patch"
	"corrigo/internal/schema"
)

// schemaVersion increments whenever Payload's shape changes incompatibly.
const schemaVersion uint16 = 1

// Digest is a content hash: sha256 of the candidate-locations input bytes.
type Digest [sha256.Size]byte

// Sum computes the Digest of data.
func Sum(data []byte) Digest { return sha256.Sum256(data) }

// Cache is a directory-backed store of Payload entries keyed by Digest.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes a Cache rooted at dir, creating it if necessary.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// patchRecord is Patch flattened to the fields worth persisting; App is
// re-linked against the caller-supplied application list on Get, since a
// *schema.SchemaApplication pointer from a previous run is not itself
// meaningful once that run's process has exited.
type patchRecord struct {
	AppID    uint
	ID       patch.ID
	Modified expr.Expression
	Meta     patch.Metadata
}

// Payload is the cached, already-prioritized search space.
type Payload struct {
	Schema  uint16
	Patches []patchRecord
}

// Put serializes searchSpace under key.
func (c *Cache) Put(key Digest, searchSpace []patch.Patch) error {
	records := make([]patchRecord, len(searchSpace))
	for i, p := range searchSpace {
		records[i] = patchRecord{AppID: p.App.AppID, ID: p.ID, Modified: p.Modified, Meta: p.Meta}
	}
	payload := &Payload{Schema: schemaVersion, Patches: records}

	c.mu.Lock()
	defer c.mu.Unlock()

	dst := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), dst)
}

// Get reconstructs a cached search space, re-linking each patch to its
// owning application by AppID. apps must be the same set of applications
// the search space was generated from, in any order.
func (c *Cache) Get(key Digest, apps []*schema.SchemaApplication) ([]patch.Patch, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != schemaVersion {
		return nil, false, nil
	}

	byID := make(map[uint]*schema.SchemaApplication, len(apps))
	for _, app := range apps {
		byID[app.AppID] = app
	}

	out := make([]patch.Patch, 0, len(payload.Patches))
	for _, r := range payload.Patches {
		app, ok := byID[r.AppID]
		if !ok {
			return nil, false, nil
		}
		out = append(out, patch.Patch{ID: r.ID, App: app, Modified: r.Modified, Meta: r.Meta})
	}
	return out, true, nil
}
