// Package rcache persists a cache of parsed top-level documents across
// `rst2x build` invocations, so a repeat build doesn't re-read and
// re-parse an unchanged document. Files pulled in through `include`
// inside a parse are not cached separately, and `watch` does not use
// the cache. Freshness is checked against the file's mtime, which a
// caller can get from a plain os.Stat, so a hit never touches the
// file's contents at all.
package rcache

import (
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one cached document, identified by its path and the
// ParseOptions fingerprint that produced it (so a config change
// invalidates the cache without a manual flush), and considered fresh
// only while ModUnix matches the file's current mtime. AST carries the
// gob-encoded parse result, so a fresh hit can be returned without
// re-reading or re-parsing the file.
type Entry struct {
	Path        string `gorm:"primaryKey"`
	Fingerprint string `gorm:"primaryKey"`
	Digest      string
	ModUnix     int64
	AST         []byte
	NodeCount   int
	HasToc      bool
	UpdatedAt   time.Time
}

// Cache wraps a gorm/sqlite database of Entry rows.
type Cache struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at path.
func Open(path string) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Digest computes a content fingerprint for a file's bytes combined with
// an options fingerprint, stored alongside each Entry as a record of the
// bytes that produced it. LookupFresh does not compare it: freshness is
// decided by path, options fingerprint and mtime alone.
func Digest(content []byte, optionsFingerprint string) string {
	h := blake2b.Sum256(append(content, []byte(optionsFingerprint)...))
	return hex.EncodeToString(h[:])
}

// LookupFresh returns the cached entry for path+optionsFingerprint if
// one exists and its ModUnix matches modUnix. The caller is expected to
// have obtained modUnix from os.Stat, without reading the file's
// contents, so a hit here means the read can be skipped entirely.
func (c *Cache) LookupFresh(path, optionsFingerprint string, modUnix int64) (Entry, bool) {
	var e Entry
	res := c.db.First(&e, "path = ? AND fingerprint = ? AND mod_unix = ?", path, optionsFingerprint, modUnix)
	if res.Error != nil {
		return Entry{}, false
	}
	return e, true
}

// Put records a freshly parsed document's AST (gob-encoded by the
// caller) under path+optionsFingerprint, along with the mtime and
// content digest that made it fresh.
func (c *Cache) Put(path, optionsFingerprint, digest string, modUnix int64, ast []byte, nodeCount int, hasToc bool) error {
	e := Entry{
		Path:        path,
		Fingerprint: optionsFingerprint,
		Digest:      digest,
		ModUnix:     modUnix,
		AST:         ast,
		NodeCount:   nodeCount,
		HasToc:      hasToc,
		UpdatedAt:   time.Now(),
	}
	return c.db.Save(&e).Error
}
