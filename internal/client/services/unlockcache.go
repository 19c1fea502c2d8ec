package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/logging"
	"github.com/goccy/go-json"
)

const unlockKeyPrefix = "unlock:"

var errMalformedEntry = errors.New("malformed unlock cache entry")

// LocalUnlockCache is a device-local, best-effort mirror of unlock grants.
// It is never authoritative. Entries older than common.UnlockGrantValidity
// are ignored on read.
type LocalUnlockCache interface {
	Record(ctx context.Context, userID, candidateID string) error
	Has(ctx context.Context, userID, candidateID string) (bool, error)
	ListUnexpired(ctx context.Context, userID string) (models.IDSet, error)
}

type cacheEntry struct {
	Granted  bool            `json:"granted"`
	IssuedAt json.RawMessage `json:"issuedAt"`
}

type localUnlockCache struct {
	repo   metadata.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewLocalUnlockCache(repo metadata.Repository, logger logging.Logger, now func() time.Time) LocalUnlockCache {
	if now == nil {
		now = time.Now
	}
	return &localUnlockCache{repo: repo, logger: logger, now: now}
}

func unlockKey(userID, candidateID string) string {
	return unlockKeyPrefix + userID + ":" + candidateID
}

func (c *localUnlockCache) Record(ctx context.Context, userID, candidateID string) error {
	if userID == "" {
		return common.ErrAuthRequired
	}
	issued, err := json.Marshal(c.now().UTC())
	if err != nil {
		return err
	}
	payload, err := json.Marshal(cacheEntry{Granted: true, IssuedAt: issued})
	if err != nil {
		return err
	}
	if err := c.repo.Set(ctx, unlockKey(userID, candidateID), payload); err != nil {
		return fmt.Errorf("%w: write local unlock: %w", common.ErrPersistence, err)
	}
	return nil
}

func (c *localUnlockCache) Has(ctx context.Context, userID, candidateID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	key := unlockKey(userID, candidateID)
	raw, err := c.repo.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: read local unlock: %w", common.ErrPersistence, err)
	}
	if raw == nil {
		return false, nil
	}
	issuedAt, err := parseEntry(raw)
	if err != nil {
		c.logger.Warn(ctx, "skipping local unlock entry", "key", key, "error", err)
		return false, nil
	}
	return !common.GrantExpired(issuedAt, c.now()), nil
}

// ListUnexpired scans the user's entries. Entries that fail to parse are
// logged and skipped.
func (c *localUnlockCache) ListUnexpired(ctx context.Context, userID string) (models.IDSet, error) {
	ids := models.IDSet{}
	if userID == "" {
		return ids, nil
	}

	prefix := unlockKey(userID, "")
	entries, err := c.repo.ListPrefix(ctx, prefix)
	if err != nil {
		return ids, fmt.Errorf("%w: list local unlocks: %w", common.ErrPersistence, err)
	}

	now := c.now()
	for key, raw := range entries {
		candidateID := strings.TrimPrefix(key, prefix)
		if candidateID == "" {
			continue
		}
		issuedAt, err := parseEntry(raw)
		if err != nil {
			c.logger.Warn(ctx, "skipping local unlock entry", "key", key, "error", err)
			continue
		}
		if !common.GrantExpired(issuedAt, now) {
			ids.Add(candidateID)
		}
	}
	return ids, nil
}

// parseEntry returns the issue time of a granted entry. issuedAt is either
// an RFC 3339 string or, in older entries, epoch milliseconds.
func parseEntry(raw []byte) (time.Time, error) {
	var e cacheEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errMalformedEntry, err)
	}
	if !e.Granted {
		return time.Time{}, fmt.Errorf("%w: not granted", errMalformedEntry)
	}

	v := bytes.TrimSpace(e.IssuedAt)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return time.Time{}, fmt.Errorf("%w: missing issuedAt", errMalformedEntry)
	}

	if v[0] == '"' {
		var t time.Time
		if err := json.Unmarshal(v, &t); err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", errMalformedEntry, err)
		}
		return t, nil
	}

	var ms int64
	if err := json.Unmarshal(v, &ms); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errMalformedEntry, err)
	}
	return time.UnixMilli(ms), nil
}
