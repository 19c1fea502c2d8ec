package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/client/models"
	"github.com/dmitrijs2005/talentledger/internal/common"
	"github.com/dmitrijs2005/talentledger/internal/logging"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// UsageKindUnlock is the usage-history kind written after a paid unlock.
const UsageKindUnlock = "unlock"

// UnlockCoordinator runs the coin-for-grant exchange and answers whether a
// candidate is unlocked for a user.
//
// A candidate counts as unlocked when either the remote grant store or the
// local cache holds an unexpired entry. The local cache only ever adds.
//
// Unlock is a two-step saga: the debit and the grant write are separate and
// a failed grant does not refund the debit. Calls for the same pair are not
// serialised, so two concurrent unlocks can both pay.
type UnlockCoordinator interface {
	IsUnlocked(ctx context.Context, userID, candidateID string) (bool, error)
	UnlockedIDs(ctx context.Context, userID string) (models.IDSet, error)
	Unlock(ctx context.Context, userID, candidateID string, cost int64) models.UnlockResult
}

type unlockCoordinator struct {
	ledger        CoinLedger
	grants        UnlockGrantStore
	cache         LocalUnlockCache
	relationships RelationshipStore
	usage         UsageSource
	logger        logging.Logger
	metrics       unlockMetrics
}

func NewUnlockCoordinator(
	ledger CoinLedger,
	grants UnlockGrantStore,
	cache LocalUnlockCache,
	relationships RelationshipStore,
	usage UsageSource,
	logger logging.Logger,
	registry prometheus.Registerer,
) UnlockCoordinator {
	c := &unlockCoordinator{
		ledger:        ledger,
		grants:        grants,
		cache:         cache,
		relationships: relationships,
		usage:         usage,
		logger:        logger,
	}
	c.metrics.Register(registry)
	return c
}

// IsUnlocked falls back to the local cache when the remote read fails, and
// to the remote answer alone when the local read fails.
func (c *unlockCoordinator) IsUnlocked(ctx context.Context, userID, candidateID string) (bool, error) {
	if userID == "" {
		return false, common.ErrAuthRequired
	}

	remote, remoteErr := c.grants.IsGranted(ctx, userID, candidateID)
	if remoteErr == nil && remote {
		return true, nil
	}

	local, err := c.cache.Has(ctx, userID, candidateID)
	if err != nil {
		c.logger.Warn(ctx, "local unlock cache read failed", "user_id", userID, "candidate_id", candidateID, "error", err)
		local = false
	}
	if local {
		return true, nil
	}
	if remoteErr != nil {
		return false, remoteErr
	}
	return false, nil
}

// UnlockedIDs merges the remote and local sets. A failure of one source is
// logged and the other is used alone.
func (c *unlockCoordinator) UnlockedIDs(ctx context.Context, userID string) (models.IDSet, error) {
	if userID == "" {
		return nil, common.ErrAuthRequired
	}

	remote, remoteErr := c.grants.ListGrantedIDs(ctx, userID)
	local, localErr := c.cache.ListUnexpired(ctx, userID)

	switch {
	case remoteErr != nil && localErr != nil:
		return nil, remoteErr
	case remoteErr != nil:
		c.logger.Warn(ctx, "remote grants unavailable, using local cache", "user_id", userID, "error", remoteErr)
		return local, nil
	case localErr != nil:
		c.logger.Warn(ctx, "local unlock cache unavailable", "user_id", userID, "error", localErr)
		return remote, nil
	}
	return remote.Union(local), nil
}

func (c *unlockCoordinator) Unlock(ctx context.Context, userID, candidateID string, cost int64) models.UnlockResult {
	if userID == "" {
		return c.failed(outcomeError, "sign in to unlock candidates", common.ErrAuthRequired)
	}
	if cost < 0 {
		return c.failed(outcomeError, "invalid unlock cost", common.ErrInvalidAmount)
	}

	already, err := c.IsUnlocked(ctx, userID, candidateID)
	if err != nil {
		return c.failed(outcomeError, "could not check unlock status", err)
	}
	if already {
		c.metrics.inc(outcomeAlready)
		return models.UnlockResult{Status: models.UnlockAlready, Message: "candidate is already unlocked"}
	}

	debit, err := c.ledger.Debit(ctx, userID, cost)
	if err != nil {
		var ife *common.InsufficientFundsError
		if errors.As(err, &ife) {
			return c.failed(outcomeInsufficient, ife.Error(), err)
		}
		return c.failed(outcomeError, "could not charge coins", err)
	}

	if err := c.grants.Grant(ctx, userID, candidateID); err != nil {
		attemptID := uuid.NewString()
		c.logger.Error(ctx, "partial unlock: charged without grant",
			"attempt_id", attemptID,
			"user_id", userID,
			"candidate_id", candidateID,
			"cost", cost,
			"new_balance", debit.NewBalance,
			"error", err,
		)
		return c.failed(outcomePartial,
			fmt.Sprintf("charged %d coins but the unlock was not recorded (ref %s)", cost, attemptID),
			fmt.Errorf("%w: %w", common.ErrPartialUnlock, err))
	}

	if err := c.usage.RecordUsage(ctx, userID, candidateID, UsageKindUnlock, cost); err != nil {
		c.logger.Warn(ctx, "usage history not recorded", "user_id", userID, "candidate_id", candidateID, "error", err)
	}
	if err := c.cache.Record(ctx, userID, candidateID); err != nil {
		c.logger.Warn(ctx, "local unlock mirror failed", "user_id", userID, "candidate_id", candidateID, "error", err)
	}
	if err := c.relationships.Upsert(ctx, userID, candidateID, models.FlagsPatch{Unlocked: models.Flag(true)}); err != nil {
		c.logger.Warn(ctx, "unlocked flag mirror failed", "user_id", userID, "candidate_id", candidateID, "error", err)
	}

	c.metrics.inc(outcomeSuccess)
	return models.UnlockResult{
		Status:  models.UnlockSuccess,
		Message: fmt.Sprintf("unlocked for %d coins, %d left", cost, debit.NewBalance),
	}
}

func (c *unlockCoordinator) failed(outcome, msg string, err error) models.UnlockResult {
	c.metrics.inc(outcome)
	return models.UnlockResult{Status: models.UnlockError, Message: msg, Err: err}
}
