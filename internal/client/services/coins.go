package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/talentledger/internal/common"
)

type DebitResult struct {
	NewBalance int64
}

// CoinLedger owns a user's spendable balance.
//
// Debit reads the balance and then writes the new absolute value.
// Nothing serialises concurrent callers.
type CoinLedger interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Debit(ctx context.Context, userID string, amount int64) (DebitResult, error)
}

type coinLedger struct {
	src BalanceSource
}

func NewCoinLedger(src BalanceSource) CoinLedger {
	return &coinLedger{src: src}
}

func (l *coinLedger) GetBalance(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, common.ErrAuthRequired
	}
	b, err := l.src.GetBalance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: read balance: %w", common.ErrPersistence, err)
	}
	return b, nil
}

// Debit fails with *common.InsufficientFundsError when the balance is below
// amount. The balance is left untouched in that case.
func (l *coinLedger) Debit(ctx context.Context, userID string, amount int64) (DebitResult, error) {
	if amount < 0 {
		return DebitResult{}, common.ErrInvalidAmount
	}
	balance, err := l.GetBalance(ctx, userID)
	if err != nil {
		return DebitResult{}, err
	}
	if balance < amount {
		return DebitResult{}, &common.InsufficientFundsError{Required: amount, Available: balance}
	}

	next := balance - amount
	if err := l.src.SetBalance(ctx, userID, next); err != nil {
		return DebitResult{}, fmt.Errorf("%w: write balance: %w", common.ErrPersistence, err)
	}
	return DebitResult{NewBalance: next}, nil
}
