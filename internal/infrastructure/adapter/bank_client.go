package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/geraldpay/bnpl-engine/internal/domain/model"
	"github.com/geraldpay/bnpl-engine/internal/domain/port"
	"github.com/geraldpay/bnpl-engine/internal/domain/valueobject"
	"github.com/geraldpay/bnpl-engine/internal/infrastructure/metrics"
)

// BankClient fetches transaction histories over HTTP from the bank service.
// Timeouts are retried with exponential backoff and jitter, up to maxAttempts
// requests in total; HTTP-level failures are not, since the bank already
// answered.
type BankClient struct {
	baseURL      string
	client       *http.Client
	maxAttempts  int
	retryBackoff time.Duration
	logger       *slog.Logger
}

func NewBankClient(baseURL string, timeout time.Duration, maxAttempts int, retryBackoff time.Duration, logger *slog.Logger) *BankClient {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &BankClient{
		baseURL:      baseURL,
		client:       &http.Client{Timeout: timeout},
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,
		logger:       logger,
	}
}

// bankTransaction is the bank service's wire shape. Amounts are signed
// cents; the transaction type is inferred from the sign when absent.
type bankTransaction struct {
	Date        string `json:"date"`
	AmountCents int64  `json:"amount_cents"`
	Balance     int64  `json:"balance_cents"`
	Type        string `json:"type,omitempty"`
	NSF         bool   `json:"is_nsf,omitempty"`
	Description string `json:"description,omitempty"`
}

type bankTransactionsResponse struct {
	UserID       string            `json:"user_id"`
	Transactions []bankTransaction `json:"transactions"`
}

func (c *BankClient) GetTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	start := time.Now()
	txns, err := c.fetchWithRetry(ctx, userID)
	metrics.BankFetchLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BankFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.BankFetchesTotal.WithLabelValues("ok").Inc()
	return txns, nil
}

func (c *BankClient) fetchWithRetry(ctx context.Context, userID string) ([]model.Transaction, error) {
	endpoint := fmt.Sprintf("%s/bank/transactions?user_id=%s", c.baseURL, url.QueryEscape(userID))

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			backoff := c.retryBackoff * time.Duration(1<<(attempt-1))
			var jitter time.Duration
			if backoff > 0 {
				jitter = time.Duration(rand.Int63n(int64(backoff)/2 + 1))
			}
			select {
			case <-time.After(backoff + jitter):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", port.ErrBankTimeout, ctx.Err())
			}
			c.logger.Warn("retrying bank fetch", "user_id", userID, "attempt", attempt, "error", lastErr)
		}

		txns, retryable, err := c.fetch(ctx, endpoint)
		if err == nil {
			return txns, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// fetch performs one request. The second return value reports whether the
// failure is worth retrying.
func (c *BankClient) fetch(ctx context.Context, endpoint string) ([]model.Transaction, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building bank request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, true, fmt.Errorf("%w: %w", port.ErrBankTimeout, err)
		}
		return nil, true, fmt.Errorf("%w: %w", port.ErrBankUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, port.ErrUserNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, false, fmt.Errorf("%w: bank returned status %d", port.ErrBankUnavailable, resp.StatusCode)
	}

	var body bankTransactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, fmt.Errorf("%w: decoding bank response: %w", port.ErrBankUnavailable, err)
	}

	txns := make([]model.Transaction, 0, len(body.Transactions))
	for _, bt := range body.Transactions {
		txn, err := bt.toModel()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", port.ErrBankUnavailable, err)
		}
		txns = append(txns, txn)
	}
	return txns, false, nil
}

func (bt bankTransaction) toModel() (model.Transaction, error) {
	date, err := parseDate(bt.Date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing transaction date %q: %w", bt.Date, err)
	}

	txnType := valueobject.TransactionDebit
	switch {
	case bt.Type != "":
		txnType, err = valueobject.NewTransactionType(bt.Type)
		if err != nil {
			return model.Transaction{}, err
		}
	case bt.AmountCents > 0:
		txnType = valueobject.TransactionCredit
	}

	amount := bt.AmountCents
	if amount < 0 {
		amount = -amount
	}

	return model.Transaction{
		Date:         date,
		AmountCents:  amount,
		BalanceCents: bt.Balance,
		Type:         txnType,
		NSF:          bt.NSF,
		Description:  bt.Description,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
