package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"transactions-dashboard/internal/models"
)

var (
	ErrProviderAlreadyMounted = errors.New("transactions provider is already mounted")
	ErrProviderNotMounted     = errors.New("transactions provider is not mounted")
	ErrProviderLoading        = errors.New("transactions provider is still loading")
)

// TransactionsProvider holds the dashboard's ordered transaction list.
// The list is filled by a single read on Mount and only ever grows
// through CreateTransaction. It is never reordered or deduplicated.
type TransactionsProvider struct {
	mu           sync.RWMutex
	client       TransactionsClientInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
	transactions []models.Transaction
	state        models.ProviderState
	lastError    error
	loadedAt     *time.Time
	// bumped by Unmount
	mounts int
	now    func() time.Time
}

func NewTransactionsProvider(
	client TransactionsClientInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) *TransactionsProvider {
	return &TransactionsProvider{
		client:       client,
		metrics:      metrics,
		logger:       logger,
		transactions: []models.Transaction{},
		state:        models.ProviderStateUnmounted,
		now:          time.Now,
	}
}

// Mount issues the initial read. On failure the held list is left as it
// was and the provider moves to the failed state carrying the error.
func (p *TransactionsProvider) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.state != models.ProviderStateUnmounted {
		p.mu.Unlock()
		return ErrProviderAlreadyMounted
	}
	p.state = models.ProviderStateLoading
	p.mu.Unlock()

	transactions, err := p.client.ListTransactions(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.state = models.ProviderStateFailed
		p.lastError = err
		p.metrics.IncrementCounter(MetricProviderLoad, map[string]string{"status": "failed"})
		p.logger.Error("failed to load transactions", "error", err)
		return err
	}

	loadedAt := p.now().UTC()
	p.transactions = append(make([]models.Transaction, 0, len(transactions)), transactions...)
	p.state = models.ProviderStateReady
	p.lastError = nil
	p.loadedAt = &loadedAt

	p.metrics.IncrementCounter(MetricProviderLoad, map[string]string{"status": "success"})
	p.metrics.RecordGauge(MetricProviderTransactions, float64(len(p.transactions)), nil)
	p.logger.Info("transactions loaded", "count", len(p.transactions))

	return nil
}

// CreateTransaction writes input as given and appends the record the API returns.
// It is rejected before Mount and while the initial read is in flight.
func (p *TransactionsProvider) CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error) {
	p.mu.RLock()
	state, mount := p.state, p.mounts
	p.mu.RUnlock()

	switch state {
	case models.ProviderStateUnmounted:
		return nil, ErrProviderNotMounted
	case models.ProviderStateLoading:
		return nil, ErrProviderLoading
	}

	created, err := p.client.CreateTransaction(ctx, input)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		if p.mounts == mount {
			p.lastError = err
		}
		p.metrics.IncrementCounter(MetricProviderCreate, map[string]string{"status": "failed"})
		p.logger.Error("failed to create transaction", "title", input.Title, "error", err)
		return nil, err
	}

	result := *created
	if p.mounts != mount {
		p.logger.Warn("transaction created after unmount", "id", created.ID)
		return &result, nil
	}

	p.transactions = append(p.transactions, *created)
	p.lastError = nil

	p.metrics.IncrementCounter(MetricProviderCreate, map[string]string{"status": "success"})
	p.metrics.RecordGauge(MetricProviderTransactions, float64(len(p.transactions)), nil)
	p.logger.Info("transaction created", "id", created.ID, "type", created.Type)

	return &result, nil
}

// Transactions returns a copy of the held list
func (p *TransactionsProvider) Transactions() []models.Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	transactions := make([]models.Transaction, len(p.transactions))
	copy(transactions, p.transactions)
	return transactions
}

func (p *TransactionsProvider) Status() models.ProviderStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()

	status := models.ProviderStatus{
		State: p.state,
		Count: len(p.transactions),
	}
	if p.lastError != nil {
		status.LastError = p.lastError.Error()
	}
	if p.loadedAt != nil {
		loadedAt := *p.loadedAt
		status.LoadedAt = &loadedAt
	}
	return status
}

func (p *TransactionsProvider) Summary() models.TransactionSummary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.SummarizeTransactions(p.transactions)
}

// Unmount drops the held list. The provider can be mounted again afterwards.
func (p *TransactionsProvider) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.transactions = []models.Transaction{}
	p.state = models.ProviderStateUnmounted
	p.lastError = nil
	p.loadedAt = nil
	p.mounts++
	p.metrics.RecordGauge(MetricProviderTransactions, 0, nil)
}
