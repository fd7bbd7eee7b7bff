// Package store holds the console's shared application state. A single
// Store is created at startup and passed by reference to the screens and
// the importer; all mutation goes through its action methods.
package store

import (
	"sync"

	"github.com/stripe2qbo/console/internal/stripe"
)

// Store is the application-state container. The zero value is not syncing,
// has an empty status and no transactions.
type Store struct {
	mu           sync.RWMutex
	syncing      bool
	syncStatus   string
	transactions []stripe.Transaction
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// SetSyncing marks whether an import is in flight.
func (s *Store) SetSyncing(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncing = v
}

// SetSyncStatus sets the progress text shown on the import screen.
func (s *Store) SetSyncStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncStatus = status
}

// AddTransaction appends an imported transaction. Transactions are only
// ever appended; the console never removes them.
func (s *Store) AddTransaction(t stripe.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, t)
}

// IsSyncing reports whether an import is in flight.
func (s *Store) IsSyncing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncing
}

// SyncStatus returns the current progress text.
func (s *Store) SyncStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.syncStatus
}

// Transactions returns a copy of the imported transactions in arrival order.
func (s *Store) Transactions() []stripe.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]stripe.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// TransactionCount returns how many transactions have been imported.
func (s *Store) TransactionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}
