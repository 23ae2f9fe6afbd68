package repository

import "context"

// KeyValueStore is the shared keyed storage the history and draft stores persist into.
// Every write replaces the whole value under a key; there are no transactions.
type KeyValueStore interface {
	// Get returns the value stored under key and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// HistoryKey is the storage key holding the JSON array of finalized receipts.
const HistoryKey = "tuition_history"

// DraftKeyPrefix is prepended to the billing type to form a draft slot key.
const DraftKeyPrefix = "tuition_draft_"
