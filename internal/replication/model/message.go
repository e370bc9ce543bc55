package model

// MessageInfo describes one blob as reported by a remote replica during
// metadata exchange. It is transient: it lives for exactly one iteration and
// is never persisted.
type MessageInfo struct {
	Key       BlobKey
	Size      int64
	IsDeleted bool
	IsExpired bool
}

// KeysOf projects a slice of MessageInfo down to the BlobKeys they describe,
// preserving order. The Reconciler uses this to build the set the local
// store is asked to check.
func KeysOf(messages []MessageInfo) []BlobKey {
	keys := make([]BlobKey, len(messages))
	for i := range messages {
		keys[i] = messages[i].Key
	}
	return keys
}
