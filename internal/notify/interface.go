package notify

import "github.com/usmankz/coinsight/internal/core"

// Listener receives the new snapshot after every completed refresh cycle,
// whether the cycle pulled live data or fell back to static values. This is
// the push channel the presentation side re-renders from.
type Listener interface {
	// Name returns the listener identifier (e.g., "webhook")
	Name() string

	// OnRefresh is called with the snapshot just installed in the repository.
	// Implementations must not block the refresh cycle for long and must not
	// mutate the snapshot.
	OnRefresh(snapshot core.Snapshot) error
}
