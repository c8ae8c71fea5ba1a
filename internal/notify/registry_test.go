package notify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usmankz/coinsight/internal/core"
)

type stubListener struct {
	name  string
	err   error
	calls int
}

func (s *stubListener) Name() string { return s.name }

func (s *stubListener) OnRefresh(core.Snapshot) error {
	s.calls++
	return s.err
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&stubListener{name: "webhook"}))
	assert.Error(t, r.Register(&stubListener{name: "webhook"}))
	assert.Len(t, r.GetAll(), 1)
}

func TestRegistry_NotifyAllContinuesPastFailures(t *testing.T) {
	r := NewRegistry()
	failing := &stubListener{name: "failing", err: errors.New("boom")}
	healthy := &stubListener{name: "healthy"}
	require.NoError(t, r.Register(failing))
	require.NoError(t, r.Register(healthy))

	errs := r.NotifyAll(core.Snapshot{})

	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "failing")
	assert.Equal(t, 1, healthy.calls, "a failing listener must not block the others")
}
