package client

import "sync"

// Operation names used for loading flags.
const (
	OpSendCode           = "auth.send_code"
	OpVerifyCode         = "auth.verify_code"
	OpLogout             = "auth.logout"
	OpGetProfile         = "user.get_profile"
	OpListCategories     = "categories.list"
	OpCreateCategory     = "categories.create"
	OpUpdateCategory     = "categories.update"
	OpDeleteCategory     = "categories.delete"
	OpListTransactions   = "transactions.list"
	OpGetSummary         = "transactions.summary"
	OpCreateTransaction  = "transactions.create"
	OpUpdateTransaction  = "transactions.update"
	OpDeleteTransaction  = "transactions.delete"
	OpAnalyzeTransaction = "transactions.analyze"
)

// loadingState tracks an independent in-flight flag per operation and
// notifies subscribers on every change.
type loadingState struct {
	mu          sync.Mutex
	flags       map[string]bool
	subscribers map[string][]func(bool)
}

func newLoadingState() *loadingState {
	return &loadingState{
		flags:       make(map[string]bool),
		subscribers: make(map[string][]func(bool)),
	}
}

func (l *loadingState) set(op string, loading bool) {
	l.mu.Lock()
	l.flags[op] = loading
	subs := make([]func(bool), len(l.subscribers[op]))
	copy(subs, l.subscribers[op])
	l.mu.Unlock()

	for _, fn := range subs {
		fn(loading)
	}
}

func (l *loadingState) get(op string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flags[op]
}

func (l *loadingState) subscribe(op string, fn func(bool)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subscribers[op] = append(l.subscribers[op], fn)
}

// Loading reports whether the named operation is currently in flight.
func (c *Client) Loading(op string) bool {
	return c.loading.get(op)
}

// Subscribe registers fn to be called with the new value each time the named
// operation's loading flag changes.
func (c *Client) Subscribe(op string, fn func(bool)) {
	c.loading.subscribe(op, fn)
}
