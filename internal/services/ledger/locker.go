package ledger

import "sync"

// AccountLocker hands out one mutex per account id. Every balance mutation
// holds the account's mutex for its whole read-check-write cycle, so
// operations on the same account serialize while unrelated accounts stay
// fully concurrent. One instance is shared by the ledger and the transfer
// coordinator; a second instance would break the mutual exclusion.
//
// Mutexes are created lazily and kept for the process lifetime; the set of
// accounts is small and stable enough that eviction is not worth the
// bookkeeping.
type AccountLocker struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewAccountLocker() *AccountLocker {
	return &AccountLocker{locks: make(map[uint]*sync.Mutex)}
}

func (l *AccountLocker) lockFor(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

func (l *AccountLocker) Lock(id uint)   { l.lockFor(id).Lock() }
func (l *AccountLocker) Unlock(id uint) { l.lockFor(id).Unlock() }

// LockPair acquires both account locks in ascending id order, regardless of
// argument order. Two transfers touching the same pair of accounts in
// opposite directions therefore contend on the same first lock instead of
// deadlocking. The ids must differ.
func (l *AccountLocker) LockPair(a, b uint) {
	if b < a {
		a, b = b, a
	}
	l.Lock(a)
	l.Lock(b)
}

func (l *AccountLocker) UnlockPair(a, b uint) {
	l.Unlock(a)
	l.Unlock(b)
}
