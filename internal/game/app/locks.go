package app

import "sync"

// playerLocks serializes actions per player. Two-player operations always
// acquire locks in ID order so concurrent cross-attacks cannot deadlock.
type playerLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPlayerLocks() *playerLocks {
	return &playerLocks{locks: map[string]*sync.Mutex{}}
}

func (l *playerLocks) get(id string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// lock acquires the lock for one player and returns the unlock func.
func (l *playerLocks) lock(id string) func() {
	m := l.get(id)
	m.Lock()
	return m.Unlock
}

// lockPair acquires the locks for two players in ID order.
func (l *playerLocks) lockPair(a, b string) func() {
	if a == b {
		return l.lock(a)
	}
	if b < a {
		a, b = b, a
	}
	first := l.get(a)
	second := l.get(b)
	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
