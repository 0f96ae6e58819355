package service

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserLocks serializes plan generation and adaptation per user inside one process.
// Cross-process writers are caught by the plan version check.
type UserLocks struct {
	mu    sync.Mutex
	locks map[primitive.ObjectID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[primitive.ObjectID]*userLock)}
}

// Lock blocks until the user's lock is held and returns its release function.
func (l *UserLocks) Lock(userID primitive.ObjectID) (unlock func()) {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()
	return func() {
		ul.mu.Unlock()
		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *UserLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
