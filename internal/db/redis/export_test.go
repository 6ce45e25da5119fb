package redis

import "github.com/redis/rueidis"

// newTestStore wraps a mocked client without dialing.
func newTestStore(c rueidis.Client) *Store {
	return &Store{client: c}
}
