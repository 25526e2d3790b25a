package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"letteram/internal/app/user"
)

// presenceClient builds a Client handle for registry tests. Registry
// operations never touch the connection, so none is needed.
func presenceClient(userID string) *Client {
	return NewClient(nil, nil, user.User{ID: userID})
}

func TestRegisterAndLookup(t *testing.T) {
	p := NewPresenceRegistry()
	alice := presenceClient("alice")

	displaced := p.Register("alice", alice)
	require.Nil(t, displaced)

	require.Same(t, alice, p.Lookup("alice"))
	require.Nil(t, p.Lookup("bob"))
}

func TestRegisterReplacesExistingConnection(t *testing.T) {
	p := NewPresenceRegistry()
	old := presenceClient("alice")
	fresh := presenceClient("alice")

	require.Nil(t, p.Register("alice", old))

	displaced := p.Register("alice", fresh)
	require.Same(t, old, displaced)
	require.Same(t, fresh, p.Lookup("alice"))
}

func TestRegisterSameHandleTwice(t *testing.T) {
	p := NewPresenceRegistry()
	alice := presenceClient("alice")

	require.Nil(t, p.Register("alice", alice))
	require.Nil(t, p.Register("alice", alice))
	require.Same(t, alice, p.Lookup("alice"))
}

func TestUnregisterIgnoresStaleHandle(t *testing.T) {
	p := NewPresenceRegistry()
	old := presenceClient("alice")
	fresh := presenceClient("alice")

	p.Register("alice", old)
	p.Register("alice", fresh)

	// The replaced connection's late disconnect must not clobber the new one.
	require.False(t, p.Unregister("alice", old))
	require.Same(t, fresh, p.Lookup("alice"))

	require.True(t, p.Unregister("alice", fresh))
	require.Nil(t, p.Lookup("alice"))
}

func TestUnregisterUnknownUser(t *testing.T) {
	p := NewPresenceRegistry()
	require.False(t, p.Unregister("ghost", presenceClient("ghost")))
}

func TestOnlineIDsSorted(t *testing.T) {
	p := NewPresenceRegistry()

	p.Register("carol", presenceClient("carol"))
	p.Register("alice", presenceClient("alice"))
	p.Register("bob", presenceClient("bob"))

	require.Equal(t, []string{"alice", "bob", "carol"}, p.OnlineIDs())

	p.Unregister("bob", p.Lookup("bob"))
	require.Equal(t, []string{"alice", "carol"}, p.OnlineIDs())
}

func TestRegistryConcurrentChurn(t *testing.T) {
	p := NewPresenceRegistry()

	const users = 16
	const rounds = 50

	var wg sync.WaitGroup
	for u := range users {
		userID := fmt.Sprintf("user-%d", u)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				c := presenceClient(userID)
				if displaced := p.Register(userID, c); displaced != nil {
					p.Unregister(userID, displaced)
				}
				p.Lookup(userID)
				p.OnlineIDs()
			}
		}()
	}
	wg.Wait()

	// Every user ends with exactly its last registered connection.
	require.Len(t, p.OnlineIDs(), users)
	for u := range users {
		userID := fmt.Sprintf("user-%d", u)
		require.NotNil(t, p.Lookup(userID))
	}
}
