package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"amazonia/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	users map[string]*models.User
	delay time.Duration
}

func (f *fakeSource) FindByUID(uid string) (*models.User, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if user, ok := f.users[uid]; ok {
		return user, nil
	}
	return nil, errors.New("record not found")
}

func TestAwaitResolvesUser(t *testing.T) {
	source := &fakeSource{users: map[string]*models.User{
		"u1": {UID: "u1", Email: "u1@amazonia.example", Role: models.RoleReporter},
	}}
	resolver := NewResolver(source, nil)

	user, err := resolver.Await(context.Background(), "u1", time.Second)
	assert.NoError(t, err)
	assert.Equal(t, "u1", user.UID)
	assert.Equal(t, models.RoleReporter, user.Role)
}

func TestAwaitUnknownIdentity(t *testing.T) {
	resolver := NewResolver(&fakeSource{}, nil)

	user, err := resolver.Await(context.Background(), "ghost", time.Second)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrUnknownIdentity)
}

func TestAwaitTimesOutOnSlowResolution(t *testing.T) {
	source := &fakeSource{
		users: map[string]*models.User{"u1": {UID: "u1"}},
		delay: 200 * time.Millisecond,
	}
	resolver := NewResolver(source, nil)

	start := time.Now()
	user, err := resolver.Await(context.Background(), "u1", 50*time.Millisecond)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 150*time.Millisecond, "Await must give up at the timeout")
}

func TestAwaitHonorsContextCancellation(t *testing.T) {
	source := &fakeSource{
		users: map[string]*models.User{"u1": {UID: "u1"}},
		delay: 200 * time.Millisecond,
	}
	resolver := NewResolver(source, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Await(ctx, "u1", time.Second)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestResolveDeliversExactlyOneResult(t *testing.T) {
	source := &fakeSource{users: map[string]*models.User{"u1": {UID: "u1"}}}
	resolver := NewResolver(source, nil)

	ch := resolver.Resolve(context.Background(), "u1")
	res := <-ch
	assert.NoError(t, res.Err)
	assert.Equal(t, "u1", res.User.UID)

	select {
	case _, open := <-ch:
		assert.False(t, open, "channel must not deliver a second result")
	case <-time.After(50 * time.Millisecond):
	}
}
