package inmemory

import (
	"context"
	"testing"
	"time"

	"bulletin/internal/service"
	"bulletin/pkg/pagination"

	"github.com/stretchr/testify/require"
)

func state(token uint64) service.ListingState[int] {
	return service.ListingState[int]{Status: service.StatusLoaded, Token: token}
}

func TestBus_PublishToTopic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New[int](4)
	posts, err := bus.Subscribe(ctx, "posts")
	require.NoError(t, err)
	admin, err := bus.Subscribe(ctx, "admin")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(ctx, "posts", state(1)))

	require.Equal(t, uint64(1), (<-posts).Token)
	select {
	case s := <-admin:
		t.Fatalf("unexpected state on other topic: %+v", s)
	default:
	}
}

func TestBus_SlowSubscriberKeepsNewest(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New[int](2)
	ch, err := bus.Subscribe(ctx, "posts")
	require.NoError(t, err)

	for token := uint64(1); token <= 5; token++ {
		require.NoError(t, bus.Publish(ctx, "posts", state(token)))
	}

	require.Equal(t, uint64(4), (<-ch).Token)
	require.Equal(t, uint64(5), (<-ch).Token)
}

func TestBus_UnsubscribeOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	bus := New[int](0)
	ch, err := bus.Subscribe(ctx, "posts")
	require.NoError(t, err)
	require.Equal(t, 1, bus.Subscribers("posts"))

	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	require.Equal(t, 0, bus.Subscribers("posts"))
}

func TestBus_FeedsListing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := New[int](8)
	ch, err := bus.Subscribe(ctx, "numbers")
	require.NoError(t, err)

	fetch := func(_ context.Context, q service.ListQuery) (pagination.Page[int], error) {
		return pagination.Slice([]int{3, 2, 1}, q.PageRequest), nil
	}
	l := service.NewListing(service.ListingConfig{Name: "numbers", PageSize: 2}, fetch, func(n int) int64 { return int64(n) })
	l.PublishTo(bus)

	l.Load(ctx)
	l.Wait()

	loading := <-ch
	require.Equal(t, service.StatusLoading, loading.Status)
	loaded := <-ch
	require.Equal(t, service.StatusLoaded, loaded.Status)
	require.Equal(t, []int{3, 2}, loaded.Page.Items)
	require.Equal(t, int64(3), loaded.Page.TotalElements)
}
