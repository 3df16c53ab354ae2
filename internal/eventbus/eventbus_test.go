package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type ping struct{ n int }

type pong struct{}

func TestPublishDispatchesByType(t *testing.T) {
	b := New()
	var got []int
	Subscribe(b, func(_ context.Context, e ping) { got = append(got, e.n) })
	Subscribe(b, func(_ context.Context, e ping) { got = append(got, e.n*10) })
	Subscribe(b, func(_ context.Context, _ pong) { t.Fatal("pong handler called for ping") })

	Publish(context.Background(), b, ping{n: 1})
	require.Equal(t, []int{1, 10}, got)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	var calls int
	unsubscribe := Subscribe(b, func(context.Context, ping) { calls++ })
	other := Subscribe(b, func(context.Context, ping) { calls += 100 })

	unsubscribe()
	unsubscribe()
	Publish(context.Background(), b, ping{})
	require.Equal(t, 100, calls)

	other()
	Publish(context.Background(), b, ping{})
	require.Equal(t, 100, calls)
}

func TestNilBus(t *testing.T) {
	Publish(context.Background(), nil, ping{})
	Subscribe(nil, func(context.Context, ping) {})()
}

func TestGlobal(t *testing.T) {
	defer Use(nil)

	var calls int
	PublishGlobal(context.Background(), ping{})
	SubscribeGlobal(func(context.Context, ping) { calls++ })
	require.Zero(t, calls)

	Use(New())
	defer SubscribeGlobal(func(context.Context, ping) { calls++ })()
	PublishGlobal(context.Background(), ping{})
	require.Equal(t, 1, calls)
}
