package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

func sampleState() *model.SessionState {
	s := model.NewSessionState("ignored")
	s.History = append(s.History,
		schema.SystemMessage("persona"),
		schema.UserMessage("running shoes under 800"),
		&schema.Message{
			Role: schema.Assistant,
			ToolCalls: []schema.ToolCall{{
				ID:       "call_1",
				Function: schema.FunctionCall{Name: "search_shoes", Arguments: `{"category":"running","price_max":800}`},
			}},
		},
		schema.ToolMessage(`{"found_shoes":1}`, "call_1", schema.WithToolName("search_shoes")),
		schema.AssistantMessage("Found some great options!", nil),
	)
	s.InterestScore = 2
	s.Turns = 3
	s.AddInterestedProduct("Nike Running 1")
	s.ContactStep = model.ContactStepPhone
	s.ContactInfo.FirstName = "Imad"
	return s
}

func newRedisStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisSessionStore(rdb, 30*time.Minute), mr
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	fresh, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", fresh.SessionID)
	require.Empty(t, fresh.History)

	require.NoError(t, store.Save(ctx, "abc", sampleState()))
	require.Equal(t, 30*time.Minute, mr.TTL("session:abc:state"))

	got, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, "abc", got.SessionID)
	require.Len(t, got.History, 5)
	require.Equal(t, "call_1", got.History[2].ToolCalls[0].ID)
	require.Equal(t, "search_shoes", got.History[2].ToolCalls[0].Function.Name)
	require.Equal(t, "call_1", got.History[3].ToolCallID)
	require.Equal(t, schema.Tool, got.History[3].Role)
	require.Equal(t, []string{"Nike Running 1"}, got.InterestedProducts)
	require.Equal(t, model.ContactStepPhone, got.ContactStep)
	require.Equal(t, "Imad", got.ContactInfo.FirstName)
	require.False(t, got.UpdatedAt.IsZero())
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", sampleState()))
	mr.FastForward(31 * time.Minute)

	got, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	require.Empty(t, got.History)
	require.Zero(t, got.Turns)
}

func TestRedisSessionStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", sampleState()))
	require.NoError(t, store.Delete(ctx, "abc"))
	require.NoError(t, store.Delete(ctx, "never-existed"))

	got, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	require.Empty(t, got.History)
}

func TestRedisSessionStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	_, err := store.GetOrCreate(context.Background(), "abc")
	require.ErrorIs(t, err, errx.ErrUpstreamUnavailable)
}

func TestMemorySessionStoreIsolatesCallers(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", sampleState()))

	a, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	a.History = append(a.History, schema.UserMessage("not saved"))
	a.InterestScore = 99

	b, err := store.GetOrCreate(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, b.History, 5)
	require.Equal(t, 2, b.InterestScore)

	require.Equal(t, 1, store.Len())
	require.NoError(t, store.Delete(ctx, "abc"))
	require.Zero(t, store.Len())
}
