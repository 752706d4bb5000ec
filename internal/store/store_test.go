package store

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/benedict-erwin/shop-directory/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Text  string `json:"text"`
}

func newTestCollection(t *testing.T) (*Collection[note], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "isc:")
	t.Cleanup(func() { _ = client.Close() })
	return NewCollection[note](client, "notes"), mr
}

func TestCollection_InsertGet(t *testing.T) {
	coll, mr := newTestCollection(t)
	ctx := context.Background()

	n := note{ID: NewID(), Owner: "o1", Text: "hello"}
	require.NoError(t, coll.Insert(ctx, n.ID, &n, map[string]string{FieldOwner: "o1"}))

	assert.True(t, mr.Exists("isc:notes:doc:"+n.ID))
	members, err := mr.SMembers("isc:notes:idx:owner:o1")
	require.NoError(t, err)
	assert.Equal(t, []string{n.ID}, members)

	got, err := coll.Get(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n, *got)

	_, err = coll.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollection_ListAndIndex(t *testing.T) {
	coll, _ := newTestCollection(t)
	ctx := context.Background()

	for _, n := range []note{{ID: "a", Owner: "o1"}, {ID: "b", Owner: "o2"}, {ID: "c", Owner: "o1"}} {
		n := n
		require.NoError(t, coll.Insert(ctx, n.ID, &n, map[string]string{FieldOwner: n.Owner}))
	}

	all, err := coll.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	owned, err := coll.ByIndex(ctx, FieldOwner, "o1")
	require.NoError(t, err)
	ids := []string{owned[0].ID, owned[1].ID}
	sort.Strings(ids)
	assert.Equal(t, []string{"a", "c"}, ids)

	none, err := coll.ByIndex(ctx, FieldOwner, "o9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCollection_UpdateReplace(t *testing.T) {
	coll, _ := newTestCollection(t)
	ctx := context.Background()

	n := note{ID: "a", Text: "v1"}
	require.NoError(t, coll.Insert(ctx, n.ID, &n, nil))

	updated, err := coll.Update(ctx, "a", func(doc *note) error {
		doc.Text = "v2"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Text)

	abort := errors.New("abort")
	_, err = coll.Update(ctx, "a", func(doc *note) error {
		doc.Text = "v3"
		return abort
	})
	assert.ErrorIs(t, err, abort)
	got, err := coll.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Text)

	_, err = coll.Update(ctx, "missing", func(*note) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, coll.Replace(ctx, "missing", &n), ErrNotFound)
	n.Text = "v4"
	require.NoError(t, coll.Replace(ctx, "a", &n))
	got, err = coll.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "v4", got.Text)
}

func TestCollection_ClaimLookupRelease(t *testing.T) {
	coll, _ := newTestCollection(t)
	ctx := context.Background()

	n := note{ID: "a"}
	require.NoError(t, coll.Insert(ctx, n.ID, &n, nil))
	require.NoError(t, coll.Claim(ctx, FieldEmail, "Alice@Example.com", "a"))

	err := coll.Claim(ctx, FieldEmail, "alice@example.com", "b")
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := coll.Lookup(ctx, FieldEmail, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	_, err = coll.Lookup(ctx, FieldEmail, "bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, coll.Release(ctx, FieldEmail, "alice@example.com"))
	require.NoError(t, coll.Claim(ctx, FieldEmail, "alice@example.com", "b"))
}

func TestCollection_StoreErrorsPropagate(t *testing.T) {
	coll, mr := newTestCollection(t)
	ctx := context.Background()

	mr.SetError("LOADING")
	_, err := coll.Get(ctx, "a")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = coll.All(ctx)
	assert.Error(t, err)
}

func TestStore_New(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromUniversal(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}), "")
	s := New(client)

	assert.Equal(t, CollUsers, s.Users.Name())
	assert.Equal(t, CollOwners, s.Owners.Name())
	assert.Equal(t, CollShops, s.Shops.Name())
	assert.Equal(t, CollDeals, s.Deals.Name())
	assert.Equal(t, CollGateways, s.Gateways.Name())
	assert.Equal(t, CollBeacons, s.Beacons.Name())
	assert.NoError(t, s.Ping())
}
