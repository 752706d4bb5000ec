package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/benedict-erwin/shop-directory/pkg/redis"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate document")
)

// NewID returns a fresh document id
func NewID() string {
	return uuid.NewString()
}

// Collection stores documents of type T as JSON values.
//
// Layout, relative to the client's key prefix:
//
//	<name>:doc:<id>              JSON document
//	<name>:all                   set of every id
//	<name>:idx:<field>:<value>   set of ids sharing a field value
//	<name>:uniq:<field>:<value>  id owning a unique field value
type Collection[T any] struct {
	client redis.Client
	name   string
}

// NewCollection creates a collection named name on client
func NewCollection[T any](client redis.Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

// Name returns the collection name
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) docKey(id string) string {
	return c.name + ":doc:" + id
}

func (c *Collection[T]) allKey() string {
	return c.name + ":all"
}

func (c *Collection[T]) indexKey(field, value string) string {
	return c.name + ":idx:" + field + ":" + value
}

// uniqueKey folds case so "Alice" and "alice" collide
func (c *Collection[T]) uniqueKey(field, value string) string {
	return c.name + ":uniq:" + field + ":" + strings.ToLower(value)
}

// Insert stores a new document and adds it to the given indexes (field -> value)
func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T, indexes map[string]string) error {
	if err := c.client.SetJSON(ctx, c.docKey(id), doc, 0); err != nil {
		return fmt.Errorf("%s: insert %s: %w", c.name, id, err)
	}
	if err := c.client.SAdd(ctx, c.allKey(), id); err != nil {
		return fmt.Errorf("%s: index %s: %w", c.name, id, err)
	}
	for field, value := range indexes {
		if err := c.client.SAdd(ctx, c.indexKey(field, value), id); err != nil {
			return fmt.Errorf("%s: index %s by %s: %w", c.name, id, field, err)
		}
	}
	return nil
}

// Get loads a document by id
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	doc := new(T)
	if err := c.client.GetJSON(ctx, c.docKey(id), doc); err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: get %s: %w", c.name, id, err)
	}
	return doc, nil
}

// Replace overwrites an existing document
func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	exists, err := c.client.Exists(ctx, c.docKey(id))
	if err != nil {
		return fmt.Errorf("%s: replace %s: %w", c.name, id, err)
	}
	if !exists {
		return ErrNotFound
	}
	if err := c.client.SetJSON(ctx, c.docKey(id), doc, 0); err != nil {
		return fmt.Errorf("%s: replace %s: %w", c.name, id, err)
	}
	return nil
}

// Update loads, mutates and writes back a document. If mutate returns an
// error nothing is written and the error is returned as is.
func (c *Collection[T]) Update(ctx context.Context, id string, mutate func(doc *T) error) (*T, error) {
	doc, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := mutate(doc); err != nil {
		return nil, err
	}
	if err := c.client.SetJSON(ctx, c.docKey(id), doc, 0); err != nil {
		return nil, fmt.Errorf("%s: update %s: %w", c.name, id, err)
	}
	return doc, nil
}

// All returns every document in the collection, in no particular order
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	ids, err := c.client.SMembers(ctx, c.allKey())
	if err != nil {
		return nil, fmt.Errorf("%s: list: %w", c.name, err)
	}
	return c.load(ctx, ids)
}

// ByIndex returns the documents whose indexed field equals value
func (c *Collection[T]) ByIndex(ctx context.Context, field, value string) ([]T, error) {
	ids, err := c.client.SMembers(ctx, c.indexKey(field, value))
	if err != nil {
		return nil, fmt.Errorf("%s: list by %s: %w", c.name, field, err)
	}
	return c.load(ctx, ids)
}

func (c *Collection[T]) load(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}
	raws, err := c.client.GetMany(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("%s: load: %w", c.name, err)
	}

	docs := make([]T, 0, len(raws))
	for _, raw := range raws {
		var doc T
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", c.name, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Claim reserves a unique field value for id. ErrDuplicate if already taken.
func (c *Collection[T]) Claim(ctx context.Context, field, value, id string) error {
	ok, err := c.client.SetNX(ctx, c.uniqueKey(field, value), id)
	if err != nil {
		return fmt.Errorf("%s: claim %s: %w", c.name, field, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrDuplicate, c.name, field)
	}
	return nil
}

// Release frees unique field values claimed earlier
func (c *Collection[T]) Release(ctx context.Context, field string, values ...string) error {
	keys := make([]string, len(values))
	for i, v := range values {
		keys[i] = c.uniqueKey(field, v)
	}
	return c.client.Delete(ctx, keys...)
}

// Lookup resolves a unique field value to the owning document
func (c *Collection[T]) Lookup(ctx context.Context, field, value string) (*T, error) {
	id, err := c.client.Get(ctx, c.uniqueKey(field, value))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: lookup %s: %w", c.name, field, err)
	}
	return c.Get(ctx, id)
}
