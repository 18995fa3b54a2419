package redisstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bookshelf/cmd/api/facade"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bookshelf:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store opens collections kept as one redis hash each, field = document id.
type Store struct {
	opts *redis.Options
}

func NewStore(cfg Config) (*Store, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, errors.New("redis addr required")
	}
	return &Store{opts: &redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}}, nil
}

/* Connects a new client for the collection. Closing the collection closes that client. */
func (s *Store) Open(ctx context.Context, name string) (facade.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("opening collection: %w", facade.ErrUnknownCollection)
	}
	client := redis.NewClient(s.opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis, pinging: %w", err)
	}
	return &Collection{client: client, key: keyPrefix + name}, nil
}

// putIfExists overwrites a hash field only when it is already there.
var putIfExists = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 1 then
	redis.call("HSET", KEYS[1], ARGV[1], ARGV[2])
	return 1
end
return 0
`)

type Collection struct {
	client *redis.Client
	key    string
}

func (c *Collection) Get(ctx context.Context) ([]facade.Document, error) {
	values, err := c.client.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("listing documents from redis: %w", wrapClosed(err))
	}
	docs := make([]facade.Document, 0, len(values))
	for id, data := range values {
		docs = append(docs, facade.Document{ID: id, Data: []byte(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

func (c *Collection) GetByID(ctx context.Context, id string) (facade.Document, error) {
	data, err := c.client.HGet(ctx, c.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", facade.ErrNotFound)
	}
	if err != nil {
		return facade.Document{}, fmt.Errorf("searching by ID: %w", wrapClosed(err))
	}
	return facade.Document{ID: id, Data: data}, nil
}

func (c *Collection) Post(ctx context.Context, doc facade.Document) (facade.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	ok, err := c.client.HSetNX(ctx, c.key, doc.ID, doc.Data).Result()
	if err != nil {
		return facade.Document{}, fmt.Errorf("storing document on redis: %w", wrapClosed(err))
	}
	if !ok {
		return facade.Document{}, fmt.Errorf("storing document on redis: %w", facade.ErrAlreadyExists)
	}
	return doc, nil
}

func (c *Collection) Put(ctx context.Context, doc facade.Document) (facade.Document, error) {
	updated, err := putIfExists.Run(ctx, c.client, []string{c.key}, doc.ID, doc.Data).Int()
	if err != nil {
		return facade.Document{}, fmt.Errorf("updating document on redis: %w", wrapClosed(err))
	}
	if updated == 0 {
		return facade.Document{}, fmt.Errorf("updating document on redis: %w", facade.ErrNotFound)
	}
	return doc, nil
}

func (c *Collection) Delete(ctx context.Context, id string) error {
	removed, err := c.client.HDel(ctx, c.key, id).Result()
	if err != nil {
		return fmt.Errorf("deleting document from redis: %w", wrapClosed(err))
	}
	if removed == 0 {
		return fmt.Errorf("deleting document from redis: %w", facade.ErrNotFound)
	}
	return nil
}

func (c *Collection) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("closing redis client: %w", wrapClosed(err))
	}
	return nil
}

func wrapClosed(err error) error {
	if errors.Is(err, redis.ErrClosed) {
		return fmt.Errorf("%w: %w", facade.ErrClosed, err)
	}
	return err
}
