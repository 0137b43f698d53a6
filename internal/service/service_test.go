package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/fashion_api/internal/db"
	"github.com/Skotchmaster/fashion_api/internal/hash"
	"github.com/Skotchmaster/fashion_api/internal/mykafka"
	"github.com/Skotchmaster/fashion_api/internal/repo"
	"github.com/Skotchmaster/fashion_api/internal/tokens"
)

type recorder struct {
	mu     sync.Mutex
	events []mykafka.Event
}

func (r *recorder) PublishEvent(_ context.Context, _ string, ev mykafka.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	repo    *repo.GormRepo
	codec   *tokens.Codec
	events  *recorder
	auth    *AuthService
	catalog *CatalogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash.Cost = bcrypt.MinCost
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	codec := tokens.NewCodec([]byte("test-secret"), time.Hour)
	ev := &recorder{}

	return &fixture{
		repo:    r,
		codec:   codec,
		events:  ev,
		auth:    &AuthService{Repo: r, Tokens: codec, Events: ev},
		catalog: &CatalogService{Repo: r, Events: ev},
	}
}
