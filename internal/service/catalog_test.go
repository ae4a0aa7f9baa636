package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okravets/storefront/internal/transport"
)

type recordingEvents struct {
	mu     sync.Mutex
	topics []string
	events []map[string]any
}

func (e *recordingEvents) PublishEvent(_ context.Context, topic, _ string, event any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.topics = append(e.topics, topic)
	e.events = append(e.events, event.(map[string]any))
	return nil
}

func TestCatalog_GetProductCountsViews(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &CatalogService{Repo: r}

	product := seedProduct(t, r, "keyboard", "100.00")

	for i := 0; i < 3; i++ {
		_, err := s.GetProduct(ctx, product.ID)
		require.NoError(t, err)
	}

	got, err := s.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Views)
}

func TestCatalog_GetProductNotFound(t *testing.T) {
	t.Parallel()

	r := initTestDB(t)
	s := &CatalogService{Repo: r}

	_, err := s.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_CreatePatchDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	events := &recordingEvents{}
	s := &CatalogService{Repo: r, Events: events}

	_, err := s.CreateProduct(ctx, transport.CreateProductRequest{Slug: "x"})
	require.ErrorIs(t, err, ErrValidation)

	prod, err := s.CreateProduct(ctx, transport.CreateProductRequest{
		Name:        "keyboard",
		Slug:        "keyboard",
		Description: "mechanical",
		Price:       dec("100.00"),
		IsAvailable: true,
	})
	require.NoError(t, err)

	name := "keyboard pro"
	price := dec("120.00")
	patched, err := s.PatchProduct(ctx, transport.PatchProductRequest{Name: &name, Price: &price}, prod.ID)
	require.NoError(t, err)
	assert.Equal(t, "keyboard pro", patched.Name)
	assert.Equal(t, "120", patched.Price.String())
	assert.Equal(t, "keyboard", patched.Slug, "untouched fields survive a patch")

	require.NoError(t, s.DeleteProduct(ctx, prod.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, prod.ID), ErrNotFound)

	require.Len(t, events.events, 3)
	assert.Equal(t, "product_created", events.events[0]["type"])
	assert.Equal(t, "product_updated", events.events[1]["type"])
	assert.Equal(t, "product_deleted", events.events[2]["type"])
	assert.Equal(t, []string{"product_events", "product_events", "product_events"}, events.topics)
}

func TestCatalog_ListProducts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := initTestDB(t)
	s := &CatalogService{Repo: r}

	for _, name := range []string{"a", "b", "c"} {
		seedProduct(t, r, name, "10.00")
	}

	total, items, err := s.GetProducts(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	_, rest, err := s.GetProducts(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
