package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/resource-directory/pkg/core/domain"
)

func newMemRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbURL := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	repo, err := NewSQLiteRepository(dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"file:db.sqlite", "sqlite"},
		{"file:memdb1?mode=memory&cache=shared", "sqlite"},
		{"libsql://resources-demo.turso.io?authToken=x", "libsql"},
		{"wss://resources-demo.turso.io", "libsql"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DriverName(tt.url), tt.url)
	}
}

func TestLoad_BeforeSave(t *testing.T) {
	repo := newMemRepo(t)
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestSaveLoad_Upserts(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(t)

	first := domain.Collection{
		Resources: []domain.Resource{{ID: 1, Name: "Doc1", CreatedAt: "2024-05-01"}},
		NextID:    2,
	}
	require.NoError(t, repo.Save(ctx, first))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := domain.Collection{
		Resources: []domain.Resource{
			{ID: 1, Name: "Doc1", SortOrder: 1, CreatedAt: "2024-05-01"},
			{ID: 2, Name: "资源", Tags: "a, b", SortOrder: 0, CreatedAt: "2024-05-02"},
		},
		NextID: 3,
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	var rows int
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM collections`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSave_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(t)
	require.NoError(t, repo.Save(ctx, domain.Collection{NextID: 1}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.NewCollection(), got)
}

func TestSave_StoresMarkupUnescaped(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo(t)
	c := domain.Collection{
		Resources: []domain.Resource{{ID: 1, Name: "Tom & Jerry", Description: "<i>cartoon</i>", CreatedAt: "2024-05-01"}},
		NextID:    2,
	}
	require.NoError(t, repo.Save(ctx, c))

	var doc string
	require.NoError(t, repo.db.QueryRowContext(ctx, `SELECT document FROM collections WHERE name = ?`, documentName).Scan(&doc))
	assert.Contains(t, doc, "Tom & Jerry")
	assert.Contains(t, doc, "<i>cartoon</i>")

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}
