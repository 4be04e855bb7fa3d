package repository

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/fitkitchen-backend/internal/errors"
	"github.com/unclebandit/fitkitchen-backend/internal/model"
)

func newTestRepo(t *testing.T) *CustomerFileRepository {
	t.Helper()
	return NewCustomerFileRepository(filepath.Join(t.TempDir(), "data", "customers.json"))
}

func TestEnsureInitializedCreatesEmptyDocument(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.EnsureInitialized())

	content, err := os.ReadFile(repo.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"customers": []}`, string(content))
}

func TestEnsureInitializedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.EnsureInitialized())

	doc := &model.CustomerDocument{Customers: []model.Customer{{ID: 1, Name: "Ana"}}}
	require.NoError(t, repo.Save(doc))

	require.NoError(t, repo.EnsureInitialized())

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Len(t, loaded.Customers, 1, "second EnsureInitialized must not reset the document")
}

func TestLoadMissingFileReturnsEmptyCollection(t *testing.T) {
	repo := newTestRepo(t)

	doc, err := repo.Load()
	require.NoError(t, err)
	assert.NotNil(t, doc.Customers)
	assert.Empty(t, doc.Customers)

	_, err = os.Stat(repo.Path)
	assert.NoError(t, err, "Load should create the backing file")
}

func TestLoadNullCustomers(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path), 0o755))
	require.NoError(t, os.WriteFile(repo.Path, []byte(`{"customers": null}`), 0o644))

	doc, err := repo.Load()
	require.NoError(t, err)
	assert.NotNil(t, doc.Customers)
	assert.Empty(t, doc.Customers)
}

func TestLoadCorruptFileReturnsReadError(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path), 0o755))
	require.NoError(t, os.WriteFile(repo.Path, []byte(`{"customers": [`), 0o644))

	doc, err := repo.Load()
	assert.Nil(t, doc)

	var readErr *appErrors.StorageReadError
	require.True(t, errors.As(err, &readErr), "expected StorageReadError, got %v", err)
	assert.Equal(t, repo.Path, readErr.Path)
}

func TestSaveAndLoadPreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	doc := &model.CustomerDocument{Customers: []model.Customer{
		{ID: 3, Name: "Caro", Age: 41, Height: 1.62, Weight: 70.5, HealthGoals: "run a 10k"},
		{ID: 1, Name: "Ana", Age: 30, Height: 1.7, Weight: 65.0, HealthGoals: "lose weight"},
		{ID: 2, Name: "Bo", Age: 25, Height: 1.85, Weight: 80.2, HealthGoals: "gain muscle"},
	}}

	require.NoError(t, repo.Save(doc))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, doc.Customers, loaded.Customers)

	_, err = os.Stat(repo.Path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not be left behind")
}

func TestSaveOfLoadKeepsContent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(repo.Path), 0o755))
	raw := `{"customers":[{"id":2,"name":"Bo","age":25,"height":1.85,"weight":80.2,"health_goals":"gain muscle"},` +
		`{"id":1,"name":"Ana","age":30,"height":1.7,"weight":65,"health_goals":"lose weight"}]}`
	require.NoError(t, os.WriteFile(repo.Path, []byte(raw), 0o644))

	first, err := repo.Load()
	require.NoError(t, err)
	require.NoError(t, repo.Save(first))

	content, err := os.ReadFile(repo.Path)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(content))
}

func TestSaveWriteFailure(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.EnsureInitialized())

	// a directory in place of the temp file makes the write fail
	require.NoError(t, os.Mkdir(repo.Path+".tmp", 0o755))

	err := repo.Save(&model.CustomerDocument{Customers: []model.Customer{{ID: 1, Name: "Ana"}}})

	var writeErr *appErrors.StorageWriteError
	require.True(t, errors.As(err, &writeErr), "expected StorageWriteError, got %v", err)

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Customers, "failed save must leave the previous document untouched")
}

func TestNextID(t *testing.T) {
	tests := []struct {
		desc      string
		customers []model.Customer
		want      int
	}{
		{"empty collection", nil, 1},
		{"single record", []model.Customer{{ID: 1}}, 2},
		{"gaps are not filled", []model.Customer{{ID: 1}, {ID: 3}, {ID: 5}}, 6},
		{"unordered ids", []model.Customer{{ID: 7}, {ID: 2}}, 8},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NextID(tc.customers), tc.desc)
	}
}
