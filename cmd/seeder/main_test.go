package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/fitkitchen-backend/internal/model"
	"github.com/unclebandit/fitkitchen-backend/internal/repository"
	"github.com/unclebandit/fitkitchen-backend/internal/service"
)

func newSeedService(t *testing.T) *service.CustomerService {
	t.Helper()
	store := repository.NewCustomerFileRepository(filepath.Join(t.TempDir(), "customers.json"))
	return service.NewCustomerService(store, nil, "")
}

func TestSeedCustomers(t *testing.T) {
	svc := newSeedService(t)

	seeded, err := seedCustomers(svc, []model.CustomerPayload{
		{Name: "Ana", Age: 30, Height: 1.7, Weight: 65, HealthGoals: "lose weight"},
		{Name: "Bo", Age: 25, Height: 1.85, Weight: 80.2, HealthGoals: "gain muscle"},
	})
	require.NoError(t, err)
	require.Len(t, seeded, 2)
	assert.Equal(t, 1, seeded[0].ID)
	assert.Equal(t, 2, seeded[1].ID)
}

func TestSeedCustomersRejectsEmptyName(t *testing.T) {
	svc := newSeedService(t)

	_, err := seedCustomers(svc, []model.CustomerPayload{
		{Name: "Ana", Age: 30, Height: 1.7, Weight: 65, HealthGoals: "lose weight"},
		{Name: "", Age: 25, Height: 1.85, Weight: 80.2, HealthGoals: "gain muscle"},
	})
	assert.ErrorIs(t, err, model.ErrEmptyName)

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is stored when any seed entry is invalid")
}
