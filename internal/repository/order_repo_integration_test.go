//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopcheck/internal/models"
	"github.com/adyen/shopcheck/internal/repository/testutil"
)

func newTestOrder(reference string) *models.Order {
	return &models.Order{
		ID:            uuid.New().String(),
		Reference:     reference,
		Amount:        900,
		Currency:      models.DefaultCurrency,
		Status:        models.OrderStatusPending,
		CustomerEmail: "test@example.com",
		CustomerName:  "Test User",
		Items: []models.OrderItem{
			{ProductID: 1, Name: "Blue Top", Price: 500, Quantity: 1},
			{ProductID: 2, Name: "Men Tshirt", Price: 400, Quantity: 1},
		},
	}
}

func TestOrderRepository_CreateOrder_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	// GIVEN
	order := newTestOrder("ORDER-TEST-001")

	// WHEN
	err := repo.CreateOrder(order)

	// THEN
	require.NoError(t, err)
	assert.False(t, order.CreatedAt.IsZero())
	assert.False(t, order.UpdatedAt.IsZero())

	retrieved, err := repo.GetOrderByReference(order.Reference)
	require.NoError(t, err)
	assert.Equal(t, order.ID, retrieved.ID)
	assert.Equal(t, order.Amount, retrieved.Amount)
	assert.Equal(t, order.Currency, retrieved.Currency)
	assert.Equal(t, order.Status, retrieved.Status)
	assert.Equal(t, order.Items, retrieved.Items)
	assert.Empty(t, retrieved.CardLast4)
}

func TestOrderRepository_CreateOrder_DuplicateReference_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	require.NoError(t, repo.CreateOrder(newTestOrder("ORDER-DUP-001")))

	err := repo.CreateOrder(newTestOrder("ORDER-DUP-001"))
	assert.Error(t, err)
}

func TestOrderRepository_GetOrderByReference_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	_, err := repo.GetOrderByReference("ORDER-NONEXISTENT")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderRepository_UpdateOrderStatus_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)
	order := newTestOrder("ORDER-UPDATE-001")
	require.NoError(t, repo.CreateOrder(order))

	// Small delay to ensure timestamp changes
	time.Sleep(10 * time.Millisecond)

	tests := []struct {
		name      string
		reference string
		status    models.OrderStatus
		cardLast4 string
		wantErr   error
	}{
		{
			name:      "update to placed",
			reference: "ORDER-UPDATE-001",
			status:    models.OrderStatusPlaced,
			cardLast4: "1111",
		},
		{
			name:      "update non-existent order",
			reference: "ORDER-NONEXISTENT",
			status:    models.OrderStatusPlaced,
			cardLast4: "1111",
			wantErr:   ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateOrderStatus(tt.reference, string(tt.status), tt.cardLast4)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			retrieved, err := repo.GetOrderByReference(tt.reference)
			require.NoError(t, err)
			assert.Equal(t, tt.status, retrieved.Status)
			assert.Equal(t, tt.cardLast4, retrieved.CardLast4)
			assert.True(t, retrieved.UpdatedAt.After(retrieved.CreatedAt), "UpdatedAt should be after CreatedAt")
		})
	}
}

func TestOrderRepository_ConcurrentCreates_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewOrderRepositoryWithDB(testDB.DB)

	const numOrders = 10
	errChan := make(chan error, numOrders)

	for i := 0; i < numOrders; i++ {
		go func() {
			errChan <- repo.CreateOrder(newTestOrder(uuid.New().String()))
		}()
	}

	for i := 0; i < numOrders; i++ {
		assert.NoError(t, <-errChan)
	}
}

func TestOrderRepository_SchemaIsolation_Integration(t *testing.T) {
	testDB1 := testutil.SetupTestDatabase(t)
	defer testDB1.Teardown(t)

	testDB2 := testutil.SetupTestDatabase(t)
	defer testDB2.Teardown(t)

	repo1 := NewOrderRepositoryWithDB(testDB1.DB)
	repo2 := NewOrderRepositoryWithDB(testDB2.DB)

	order := newTestOrder("ORDER-ISO-001")
	require.NoError(t, repo1.CreateOrder(order))

	_, err := repo1.GetOrderByReference(order.Reference)
	assert.NoError(t, err)

	_, err = repo2.GetOrderByReference(order.Reference)
	assert.ErrorIs(t, err, ErrOrderNotFound, "order should not exist in a different schema")
}
