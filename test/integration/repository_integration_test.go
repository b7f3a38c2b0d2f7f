package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"digital-city/internal/model"
	"digital-city/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(id string) *model.Order {
	return &model.Order{
		ID: id,
		Items: []model.CartItem{
			{
				Product:       model.Product{ID: 1, Name: "هاتف ذكي", Price: 45000},
				Quantity:      1,
				SelectedColor: "أسود",
			},
			{
				Product:      model.Product{ID: 6, Name: "قميص قطني", Price: 3200},
				Quantity:     2,
				SelectedSize: "L",
			},
		},
		Total: 51400,
		ShippingAddress: model.ShippingAddress{
			FirstName: "أحمد",
			LastName:  "بن علي",
			Email:     "ahmed@example.com",
			Phone:     "0551234567",
			Address:   "شارع ديدوش مراد 12",
			City:      "الجزائر الوسطى",
			Wilaya:    "الجزائر",
		},
		PaymentMethod: model.PaymentCashOnDelivery,
		OrderNotes:    "الاتصال قبل التوصيل",
		OrderDate:     time.Now().UTC().Truncate(time.Millisecond),
		Status:        model.StatusPending,
	}
}

func TestPgOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	repo := repository.NewPgOrderRepository(testDB.Pool, zerolog.Nop())

	ctx := context.Background()

	t.Run("Append and GetByID round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		want := testOrder("ORDER-1700000000001")
		require.NoError(t, repo.Append(ctx, want))

		got, err := repo.GetByID(ctx, want.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Total, got.Total)
		assert.Equal(t, want.PaymentMethod, got.PaymentMethod)
		assert.Equal(t, want.OrderNotes, got.OrderNotes)
		assert.Equal(t, want.Status, got.Status)
		assert.Equal(t, want.ShippingAddress, got.ShippingAddress)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "هاتف ذكي", got.Items[0].Product.Name)
		assert.Equal(t, "أسود", got.Items[0].SelectedColor)
		assert.Equal(t, 2, got.Items[1].Quantity)
	})

	t.Run("Items come back in cart line order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		// Enough lines that any id-derived ordering would almost surely
		// differ from insertion order.
		order := &model.Order{
			ID:              "ORDER-1700000000003",
			Total:           0,
			ShippingAddress: testOrder("x").ShippingAddress,
			PaymentMethod:   model.PaymentCashOnDelivery,
			OrderDate:       time.Now().UTC(),
			Status:          model.StatusPending,
		}
		for i := 1; i <= 12; i++ {
			order.Items = append(order.Items, model.CartItem{
				Product:  model.Product{ID: i, Name: fmt.Sprintf("منتج %d", i), Price: float64(i * 100)},
				Quantity: 1,
			})
		}

		require.NoError(t, repo.Append(ctx, order))

		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Len(t, got.Items, 12)
		for i, item := range got.Items {
			assert.Equal(t, i+1, item.Product.ID)
		}
	})

	t.Run("GetByID returns nil for unknown order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		got, err := repo.GetByID(ctx, "ORDER-missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("List preserves append order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first := testOrder("ORDER-1700000000001")
		second := testOrder("ORDER-1700000000002")
		second.OrderDate = first.OrderDate.Add(time.Second)

		require.NoError(t, repo.Append(ctx, first))
		require.NoError(t, repo.Append(ctx, second))

		orders, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, first.ID, orders[0].ID)
		assert.Equal(t, second.ID, orders[1].ID)

		// Every order carries its own item lines, in line order.
		for _, order := range orders {
			require.Len(t, order.Items, 2)
			assert.Equal(t, "هاتف ذكي", order.Items[0].Product.Name)
			assert.Equal(t, "قميص قطني", order.Items[1].Product.Name)
		}
	})

	t.Run("Duplicate order id is rejected", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		order := testOrder("ORDER-1700000000001")
		require.NoError(t, repo.Append(ctx, order))
		assert.Error(t, repo.Append(ctx, order))

		// The failed append must not leave partial item rows behind.
		got, err := repo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Len(t, got.Items, 2)
	})
}
