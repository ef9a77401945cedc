package customer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

type mockStore struct {
	inserted []*model.Customer
	err      error
}

func (m *mockStore) Insert(_ context.Context, c *model.Customer) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.inserted = append(m.inserted, c)
	return "665f1c2e8a1b2c3d4e5f6789", nil
}

func newTestService(t *testing.T, store Store) *Service {
	t.Helper()
	svc, err := NewService(store, "MA")
	require.NoError(t, err)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSaveStoresCustomer(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store)

	res, err := svc.Save(context.Background(), SaveRequest{
		FirstName:          " Imad ",
		LastName:           "Dabli",
		Age:                "28",
		Phone:              "0612345678",
		InterestedProducts: []string{"Nike Running 1"},
		ConversationHistory: []model.Turn{
			{Role: "user", Content: "I want running shoes"},
		},
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, "665f1c2e8a1b2c3d4e5f6789", res.CustomerID)
	require.Equal(t, "Customer information saved successfully!", res.Message)

	require.Len(t, store.inserted, 1)
	doc := store.inserted[0]
	require.Equal(t, "Imad", doc.FirstName)
	require.Equal(t, "+212612345678", doc.Phone)
	require.NotNil(t, doc.Age)
	require.Equal(t, 28, *doc.Age)
	require.Equal(t, time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), doc.CreatedAt)
}

func TestSaveRequiresFirstName(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store)

	for _, name := range []string{"", "   "} {
		_, err := svc.Save(context.Background(), SaveRequest{FirstName: name, Phone: "0612345678"})
		require.ErrorIs(t, err, errx.ErrValidation)
		require.Contains(t, err.Error(), "first_name is required")
	}
	require.Empty(t, store.inserted)
}

func TestSaveOmitsAbsentOptionalFields(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store)

	_, err := svc.Save(context.Background(), SaveRequest{FirstName: "Sara"})
	require.NoError(t, err)

	raw, err := bson.Marshal(store.inserted[0])
	require.NoError(t, err)
	doc := bson.Raw(raw)

	for _, key := range []string{"last_name", "age", "phone"} {
		_, err := doc.LookupErr(key)
		require.Error(t, err, "key %s should be absent", key)
	}
	products, err := doc.LookupErr("interested_products")
	require.NoError(t, err)
	require.Equal(t, bson.TypeArray, products.Type)
}

func TestSaveRejectsBadAge(t *testing.T) {
	store := &mockStore{}
	svc := newTestService(t, store)

	_, err := svc.Save(context.Background(), SaveRequest{FirstName: "Sara", Age: "old"})
	require.ErrorIs(t, err, errx.ErrInvalidArgument)

	_, err = svc.Save(context.Background(), SaveRequest{FirstName: "Sara", Age: "300"})
	require.ErrorIs(t, err, errx.ErrValidation)
	require.Empty(t, store.inserted)
}

func TestSaveStoreFailure(t *testing.T) {
	svc := newTestService(t, &mockStore{err: errors.New("document failed validation")})

	_, err := svc.Save(context.Background(), SaveRequest{FirstName: "Sara"})
	require.ErrorIs(t, err, errx.ErrUpstreamUnavailable)
	require.Equal(t, "Error saving customer: document failed validation", Failed(err).Error)
}
