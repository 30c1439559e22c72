package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bikeshop/orders-service/internal/app/orders/infrastructure"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ConfiguratorClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewConfiguratorClient(server.URL+"/", 2*time.Second)
}

func TestGetCart_SendsBearerToken(t *testing.T) {
	itemID, productID, optionID := uuid.New(), uuid.New(), uuid.New()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + uuid.NewString() + `","items":[{"id":"` + itemID.String() +
			`","productId":"` + productID.String() + `","product":{"id":"` + productID.String() + `","name":"Trail Bike","price":"120"},` +
			`"quantity":2,"unitPrice":149.5,"totalPrice":299,"itemOptions":[{"id":"` + uuid.NewString() + `","optionId":"` + optionID.String() +
			`","option":{"id":"` + optionID.String() + `","displayName":"Disc brakes","price":"29.5"}}]}],"totalPrice":299}`))
	})

	cart, err := client.GetCart(context.Background(), "user-token")

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, itemID, cart.Items[0].ID)
	item := cart.Items[0]
	assert.True(t, decimal.RequireFromString("149.5").Equal(item.UnitPrice))
	assert.True(t, decimal.NewFromInt(299).Equal(cart.TotalPrice))
	assert.Equal(t, "Trail Bike", item.Product.Name)
	assert.Equal(t, []uuid.UUID{optionID}, item.OptionIDs())
	assert.True(t, decimal.RequireFromString("29.5").Equal(item.ItemOptions[0].Option.Price))
}

func TestConfigureProduct_EncodesOptionIDs(t *testing.T) {
	productID := uuid.New()
	optionA, optionB := uuid.New(), uuid.New()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/"+productID.String()+"/with-options", r.URL.Path)
		assert.Equal(t, []string{optionA.String(), optionB.String()}, r.URL.Query()["optionIds"])
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":"` + productID.String() + `","name":"Road Bike","price":"420.00","isValidConfiguration":true,` +
			`"priceLines":[{"optionId":"` + optionA.String() + `","basePrice":"30","price":"20"}],` +
			`"optionGroups":[{"id":"` + uuid.NewString() + `","options":[{"id":"` + optionA.String() + `","selected":true,"inStock":true}]}]}`))
	})

	product, err := client.ConfigureProduct(context.Background(), productID, []uuid.UUID{optionA, optionB})

	require.NoError(t, err)
	assert.Equal(t, "Road Bike", product.Name)
	assert.True(t, product.IsValidConfiguration)
	assert.True(t, decimal.NewFromInt(420).Equal(product.Price))
	require.Len(t, product.SelectedOptions(), 1)
	assert.Equal(t, optionA, product.SelectedOptions()[0].ID)
	assert.True(t, decimal.NewFromInt(20).Equal(product.LinePrice(optionA)))
	assert.True(t, product.LinePrice(optionB).IsZero())
}

func TestConfigureProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ConfigureProduct(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, infrastructure.ErrNotFound)
}

func TestGetCart_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.GetCart(context.Background(), "revoked")

	assert.ErrorIs(t, err, infrastructure.ErrUnauthorized)
}

func TestClearCart_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	})

	err := client.ClearCart(context.Background(), "token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestClearCart_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.ClearCart(context.Background(), "token"))
}
