package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bikeshop/orders-service/internal/app/orders/entity"
	"bikeshop/orders-service/internal/app/orders/infrastructure"

	"github.com/google/uuid"
)

// ConfiguratorClient клиент configurator-service
// Корзина читается токеном пользователя, конфигуратор публичный
type ConfiguratorClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewConfiguratorClient(baseURL string, timeout time.Duration) *ConfiguratorClient {
	return &ConfiguratorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetCart GET /cart от имени пользователя
func (c *ConfiguratorClient) GetCart(ctx context.Context, authToken string) (*entity.Cart, error) {
	var cart entity.Cart
	if err := c.do(ctx, http.MethodGet, "/cart", authToken, &cart); err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &cart, nil
}

// ConfigureProduct GET /products/:id/with-options: актуальная цена с разбивкой, валидность и наличие опций
func (c *ConfiguratorClient) ConfigureProduct(ctx context.Context, productID uuid.UUID, optionIDs []uuid.UUID) (*entity.ConfiguredProduct, error) {
	path := fmt.Sprintf("/products/%s/with-options?%s", productID, optionQuery(optionIDs))

	var product entity.ConfiguredProduct
	if err := c.do(ctx, http.MethodGet, path, "", &product); err != nil {
		return nil, fmt.Errorf("failed to configure product %s: %w", productID, err)
	}
	return &product, nil
}

// ClearCart DELETE /cart от имени пользователя
func (c *ConfiguratorClient) ClearCart(ctx context.Context, authToken string) error {
	if err := c.do(ctx, http.MethodDelete, "/cart", authToken, nil); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (c *ConfiguratorClient) do(ctx context.Context, method, path, authToken string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return infrastructure.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return infrastructure.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func optionQuery(optionIDs []uuid.UUID) string {
	query := url.Values{}
	for _, id := range optionIDs {
		query.Add("optionIds", id.String())
	}
	return query.Encode()
}
