package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bikeshop/configurator-service/internal/app/configurator/entity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key"

func init() {
	gin.SetMode(gin.TestMode)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestOption(groupID uuid.UUID, name, price string) entity.Option {
	id := uuid.New()
	return entity.Option{
		ID:            id,
		Name:          name,
		DisplayName:   name,
		BasePrice:     money(price),
		IsActive:      true,
		InStock:       true,
		OptionGroupID: groupID,
		InventoryItem: &entity.InventoryItem{ID: uuid.New(), Quantity: 5, ProductOptionID: id},
	}
}

// newTestBike товар (база 1000) с рамой (200) и колесами (150)
func newTestBike() *entity.Product {
	productID := uuid.New()
	frameID := uuid.New()
	wheelsID := uuid.New()
	return &entity.Product{
		ID:        productID,
		Name:      "Trail bike",
		BasePrice: money("1000"),
		IsActive:  true,
		OptionGroups: []entity.OptionGroup{
			{ID: frameID, Name: "frame", ProductID: productID, Options: []entity.Option{newTestOption(frameID, "Full suspension", "200")}},
			{ID: wheelsID, Name: "wheels", ProductID: productID, Options: []entity.Option{newTestOption(wheelsID, "Mountain wheels", "150")}},
		},
	}
}

func frameOption(p *entity.Product) entity.Option { return p.OptionGroups[0].Options[0] }
func wheelOption(p *entity.Product) entity.Option { return p.OptionGroups[1].Options[0] }

func signToken(t *testing.T, userID string, admin bool, expiresIn time.Duration) string {
	t.Helper()
	claims := &JWTClaims{
		UserID: userID,
		Email:  "rider@example.com",
		Admin:  admin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func performRequest(router http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
