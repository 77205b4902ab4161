package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/models"
)

func TestHTTPUserDirectory(t *testing.T) {
	userID := models.GenerateUUID()

	t.Run("found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/"+userID.String(), r.URL.Path)
			json.NewEncoder(w).Encode(domain.UserProfile{
				ID:    userID,
				Email: "alice@example.com",
				Role:  "CUSTOMER",
			})
		}))
		defer server.Close()

		profile, err := NewHTTPUserDirectory(server.URL, time.Second).GetProfile(context.Background(), userID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "alice@example.com", profile.Email)
	})

	t.Run("not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		profile, err := NewHTTPUserDirectory(server.URL, time.Second).GetProfile(context.Background(), userID)
		require.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewHTTPUserDirectory(server.URL, time.Second).GetProfile(context.Background(), userID)
		require.Error(t, err)

		var unavailable *domain.DependencyUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "user service", unavailable.Dependency)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := NewHTTPUserDirectory("http://127.0.0.1:1", time.Second).GetProfile(context.Background(), userID)
		require.Error(t, err)

		var unavailable *domain.DependencyUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})
}

func TestHTTPRestaurantDirectory(t *testing.T) {
	restaurantID := models.GenerateUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/restaurants/"+restaurantID.String(), r.URL.Path)
		json.NewEncoder(w).Encode(domain.RestaurantProfile{
			ID:         restaurantID,
			Name:       "Luigi's",
			OwnerEmail: "luigi@example.com",
			Active:     true,
		})
	}))
	defer server.Close()

	profile, err := NewHTTPRestaurantDirectory(server.URL, time.Second).GetProfile(context.Background(), restaurantID)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Luigi's", profile.Name)
	assert.Equal(t, "luigi@example.com", profile.OwnerEmail)
}

func TestHTTPPaymentGateway(t *testing.T) {
	chargeReq := &domain.ChargeRequest{
		OrderID:       models.GenerateUUID(),
		UserID:        models.GenerateUUID(),
		Amount:        models.NewMoney(1800, "usd"),
		PaymentMethod: "card",
	}

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/payments", r.URL.Path)

			var body chargeRequestBody
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, chargeReq.OrderID.String(), body.OrderID)
			assert.Equal(t, int64(1800), body.Amount)
			assert.Equal(t, "usd", body.Currency)
			assert.Equal(t, "card", body.PaymentMethod)

			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(chargeResponseBody{PaymentID: "pay-42", Status: "SUCCESS"})
		}))
		defer server.Close()

		result, err := NewHTTPPaymentGateway(server.URL, time.Second).Charge(context.Background(), chargeReq)
		require.NoError(t, err)
		assert.Equal(t, "pay-42", result.PaymentID)
		assert.Equal(t, domain.ChargeStatusSuccess, result.Status)
	})

	t.Run("declined is a normal result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(chargeResponseBody{Status: "FAILED", Message: "insufficient funds"})
		}))
		defer server.Close()

		result, err := NewHTTPPaymentGateway(server.URL, time.Second).Charge(context.Background(), chargeReq)
		require.NoError(t, err)
		assert.Equal(t, domain.ChargeStatusFailed, result.Status)
		assert.Equal(t, "insufficient funds", result.Message)
	})

	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewHTTPPaymentGateway(server.URL, time.Second).Charge(context.Background(), chargeReq)
		require.Error(t, err)

		var unavailable *domain.DependencyUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "payment service", unavailable.Dependency)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		gateway := NewHTTPPaymentGateway(server.URL, time.Second)
		for i := 0; i < 6; i++ {
			_, err := gateway.Charge(context.Background(), chargeReq)
			require.Error(t, err)
		}

		server.Close()
		_, err := gateway.Charge(context.Background(), chargeReq)
		require.Error(t, err)

		var unavailable *domain.DependencyUnavailableError
		assert.ErrorAs(t, err, &unavailable)
	})
}
