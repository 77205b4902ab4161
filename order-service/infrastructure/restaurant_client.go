package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/models"
)

var _ domain.RestaurantDirectory = (*HTTPRestaurantDirectory)(nil)

// HTTPRestaurantDirectory resolves restaurant profiles from the restaurant
// service REST API
type HTTPRestaurantDirectory struct {
	client  *http.Client
	baseURL string
}

// NewHTTPRestaurantDirectory creates a restaurant directory client with a
// bounded timeout
func NewHTTPRestaurantDirectory(baseURL string, timeout time.Duration) *HTTPRestaurantDirectory {
	return &HTTPRestaurantDirectory{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetProfile fetches a restaurant profile by id, nil when the restaurant
// does not exist
func (d *HTTPRestaurantDirectory) GetProfile(ctx context.Context, restaurantID models.ID) (*domain.RestaurantProfile, error) {
	url := fmt.Sprintf("%s/api/restaurants/%s", d.baseURL, restaurantID)

	var profile domain.RestaurantProfile
	found, err := getJSON(ctx, d.client, url, &profile)
	if err != nil {
		return nil, &domain.DependencyUnavailableError{Dependency: "restaurant service", Err: err}
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}
