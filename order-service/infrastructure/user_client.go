package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/models"
)

var _ domain.UserDirectory = (*HTTPUserDirectory)(nil)

// HTTPUserDirectory resolves user profiles from the user service REST API
type HTTPUserDirectory struct {
	client  *http.Client
	baseURL string
}

// NewHTTPUserDirectory creates a user directory client with a bounded timeout
func NewHTTPUserDirectory(baseURL string, timeout time.Duration) *HTTPUserDirectory {
	return &HTTPUserDirectory{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetProfile fetches a user profile by id, nil when the user does not exist
func (d *HTTPUserDirectory) GetProfile(ctx context.Context, userID models.ID) (*domain.UserProfile, error) {
	url := fmt.Sprintf("%s/api/users/%s", d.baseURL, userID)

	var profile domain.UserProfile
	found, err := getJSON(ctx, d.client, url, &profile)
	if err != nil {
		return nil, &domain.DependencyUnavailableError{Dependency: "user service", Err: err}
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// getJSON performs a GET and decodes the body. Returns found=false on 404.
func getJSON(ctx context.Context, client *http.Client, url string, v interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	res, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return false, nil
	case res.StatusCode != http.StatusOK:
		return false, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return false, err
	}
	return true, nil
}
