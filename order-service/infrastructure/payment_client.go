package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/hungersaviour/order-system/order-service/domain"
)

var _ domain.PaymentGateway = (*HTTPPaymentGateway)(nil)

// HTTPPaymentGateway submits charges to the payment service. The gateway is
// the slowest, highest-value dependency, so the call carries a long timeout
// and sits behind a circuit breaker.
type HTTPPaymentGateway struct {
	client  *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker[*domain.ChargeResult]
}

// NewHTTPPaymentGateway creates a payment gateway client
func NewHTTPPaymentGateway(baseURL string, timeout time.Duration) *HTTPPaymentGateway {
	breaker := gobreaker.NewCircuitBreaker[*domain.ChargeResult](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 60 * time.Second,
	})

	return &HTTPPaymentGateway{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		breaker: breaker,
	}
}

type chargeRequestBody struct {
	OrderID       string `json:"order_id"`
	UserID        string `json:"user_id"`
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
}

type chargeResponseBody struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// Charge submits the payment and returns the settlement outcome. Transport
// errors, timeouts and an open breaker surface as DependencyUnavailableError;
// a declined charge is a normal result with status FAILED.
func (g *HTTPPaymentGateway) Charge(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeResult, error) {
	result, err := g.breaker.Execute(func() (*domain.ChargeResult, error) {
		return g.charge(ctx, req)
	})
	if err != nil {
		return nil, &domain.DependencyUnavailableError{Dependency: "payment service", Err: err}
	}
	return result, nil
}

func (g *HTTPPaymentGateway) charge(ctx context.Context, req *domain.ChargeRequest) (*domain.ChargeResult, error) {
	body, err := json.Marshal(&chargeRequestBody{
		OrderID:       req.OrderID.String(),
		UserID:        req.UserID.String(),
		Amount:        req.Amount.Amount,
		Currency:      req.Amount.Currency,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/payments", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	var decoded chargeResponseBody
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	return &domain.ChargeResult{
		PaymentID: decoded.PaymentID,
		Status:    domain.ChargeStatus(decoded.Status),
		Message:   decoded.Message,
	}, nil
}
