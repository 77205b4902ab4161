package infrastructure

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/hungersaviour/order-system/order-service/domain"
	"github.com/hungersaviour/order-system/shared/events"
	"github.com/hungersaviour/order-system/shared/models"
)

// queryTimeout bounds every store call; a slow database is treated like any
// other unavailable dependency
const queryTimeout = 5 * time.Second

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *sqlx.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(db *sqlx.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

type postgresOrder struct {
	ID              string     `db:"id"`
	UserID          string     `db:"user_id"`
	RestaurantID    string     `db:"restaurant_id"`
	DeliveryAddress string     `db:"delivery_address"`
	Status          string     `db:"status"`
	TotalAmount     int64      `db:"total_amount"`
	Currency        string     `db:"currency"`
	PaymentID       *string    `db:"payment_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
	Version         int        `db:"version"`
}

type postgresOrderLine struct {
	OrderID      string `db:"order_id"`
	Position     int    `db:"position"`
	MenuItemID   string `db:"menu_item_id"`
	MenuItemName string `db:"menu_item_name"`
	Quantity     int    `db:"quantity"`
	UnitPrice    int64  `db:"unit_price"`
	Subtotal     int64  `db:"subtotal"`
}

// Save persists the order. The first recorded event decides between insert
// and update, mirroring how transitions are recorded on the aggregate.
func (r *PostgresOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	for _, event := range order.Events() {
		switch event.EventType {
		case events.OrderPlacedEvent:
			return r.insertOrder(ctx, order)
		default:
			return r.updateOrder(ctx, order)
		}
	}
	return r.updateOrder(ctx, order)
}

func (r *PostgresOrderRepository) insertOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (
			id, user_id, restaurant_id, delivery_address, status,
			total_amount, currency, payment_id, created_at, updated_at, version
		) VALUES (
			:id, :user_id, :restaurant_id, :delivery_address, :status,
			:total_amount, :currency, :payment_id, :created_at, :updated_at, :version
		)`

	if _, err := tx.NamedExecContext(ctx, orderQuery, r.toPostgres(order)); err != nil {
		return errors.Wrap(err, "failed to insert order")
	}

	lineQuery := `
		INSERT INTO order_lines (
			order_id, position, menu_item_id, menu_item_name, quantity, unit_price, subtotal
		) VALUES (
			:order_id, :position, :menu_item_id, :menu_item_name, :quantity, :unit_price, :subtotal
		)`

	for i, line := range order.Lines {
		pgLine := &postgresOrderLine{
			OrderID:      order.ID.String(),
			Position:     i,
			MenuItemID:   line.MenuItemID.String(),
			MenuItemName: line.MenuItemName,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice.Amount,
			Subtotal:     line.Subtotal.Amount,
		}
		if _, err := tx.NamedExecContext(ctx, lineQuery, pgLine); err != nil {
			return errors.Wrap(err, "failed to insert order line")
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit order insert")
}

func (r *PostgresOrderRepository) updateOrder(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = :status, payment_id = :payment_id,
		    updated_at = :updated_at, version = :version
		WHERE id = :id AND version = :old_version`

	var paymentID *string
	if order.PaymentID != "" {
		paymentID = &order.PaymentID
	}

	res, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":          order.ID.String(),
		"status":      order.Status.String(),
		"payment_id":  paymentID,
		"updated_at":  order.Timestamps.UpdatedAt,
		"version":     order.Version.Value,
		"old_version": order.Version.Value - 1, // Optimistic locking
	})
	if err != nil {
		return errors.Wrap(err, "failed to update order")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to read update result")
	}
	if affected == 0 {
		return errors.New("order was modified concurrently")
	}

	return nil
}

// FindByID finds an order by ID, nil when absent
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id models.ID) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, user_id, restaurant_id, delivery_address, status,
		       total_amount, currency, payment_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE id = $1 AND deleted_at IS NULL`

	var pgOrder postgresOrder
	if err := r.db.GetContext(ctx, &pgOrder, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to find order")
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.toDomain(&pgOrder, lines)
}

// FindByUserID finds orders by user ID, newest first
func (r *PostgresOrderRepository) FindByUserID(ctx context.Context, userID models.ID) ([]*domain.Order, error) {
	return r.findBy(ctx, "user_id", userID)
}

// FindByRestaurantID finds orders by restaurant ID, newest first
func (r *PostgresOrderRepository) FindByRestaurantID(ctx context.Context, restaurantID models.ID) ([]*domain.Order, error) {
	return r.findBy(ctx, "restaurant_id", restaurantID)
}

func (r *PostgresOrderRepository) findBy(ctx context.Context, column string, id models.ID) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `
		SELECT id, user_id, restaurant_id, delivery_address, status,
		       total_amount, currency, payment_id, created_at, updated_at, deleted_at, version
		FROM orders
		WHERE ` + column + ` = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	var pgOrders []postgresOrder
	if err := r.db.SelectContext(ctx, &pgOrders, query, id.String()); err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*domain.Order, len(pgOrders))
	for i := range pgOrders {
		lines, err := r.findLines(ctx, models.ID(pgOrders[i].ID))
		if err != nil {
			return nil, err
		}
		order, err := r.toDomain(&pgOrders[i], lines)
		if err != nil {
			return nil, err
		}
		orders[i] = order
	}

	return orders, nil
}

func (r *PostgresOrderRepository) findLines(ctx context.Context, orderID models.ID) ([]postgresOrderLine, error) {
	query := `
		SELECT order_id, position, menu_item_id, menu_item_name, quantity, unit_price, subtotal
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position`

	var lines []postgresOrderLine
	if err := r.db.SelectContext(ctx, &lines, query, orderID.String()); err != nil {
		return nil, errors.Wrap(err, "failed to find order lines")
	}
	return lines, nil
}

func (r *PostgresOrderRepository) toPostgres(order *domain.Order) *postgresOrder {
	var paymentID *string
	if order.PaymentID != "" {
		paymentID = &order.PaymentID
	}

	return &postgresOrder{
		ID:              order.ID.String(),
		UserID:          order.UserID.String(),
		RestaurantID:    order.RestaurantID.String(),
		DeliveryAddress: order.DeliveryAddress,
		Status:          order.Status.String(),
		TotalAmount:     order.TotalAmount.Amount,
		Currency:        order.TotalAmount.Currency,
		PaymentID:       paymentID,
		CreatedAt:       order.Timestamps.CreatedAt,
		UpdatedAt:       order.Timestamps.UpdatedAt,
		DeletedAt:       order.Timestamps.DeletedAt,
		Version:         order.Version.Value,
	}
}

func (r *PostgresOrderRepository) toDomain(pgOrder *postgresOrder, pgLines []postgresOrderLine) (*domain.Order, error) {
	id, err := models.NewID(pgOrder.ID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order ID")
	}
	userID, err := models.NewID(pgOrder.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid user ID")
	}
	restaurantID, err := models.NewID(pgOrder.RestaurantID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid restaurant ID")
	}

	status, err := domain.ParseOrderStatus(pgOrder.Status)
	if err != nil {
		return nil, errors.Wrap(err, "invalid order status in store")
	}

	lines := make([]domain.OrderLine, len(pgLines))
	for i, pgLine := range pgLines {
		lines[i] = domain.OrderLine{
			MenuItemID:   models.ID(pgLine.MenuItemID),
			MenuItemName: pgLine.MenuItemName,
			Quantity:     pgLine.Quantity,
			UnitPrice:    models.NewMoney(pgLine.UnitPrice, pgOrder.Currency),
			Subtotal:     models.NewMoney(pgLine.Subtotal, pgOrder.Currency),
		}
	}

	var paymentID string
	if pgOrder.PaymentID != nil {
		paymentID = *pgOrder.PaymentID
	}

	return &domain.Order{
		ID:              id,
		UserID:          userID,
		RestaurantID:    restaurantID,
		DeliveryAddress: pgOrder.DeliveryAddress,
		Status:          status,
		TotalAmount:     models.NewMoney(pgOrder.TotalAmount, pgOrder.Currency),
		PaymentID:       paymentID,
		Lines:           lines,
		Timestamps: models.Timestamps{
			CreatedAt: pgOrder.CreatedAt,
			UpdatedAt: pgOrder.UpdatedAt,
			DeletedAt: pgOrder.DeletedAt,
		},
		Version: models.Version{Value: pgOrder.Version},
	}, nil
}
