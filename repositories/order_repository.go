package repositories

import (
	"context"
	"errors"
	"fmt"
	"mobile-shop/models"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrOrderAlreadyDelivered = errors.New("order already delivered")
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// OrderFilter narrows order listings. Zero values mean "no filter".
type OrderFilter struct {
	UserID    int
	Status    string
	StartDate string // 2006-01-02
	EndDate   string
}

func (r *OrderRepository) FindAll(filter OrderFilter, page, limit int) ([]models.Order, int, error) {
	whereConditions := []string{}
	args := []interface{}{}
	paramIndex := 1

	if filter.UserID > 0 {
		whereConditions = append(whereConditions, fmt.Sprintf("user_id = $%d", paramIndex))
		args = append(args, filter.UserID)
		paramIndex++
	}

	if filter.Status != "" && filter.Status != "All" {
		whereConditions = append(whereConditions, fmt.Sprintf("status = $%d", paramIndex))
		args = append(args, filter.Status)
		paramIndex++
	}

	if filter.StartDate != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("DATE(created_at) >= $%d", paramIndex))
		args = append(args, filter.StartDate)
		paramIndex++
	}

	if filter.EndDate != "" {
		whereConditions = append(whereConditions, fmt.Sprintf("DATE(created_at) <= $%d", paramIndex))
		args = append(args, filter.EndDate)
		paramIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = " WHERE " + strings.Join(whereConditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM orders" + whereClause
	if err := models.DB.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := fmt.Sprintf(`SELECT id, order_number, user_id, status, subtotal, shipping_charge, tax, discount, total,
	          address, city, state, country, postal_code, created_at, updated_at
	          FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		whereClause, paramIndex, paramIndex+1)
	args = append(args, limit, offset)

	rows, err := models.DB.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Status,
			&o.Subtotal, &o.ShippingCharge, &o.Tax, &o.Discount, &o.Total,
			&o.ShippingAddress.Address, &o.ShippingAddress.City, &o.ShippingAddress.State,
			&o.ShippingAddress.Country, &o.ShippingAddress.PostalCode,
			&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
	}

	return orders, total, nil
}

func (r *OrderRepository) FindByID(id int) (*models.Order, error) {
	query := `SELECT id, order_number, user_id, status, subtotal, shipping_charge, tax, discount, total,
	          address, city, state, country, postal_code, created_at, updated_at
	          FROM orders WHERE id = $1`

	var o models.Order
	err := models.DB.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.Status,
		&o.Subtotal, &o.ShippingCharge, &o.Tax, &o.Discount, &o.Total,
		&o.ShippingAddress.Address, &o.ShippingAddress.City, &o.ShippingAddress.State,
		&o.ShippingAddress.Country, &o.ShippingAddress.PostalCode,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.FindItems(id)
	if err != nil {
		return nil, err
	}
	o.Items = items

	return &o, nil
}

func (r *OrderRepository) FindItems(orderID int) ([]models.OrderItem, error) {
	rows, err := models.DB.Query(context.Background(),
		`SELECT id, order_id, product_id, title, COALESCE(image_url,''), unit_price, quantity
		 FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Title,
			&item.ImageURL, &item.UnitPrice, &item.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// AdvanceStatus moves an order one step along Processing -> Shipped ->
// Delivered and reports the new status. A delivered order cannot advance.
func (r *OrderRepository) AdvanceStatus(id int) (string, error) {
	var current string
	err := models.DB.QueryRow(context.Background(),
		"SELECT status FROM orders WHERE id = $1", id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrderNotFound
		}
		return "", err
	}

	var next string
	switch current {
	case models.OrderStatusProcessing:
		next = models.OrderStatusShipped
	case models.OrderStatusShipped:
		next = models.OrderStatusDelivered
	default:
		return "", ErrOrderAlreadyDelivered
	}

	_, err = models.DB.Exec(context.Background(),
		"UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3",
		next, time.Now(), id)
	if err != nil {
		return "", err
	}
	return next, nil
}

func (r *OrderRepository) Delete(id int) error {
	ctx := context.Background()

	var exists int
	models.DB.QueryRow(ctx, "SELECT COUNT(*) FROM orders WHERE id = $1", id).Scan(&exists)
	if exists == 0 {
		return ErrOrderNotFound
	}

	tx, err := models.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, "DELETE FROM order_items WHERE order_id = $1", id); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, "DELETE FROM orders WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
