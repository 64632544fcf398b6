package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

const cartItemColumns = `id, cart_id, product_id, quantity, unit_price, created_at, updated_at`

// CartRepo implementación del puerto CartRepository sobre PostgreSQL.
// Cubre el agregado completo: cabecera (carts) y líneas (cart_items).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

// Create persiste el carrito de un usuario (uno por usuario).
func (r *CartRepo) Create(cart *entity.Cart) error {
	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

// GetByUser devuelve el carrito abierto del usuario; (nil, nil) si no existe.
func (r *CartRepo) GetByUser(userID string) (*entity.Cart, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`
	var c entity.Cart
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart by user: %w", err)
	}
	return &c, nil
}

// AddItem persiste una línea del carrito.
func (r *CartRepo) AddItem(item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (` + cartItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CartID, item.ProductID, item.Quantity, item.UnitPrice,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cart item: %w", err)
	}
	return nil
}

// GetItem obtiene una línea por ID.
func (r *CartRepo) GetItem(id string) (*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE id = $1`
	return r.scanItem(r.q.QueryRow(context.Background(), query, id))
}

// GetItemByProduct obtiene la línea de un producto dentro del carrito;
// permite acumular cantidad en lugar de duplicar la línea.
func (r *CartRepo) GetItemByProduct(cartID, productID string) (*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 AND product_id = $2`
	return r.scanItem(r.q.QueryRow(context.Background(), query, cartID, productID))
}

// UpdateItem actualiza cantidad y precio de una línea.
func (r *CartRepo) UpdateItem(item *entity.CartItem) error {
	query := `UPDATE cart_items SET quantity = $2, unit_price = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Quantity, item.UnitPrice, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

// DeleteItem elimina una línea por ID.
func (r *CartRepo) DeleteItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	return nil
}

// ListItems lista las líneas de un carrito en orden de inserción.
func (r *CartRepo) ListItems(cartID string) ([]*entity.CartItem, error) {
	query := `SELECT ` + cartItemColumns + ` FROM cart_items WHERE cart_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ClearItems vacía el carrito (tras un checkout exitoso).
func (r *CartRepo) ClearItems(cartID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		return fmt.Errorf("clear cart items: %w", err)
	}
	return nil
}

func (r *CartRepo) scanItem(row pgx.Row) (*entity.CartItem, error) {
	var it entity.CartItem
	err := row.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	return &it, nil
}
