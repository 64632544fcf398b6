package repository

import "github.com/jhoicas/joyeria-pos/internal/domain/entity"

// CartRepository define el puerto de persistencia para el carrito y sus líneas.
// El carrito es un agregado: un solo repositorio cubre cabecera e ítems.
type CartRepository interface {
	Create(cart *entity.Cart) error
	// GetByUser devuelve el carrito abierto del usuario; (nil, nil) si no existe.
	GetByUser(userID string) (*entity.Cart, error)
	AddItem(item *entity.CartItem) error
	GetItem(id string) (*entity.CartItem, error)
	// GetItemByProduct permite acumular cantidad si el producto ya está en el carrito.
	GetItemByProduct(cartID, productID string) (*entity.CartItem, error)
	UpdateItem(item *entity.CartItem) error
	DeleteItem(id string) error
	ListItems(cartID string) ([]*entity.CartItem, error)
	ClearItems(cartID string) error
}
