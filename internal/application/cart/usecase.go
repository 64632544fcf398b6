package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// InvoiceCreator es el puerto hacia facturación: el checkout convierte el
// carrito en una factura con descuento de inventario incluido.
type InvoiceCreator interface {
	CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
}

// CartUseCase casos de uso del carrito de venta en mostrador. Cada usuario
// tiene un único carrito abierto que se crea al primer uso.
type CartUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	invoices    InvoiceCreator
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(cartRepo repository.CartRepository, productRepo repository.ProductRepository, invoices InvoiceCreator) *CartUseCase {
	return &CartUseCase{cartRepo: cartRepo, productRepo: productRepo, invoices: invoices}
}

// Get devuelve el carrito del usuario con sus líneas y totales. Si el usuario
// aún no tiene carrito, devuelve uno vacío recién creado.
func (uc *CartUseCase) Get(userID string) (*dto.CartResponse, error) {
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(cart)
}

// AddItem agrega un producto al carrito. Si el producto ya está en el carrito
// la cantidad se acumula. Sin precio explícito se toma el de catálogo; con
// precio explícito (descuento en mostrador) ese precio manda sobre la línea.
func (uc *CartUseCase) AddItem(userID string, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	price := product.Price
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if !in.UnitPrice.IsZero() {
			price = *in.UnitPrice
		}
	}

	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := uc.cartRepo.GetItemByProduct(cart.ID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity = existing.Quantity.Add(in.Quantity)
		if in.UnitPrice != nil && !in.UnitPrice.IsZero() {
			existing.UnitPrice = price
		}
		existing.UpdatedAt = now
		if err := uc.cartRepo.UpdateItem(existing); err != nil {
			return nil, fmt.Errorf("actualizar línea del carrito: %w", err)
		}
	} else {
		item := &entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: price,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.cartRepo.AddItem(item); err != nil {
			return nil, fmt.Errorf("agregar línea al carrito: %w", err)
		}
	}
	return uc.buildResponse(cart)
}

// UpdateItem cambia la cantidad de una línea del carrito.
func (uc *CartUseCase) UpdateItem(userID, itemID string, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, domain.ErrNotFound
	}
	item.Quantity = in.Quantity
	item.UpdatedAt = time.Now()
	if err := uc.cartRepo.UpdateItem(item); err != nil {
		return nil, fmt.Errorf("actualizar línea del carrito: %w", err)
	}
	return uc.buildResponse(cart)
}

// RemoveItem quita una línea del carrito.
func (uc *CartUseCase) RemoveItem(userID, itemID string) (*dto.CartResponse, error) {
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	item, err := uc.cartRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.CartID != cart.ID {
		return nil, domain.ErrNotFound
	}
	if err := uc.cartRepo.DeleteItem(itemID); err != nil {
		return nil, err
	}
	return uc.buildResponse(cart)
}

// Clear vacía el carrito del usuario.
func (uc *CartUseCase) Clear(userID string) error {
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return err
	}
	return uc.cartRepo.ClearItems(cart.ID)
}

// Checkout convierte el carrito en una factura: cada línea sale del inventario
// de la tienda indicada (FIFO entre sus cajas) y el carrito queda vacío solo
// si la factura se creó completa.
func (uc *CartUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.InvoiceResponse, error) {
	cart, err := uc.getOrCreate(userID)
	if err != nil {
		return nil, err
	}
	items, err := uc.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	req := dto.CreateInvoiceRequest{
		CustomerID:    in.CustomerID,
		LocationID:    in.LocationID,
		PaymentMethod: in.PaymentMethod,
		Items:         make([]dto.InvoiceItemRequest, 0, len(items)),
	}
	for _, item := range items {
		price := item.UnitPrice
		req.Items = append(req.Items, dto.InvoiceItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: &price,
		})
	}

	invoice, err := uc.invoices.CreateInvoice(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.ClearItems(cart.ID); err != nil {
		return nil, fmt.Errorf("vaciar carrito tras facturar: %w", err)
	}
	return invoice, nil
}

func (uc *CartUseCase) getOrCreate(userID string) (*entity.Cart, error) {
	cart, err := uc.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	now := time.Now()
	cart = &entity.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("crear carrito: %w", err)
	}
	return cart, nil
}

func (uc *CartUseCase) buildResponse(cart *entity.Cart) (*dto.CartResponse, error) {
	items, err := uc.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}
	resp := &dto.CartResponse{
		ID:    cart.ID,
		Items: make([]dto.CartItemResponse, 0, len(items)),
	}
	products := make(map[string]*entity.Product)
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			product, err = uc.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			products[item.ProductID] = product
		}

		line := dto.CartItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Quantity.Mul(item.UnitPrice),
		}
		if product != nil {
			line.ProductSKU = product.SKU
			line.ProductName = product.Name
			line.TaxRate = product.TaxRate
		}
		resp.Items = append(resp.Items, line)

		resp.NetTotal = resp.NetTotal.Add(line.Subtotal)
		resp.TaxTotal = resp.TaxTotal.Add(line.Subtotal.Mul(line.TaxRate))
	}
	resp.GrandTotal = resp.NetTotal.Add(resp.TaxTotal)
	return resp, nil
}
