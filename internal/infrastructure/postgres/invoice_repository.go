package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, customer_id, location_id, prefix, number, date, payment_method, net_total, tax_total, grand_total, status, qr_data, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.LocationID, invoice.Prefix, invoice.Number,
		invoice.Date, invoice.PaymentMethod, invoice.NetTotal, invoice.TaxTotal, invoice.GrandTotal,
		invoice.Status, invoice.QRData, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de detalle.
func (r *InvoiceRepo) CreateDetail(detail *entity.InvoiceDetail) error {
	if detail.ID == "" {
		detail.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_details (id, invoice_id, product_id, storage_object_id, quantity, unit_price, tax_rate, subtotal)
		VALUES ($1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		detail.ID, detail.InvoiceID, detail.ProductID, detail.StorageObjectID,
		detail.Quantity, detail.UnitPrice, detail.TaxRate, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice detail: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.CustomerID, &inv.LocationID, &inv.Prefix, &inv.Number,
		&inv.Date, &inv.PaymentMethod, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
		&inv.Status, &inv.QRData, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetDetailsByInvoiceID obtiene todas las líneas de una factura.
func (r *InvoiceRepo) GetDetailsByInvoiceID(invoiceID string) ([]*entity.InvoiceDetail, error) {
	query := `
		SELECT id, invoice_id, product_id, COALESCE(storage_object_id::text, ''), quantity, unit_price, tax_rate, subtotal
		FROM invoice_details WHERE invoice_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceDetail
	for rows.Next() {
		var d entity.InvoiceDetail
		if err := rows.Scan(&d.ID, &d.InvoiceID, &d.ProductID, &d.StorageObjectID, &d.Quantity, &d.UnitPrice, &d.TaxRate, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List lista facturas con paginación, más reciente primero.
func (r *InvoiceRepo) List(limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY date DESC, number DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CustomerID, &inv.LocationID, &inv.Prefix, &inv.Number,
			&inv.Date, &inv.PaymentMethod, &inv.NetTotal, &inv.TaxTotal, &inv.GrandTotal,
			&inv.Status, &inv.QRData, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la factura (PAID → VOID en la anulación).
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// NextNumber incrementa y devuelve el consecutivo del prefijo. El UPSERT deja
// la fila del prefijo bloqueada hasta el commit, así dos checkouts simultáneos
// no pueden recibir el mismo número. Llamar dentro de la tx que crea la factura.
func (r *InvoiceRepo) NextNumber(prefix string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (prefix, last_number)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`
	var number int64
	if err := r.q.QueryRow(context.Background(), query, prefix).Scan(&number); err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return number, nil
}
