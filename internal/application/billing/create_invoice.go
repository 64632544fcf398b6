package billing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain"
	"github.com/jhoicas/joyeria-pos/internal/domain/entity"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
	"github.com/jhoicas/joyeria-pos/pkg/logger"
	"github.com/jhoicas/joyeria-pos/pkg/metrics"
	"github.com/jhoicas/joyeria-pos/pkg/pos"
)

// Config parámetros de numeración y verificación de facturas.
type Config struct {
	Prefix        string // prefijo del consecutivo (FV por defecto)
	VerifyBaseURL string // base de la URL de verificación impresa en el QR
}

// InvoiceUseCase crea, consulta y anula facturas. La creación descuenta el
// inventario de la tienda en la misma transacción que guarda la factura.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	inventoryUC  InventoryUseCase
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	typeRepo     repository.StorageTypeRepository
	objectRepo   repository.StorageObjectRepository
	invoiceRepo  repository.InvoiceRepository
	cfg          Config
	log          *logger.Logger
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	typeRepo repository.StorageTypeRepository,
	objectRepo repository.StorageObjectRepository,
	invoiceRepo repository.InvoiceRepository,
	cfg Config,
	log *logger.Logger,
) *InvoiceUseCase {
	if cfg.Prefix == "" {
		cfg.Prefix = "FV"
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		typeRepo:     typeRepo,
		objectRepo:   objectRepo,
		invoiceRepo:  invoiceRepo,
		cfg:          cfg,
		log:          log,
	}
}

// CreateInvoice crea la factura y registra una salida de inventario por cada
// línea. Las líneas con caja fijada descuentan de esa caja; las demás se
// reparten FIFO entre las cajas de la tienda. Cualquier error (ej: stock
// insuficiente) revierte factura y salidas completas.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || in.LocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !pos.ValidPaymentMethodCodes[in.PaymentMethod] {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	// Validar productos, precios y cajas fijadas (fuera de la tx, solo lectura).
	productsByID := make(map[string]*entity.Product)
	prices := make([]decimal.Decimal, len(in.Items))
	for i := range in.Items {
		item := &in.Items[i]
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[item.ProductID] = product

		// Precio de catálogo salvo precio manual (descuento en mostrador).
		price := product.Price
		if item.UnitPrice != nil && !item.UnitPrice.IsZero() {
			if item.UnitPrice.LessThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			price = *item.UnitPrice
		}
		prices[i] = price

		if item.StorageObjectID != "" {
			if err := uc.checkBoxInLocation(item.StorageObjectID, in.LocationID); err != nil {
				return nil, err
			}
		}
	}

	now := time.Now()
	// El ID de la factura viaja como TransactionID de cada movimiento de salida.
	invoiceID := uuid.New().String()
	var inv *entity.Invoice
	var details []*entity.InvoiceDetail

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		_ repository.StorageObjectRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// Consecutivo dentro de la tx: dos cajas facturando a la vez no comparten número.
		seq, err := invoiceRepo.NextNumber(uc.cfg.Prefix)
		if err != nil {
			return fmt.Errorf("consecutivo de factura: %w", err)
		}
		number := strconv.FormatInt(seq, 10)
		reference := "venta " + uc.cfg.Prefix + "-" + number

		// Salidas de inventario, una por línea. Sin stock = rollback de todo.
		for i := range in.Items {
			item := &in.Items[i]
			product := productsByID[item.ProductID]
			if err := uc.inventoryUC.RegisterOUTInTx(
				movRepo, plRepo,
				product,
				in.LocationID, item.StorageObjectID, userID, reference,
				item.Quantity,
				now,
				invoiceID,
			); err != nil {
				return err
			}
		}

		var netTotal, taxTotal decimal.Decimal
		for i := range in.Items {
			item := &in.Items[i]
			product := productsByID[item.ProductID]
			subtotal := item.Quantity.Mul(prices[i])
			netTotal = netTotal.Add(subtotal)
			taxTotal = taxTotal.Add(subtotal.Mul(product.TaxRate))

			details = append(details, &entity.InvoiceDetail{
				ID:              uuid.New().String(),
				InvoiceID:       invoiceID,
				ProductID:       item.ProductID,
				StorageObjectID: item.StorageObjectID,
				Quantity:        item.Quantity,
				UnitPrice:       prices[i],
				TaxRate:         product.TaxRate,
				Subtotal:        subtotal,
			})
		}

		inv = &entity.Invoice{
			ID:            invoiceID,
			CustomerID:    in.CustomerID,
			LocationID:    in.LocationID,
			Prefix:        uc.cfg.Prefix,
			Number:        number,
			Date:          now,
			PaymentMethod: in.PaymentMethod,
			NetTotal:      netTotal,
			TaxTotal:      taxTotal,
			GrandTotal:    netTotal.Add(taxTotal),
			Status:        entity.InvoiceStatusPaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		inv.QRData = buildQRData(inv, uc.cfg.VerifyBaseURL)

		if err := invoiceRepo.Create(inv); err != nil {
			return fmt.Errorf("guardar factura: %w", err)
		}
		for _, detail := range details {
			if err := invoiceRepo.CreateDetail(detail); err != nil {
				return fmt.Errorf("guardar detalle de factura: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.InvoicesCreatedTotal.Inc()
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Prefix+"-"+inv.Number).
		Str("location_id", inv.LocationID).
		Str("grand_total", inv.GrandTotal.String()).
		Msg("factura creada")

	return uc.toResponse(inv, customer.Name, details), nil
}

// VoidInvoice anula una factura pagada y reingresa el stock de cada línea.
// Las líneas con caja fijada vuelven a esa caja; las demás entran a la caja
// más antigua de la tienda. Solo facturas en PAID se pueden anular.
func (uc *InvoiceUseCase) VoidInvoice(ctx context.Context, userID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status != entity.InvoiceStatusPaid {
		return nil, domain.ErrConflict
	}

	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[string]*entity.Product)
	for _, d := range details {
		if _, ok := productsByID[d.ProductID]; ok {
			continue
		}
		product, err := uc.productRepo.GetByID(d.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		productsByID[d.ProductID] = product
	}

	now := time.Now()
	reference := "anulación " + inv.Prefix + "-" + inv.Number

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		plRepo repository.ProductLocationRepository,
		objectRepo repository.StorageObjectRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		for _, d := range details {
			box, err := uc.reentryBox(objectRepo, d, inv.LocationID)
			if err != nil {
				return err
			}
			if err := uc.inventoryUC.RegisterINInTx(
				movRepo, plRepo,
				productsByID[d.ProductID],
				box,
				userID, reference,
				d.Quantity,
				now,
				inv.ID,
			); err != nil {
				return err
			}
		}
		return invoiceRepo.UpdateStatus(id, entity.InvoiceStatusVoid)
	})
	if err != nil {
		return nil, err
	}

	inv.Status = entity.InvoiceStatusVoid
	uc.log.Info().
		Str("invoice_id", inv.ID).
		Str("number", inv.Prefix+"-"+inv.Number).
		Msg("factura anulada, stock reingresado")

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, details), nil
}

// reentryBox resuelve la caja donde reingresa una línea anulada: la caja
// original si sigue existiendo, o la más antigua de la tienda.
func (uc *InvoiceUseCase) reentryBox(objectRepo repository.StorageObjectRepository, d *entity.InvoiceDetail, locationID string) (*entity.StorageObject, error) {
	if d.StorageObjectID != "" {
		box, err := objectRepo.GetByID(d.StorageObjectID)
		if err != nil {
			return nil, err
		}
		if box != nil {
			return box, nil
		}
	}
	box, err := objectRepo.FirstByLocation(locationID)
	if err != nil {
		return nil, err
	}
	if box == nil {
		return nil, fmt.Errorf("%w: la tienda no tiene cajas donde reingresar el stock", domain.ErrConflict)
	}
	return box, nil
}

// checkBoxInLocation verifica que la caja fijada pertenece a la tienda de la factura.
func (uc *InvoiceUseCase) checkBoxInLocation(storageObjectID, locationID string) error {
	box, err := uc.objectRepo.GetByID(storageObjectID)
	if err != nil {
		return err
	}
	if box == nil {
		return domain.ErrNotFound
	}
	shelf, err := uc.typeRepo.GetByID(box.StorageTypeID)
	if err != nil {
		return err
	}
	if shelf == nil || shelf.LocationID != locationID {
		return fmt.Errorf("%w: la caja %s no pertenece a la tienda de la factura", domain.ErrInvalidInput, box.Code)
	}
	return nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	details, err := uc.invoiceRepo.GetDetailsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, details), nil
}

// ListInvoices lista facturas sin detalle, más recientes primero.
func (uc *InvoiceUseCase) ListInvoices(page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		name, ok := names[inv.CustomerID]
		if !ok {
			if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
				name = customer.Name
			}
			names[inv.CustomerID] = name
		}
		items = append(items, *uc.toResponse(inv, name, nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// buildQRData genera el payload de verificación impreso como QR en el PDF:
// NumFac|FecFac|ValFac|CodImp|ValImp|Id|UrlVerificacion.
func buildQRData(inv *entity.Invoice, verifyBaseURL string) string {
	numFac := strings.TrimSpace(inv.Prefix) + "-" + strings.TrimSpace(inv.Number)
	fecFac := inv.Date.Format("2006-01-02")
	valFac := inv.GrandTotal.Round(2).StringFixed(2)
	valImp := inv.TaxTotal.Round(2).StringFixed(2)
	verifyURL := verifyBaseURL + inv.ID
	return numFac + "|" + fecFac + "|" + valFac + "|" + pos.TaxCodeIVA + "|" + valImp + "|" + inv.ID + "|" + verifyURL
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, details []*entity.InvoiceDetail) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		LocationID:    inv.LocationID,
		Prefix:        inv.Prefix,
		Number:        inv.Number,
		Date:          inv.Date.Format("2006-01-02"),
		PaymentMethod: inv.PaymentMethod,
		NetTotal:      inv.NetTotal,
		TaxTotal:      inv.TaxTotal,
		GrandTotal:    inv.GrandTotal,
		Status:        inv.Status,
		QRData:        inv.QRData,
		Details:       make([]dto.InvoiceDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.InvoiceDetailResponse{
			ID:              d.ID,
			ProductID:       d.ProductID,
			StorageObjectID: d.StorageObjectID,
			Quantity:        d.Quantity,
			UnitPrice:       d.UnitPrice,
			TaxRate:         d.TaxRate,
			Subtotal:        d.Subtotal,
		})
	}
	return resp
}
