// Package pos contiene los catálogos de códigos usados en facturación de venta
// en Colombia (unidades UNECE, medios de pago, tipos de impuesto). Los códigos
// siguen las tablas del Anexo Técnico de Factura Electrónica DIAN v1.9, que es
// el estándar de facto aunque el sistema no emita factura electrónica.
package pos

// =============================================================================
// Unidades de Medida (códigos ISO/UNECE usados en líneas de factura)
// =============================================================================

const (
	UnitUnit     = "94"  // Unidad (joyas terminadas)
	UnitGram     = "GRM" // Gramo (metales)
	UnitCarat    = "CTM" // Quilate métrico (piedras)
	UnitKilogram = "KGM" // Kilogramo
	UnitMetre    = "MTR" // Metro (cadenas por metro)
	UnitDozen    = "DZN" // Docena
)

// ValidMeasurementUnitCodes códigos de unidad de medida válidos para catálogo y materias primas.
var ValidMeasurementUnitCodes = map[string]bool{
	UnitUnit: true, UnitGram: true, UnitCarat: true,
	UnitKilogram: true, UnitMetre: true, UnitDozen: true,
}

// =============================================================================
// Forma de Pago
// =============================================================================

const (
	PaymentFormContado = "1" // Contado
	PaymentFormCredito = "2" // Crédito
)

// =============================================================================
// Medios de Pago - códigos de uso frecuente en mostrador
// =============================================================================

const (
	PaymentMethodEfectivo       = "10" // Efectivo
	PaymentMethodTransferencia  = "47" // Transferencia Débito Bancaria
	PaymentMethodTarjetaCredito = "48" // Tarjeta Crédito
	PaymentMethodTarjetaDebito  = "49" // Tarjeta Débito
)

// ValidPaymentMethodCodes medios de pago aceptados en caja.
var ValidPaymentMethodCodes = map[string]bool{
	PaymentMethodEfectivo: true, PaymentMethodTransferencia: true,
	PaymentMethodTarjetaCredito: true, PaymentMethodTarjetaDebito: true,
}

// PaymentMethodNames etiqueta legible de cada medio de pago (PDF y reportes).
var PaymentMethodNames = map[string]string{
	PaymentMethodEfectivo:       "Efectivo",
	PaymentMethodTransferencia:  "Transferencia bancaria",
	PaymentMethodTarjetaCredito: "Tarjeta crédito",
	PaymentMethodTarjetaDebito:  "Tarjeta débito",
}

// =============================================================================
// Tipos de Impuesto
// =============================================================================

const (
	TaxCodeIVA = "01" // IVA
	TaxCodeINC = "04" // Impuesto Nacional al Consumo
)

// =============================================================================
// Tipos de identificación
// =============================================================================

const (
	IdentificationTypeNIT = "31" // NIT - requiere dígito de verificación
	IdentificationTypeCC  = "13" // Cédula de ciudadanía
)
