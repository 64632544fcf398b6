package storage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Prefijos de código soportados por el generador.
const (
	PrefixBox   = "BOX"
	PrefixShelf = "SHELF"
)

// Motivos de rechazo de una entrada del lote.
const (
	ReasonEmpty   = "empty"              // código vacío
	ReasonExists  = "already_exists"     // choca con un registro persistido del ámbito
	ReasonInBatch = "duplicate_in_batch" // choca con otra entrada del mismo lote
)

// Patrones históricos de los códigos generados: BOX_12 y "Box 12" (ídem SHELF).
// La extracción es case-insensitive porque la detección de colisiones también lo es:
// si existe "box_12", el generador no puede volver a sugerir BOX_12.
var (
	boxPattern   = regexp.MustCompile(`(?i)^box[_ ](\d+)$`)
	shelfPattern = regexp.MustCompile(`(?i)^shelf[_ ](\d+)$`)
)

// BatchError describe el conflicto de una entrada de un lote de códigos.
type BatchError struct {
	Index  int    // posición de la entrada en el lote (0-based)
	Code   string // código tal como llegó
	Reason string // empty, already_exists, duplicate_in_batch
}

// Normalize deja un código listo para comparación case-insensitive.
func Normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func patternFor(prefix string) *regexp.Regexp {
	if strings.EqualFold(prefix, PrefixShelf) {
		return shelfPattern
	}
	return boxPattern
}

// MaxSequence recorre los campos code/label de los registros existentes y devuelve
// el mayor entero que siga el patrón del prefijo. Sin coincidencias devuelve 0.
func MaxSequence(prefix string, fields []string) int {
	re := patternFor(prefix)
	max := 0
	for _, f := range fields {
		m := re.FindStringSubmatch(strings.TrimSpace(f))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// secuencias absurdamente largas no participan del máximo
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// FormatCode arma un código con el patrón canónico PREFIX_<n>.
func FormatCode(prefix string, n int) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(prefix), n)
}

// NextCode devuelve el siguiente código sugerido: PREFIX_<max+1>.
func NextCode(prefix string, fields []string) string {
	return FormatCode(prefix, MaxSequence(prefix, fields)+1)
}

// SuggestCodes devuelve count códigos consecutivos a partir de max+1,
// para pre-poblar formularios de creación masiva.
func SuggestCodes(prefix string, fields []string, count int) []string {
	start := MaxSequence(prefix, fields) + 1
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		codes = append(codes, FormatCode(prefix, start+i))
	}
	return codes
}

// ValidateBatch verifica cada código candidato contra los ya persistidos en el ámbito
// y contra las demás entradas del mismo lote, ambos case-insensitive.
// Devuelve un error por entrada conflictiva; lote válido = slice vacío.
func ValidateBatch(candidates, existing []string) []BatchError {
	exist := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		exist[Normalize(c)] = struct{}{}
	}
	seen := make(map[string]struct{}, len(candidates))
	var errs []BatchError
	for i, c := range candidates {
		n := Normalize(c)
		if n == "" {
			errs = append(errs, BatchError{Index: i, Code: c, Reason: ReasonEmpty})
			continue
		}
		if _, ok := exist[n]; ok {
			errs = append(errs, BatchError{Index: i, Code: c, Reason: ReasonExists})
			continue
		}
		if _, ok := seen[n]; ok {
			errs = append(errs, BatchError{Index: i, Code: c, Reason: ReasonInBatch})
			continue
		}
		seen[n] = struct{}{}
	}
	return errs
}
