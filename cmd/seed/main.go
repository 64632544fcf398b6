// seed genera una migración goose con el catálogo inicial (categorías y
// materias primas) a partir del export del sistema anterior: un CSV separado
// por punto y coma, codificado en ISO-8859-1, con columnas
// TIPO;CODIGO;NOMBRE;PADRE;UNIDAD;COSTO.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/00003_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/joyeria-pos/pkg/pos"
)

type categoryRow struct {
	code, name, parent string
}

type materialRow struct {
	code, name, unit string
	cost             decimal.Decimal
}

// legacyUnits traduce las unidades libres del sistema anterior a códigos UNECE.
var legacyUnits = map[string]string{
	"UND": pos.UnitUnit, "UNIDAD": pos.UnitUnit, "94": pos.UnitUnit,
	"GR": pos.UnitGram, "GRAMO": pos.UnitGram, "GRM": pos.UnitGram,
	"CT": pos.UnitCarat, "QUILATE": pos.UnitCarat, "CTM": pos.UnitCarat,
	"KG": pos.UnitKilogram, "KGM": pos.UnitKilogram,
	"MT": pos.UnitMetre, "METRO": pos.UnitMetre, "MTR": pos.UnitMetre,
	"DOC": pos.UnitDozen, "DOCENA": pos.UnitDozen, "DZN": pos.UnitDozen,
}

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// El export viene de un sistema viejo en Windows: ISO-8859-1 y ';'.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var categories []categoryRow
	var materials []materialRow
	skipped := 0
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		kind := strings.ToUpper(strings.TrimSpace(field(rec, 0)))
		if i == 0 && kind == "TIPO" {
			continue // encabezado
		}
		code := strings.TrimSpace(field(rec, 1))
		name := strings.TrimSpace(field(rec, 2))
		if code == "" || name == "" {
			skipped++
			continue
		}
		switch kind {
		case "CATEGORIA":
			categories = append(categories, categoryRow{
				code:   code,
				name:   name,
				parent: strings.TrimSpace(field(rec, 3)),
			})
		case "MATERIAL":
			unit := legacyUnits[strings.ToUpper(strings.TrimSpace(field(rec, 4)))]
			if unit == "" || !pos.ValidMeasurementUnitCodes[unit] {
				unit = pos.UnitGram
			}
			cost, err := parseCost(field(rec, 5))
			if err != nil {
				fmt.Fprintf(os.Stderr, "fila %d: costo inválido %q, se omite\n", i+1, field(rec, 5))
				skipped++
				continue
			}
			materials = append(materials, materialRow{code: code, name: name, unit: unit, cost: cost})
		default:
			skipped++
		}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].code < categories[j].code })
	sort.Slice(materials, func(i, j int) bool { return materials[i].code < materials[j].code })

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "00003_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- +goose Up\n")
	out.WriteString("-- Catálogo inicial migrado del sistema anterior.\n")
	fmt.Fprintf(out, "-- Generado por cmd/seed a partir de %s.\n\n", filepath.Base(csvPath))

	// Categorías raíz primero; las hijas referencian al padre por código en
	// pasadas sucesivas, así una subcategoría nunca se inserta antes que su padre.
	out.WriteString("-- 1. Categorías\n")
	emitted := make(map[string]bool)
	pending := categories
	for len(pending) > 0 {
		var next []categoryRow
		progress := false
		for _, cat := range pending {
			if cat.parent != "" && !emitted[strings.ToLower(cat.parent)] {
				next = append(next, cat)
				continue
			}
			if cat.parent == "" {
				fmt.Fprintf(out, "INSERT INTO categories (id, code, name, status, created_at, updated_at)\n")
				fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', 'active', now(), now())\n",
					uuid.New().String(), escapeSQL(cat.code), escapeSQL(cat.name))
			} else {
				fmt.Fprintf(out, "INSERT INTO categories (id, parent_id, code, name, status, created_at, updated_at)\n")
				fmt.Fprintf(out, "SELECT '%s', p.id, '%s', '%s', 'active', now(), now()\n",
					uuid.New().String(), escapeSQL(cat.code), escapeSQL(cat.name))
				fmt.Fprintf(out, "FROM categories p WHERE lower(p.code) = lower('%s')\n", escapeSQL(cat.parent))
			}
			out.WriteString("ON CONFLICT DO NOTHING;\n")
			emitted[strings.ToLower(cat.code)] = true
			progress = true
		}
		if !progress {
			for _, cat := range next {
				fmt.Fprintf(os.Stderr, "categoría %s: padre %q no existe en el export, se omite\n", cat.code, cat.parent)
				skipped++
			}
			break
		}
		pending = next
	}

	out.WriteString("\n-- 2. Materias primas\n")
	for _, m := range materials {
		fmt.Fprintf(out, "INSERT INTO materials (id, code, name, unit, cost, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', %s, now(), now())\n",
			uuid.New().String(), escapeSQL(m.code), escapeSQL(m.name), m.unit, m.cost.StringFixed(2))
		out.WriteString("ON CONFLICT DO NOTHING;\n")
	}

	out.WriteString("\n-- +goose Down\n")
	out.WriteString("DELETE FROM materials WHERE lower(code) IN (")
	for i, m := range materials {
		if i > 0 {
			out.WriteString(", ")
		}
		fmt.Fprintf(out, "lower('%s')", escapeSQL(m.code))
	}
	out.WriteString(");\n")
	out.WriteString("DELETE FROM categories WHERE lower(code) IN (")
	for i, c := range categories {
		if i > 0 {
			out.WriteString(", ")
		}
		fmt.Fprintf(out, "lower('%s')", escapeSQL(c.code))
	}
	out.WriteString(");\n")

	fmt.Printf("Generado %s: %d categorías, %d materiales, %d filas omitidas\n",
		outPath, len(emitted), len(materials), skipped)
}

// parseCost acepta el formato del export viejo: coma decimal y miles con punto.
func parseCost(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("costo negativo")
	}
	return d, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
