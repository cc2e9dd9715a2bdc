// seed_inventory genera un script SQL idempotente para poblar inventory_items
// a partir de un CSV con cabecera:
//
//	category,subCategory,brand,model,quantityInStock,lowQuantityAlert
//
// Uso: go run ./cmd/seed_inventory [-latin1] [-out ruta.sql] inventario.csv
// Por defecto escribe internal/infrastructure/postgres/migrations/002_seed_inventory.sql,
// que se aplica con el resto de migraciones al arrancar.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/logbook-api/internal/domain/entity"
	"github.com/jhoicas/logbook-api/internal/domain/inventory"
)

var columns = []string{"category", "subCategory", "brand", "model", "quantityInStock", "lowQuantityAlert"}

// namespace para IDs deterministas: la misma clave produce siempre el mismo UUID.
var namespace = uuid.MustParse("6f1d6a52-8a8f-4d3c-b2a4-5f0e7c1b9a10")

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1 (exportado desde Excel)")
	outPath := flag.String("out", "", "archivo SQL de salida")
	flag.Parse()

	csvPath := "inventory.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	if *outPath == "" {
		*outPath = filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_inventory.sql")
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var in io.Reader = f
	if *latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	items, err := parseCSV(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, items); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d artículos\n", *outPath, len(items))
}

// parseCSV lee y valida las filas; un error indica la línea del CSV.
func parseCSV(r io.Reader) ([]entity.InventoryItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var items []entity.InventoryItem
	seen := make(map[entity.ItemKey]int)
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		item, err := toItem(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if prev, dup := seen[item.Key()]; dup {
			return nil, fmt.Errorf("línea %d: artículo repetido (ver línea %d)", line, prev)
		}
		seen[item.Key()] = line
		items = append(items, item)
	}
	return items, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	return idx, nil
}

func toItem(rec []string, idx map[string]int) (entity.InventoryItem, error) {
	get := func(col string) string {
		i := idx[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	item := entity.InventoryItem{
		Category:    get("category"),
		SubCategory: get("subCategory"),
		Brand:       get("brand"),
		Model:       get("model"),
	}
	if item.Category == "" || item.SubCategory == "" || item.Brand == "" || item.Model == "" {
		return item, errors.New("category, subCategory, brand y model son requeridos")
	}
	var err error
	if item.QuantityInStock, err = nonNegative(get("quantityInStock")); err != nil {
		return item, fmt.Errorf("quantityInStock: %w", err)
	}
	if item.LowQuantityAlert, err = nonNegative(get("lowQuantityAlert")); err != nil {
		return item, fmt.Errorf("lowQuantityAlert: %w", err)
	}
	item.Status = inventory.StatusFor(item.QuantityInStock, item.LowQuantityAlert)
	item.ID = uuid.NewSHA1(namespace, []byte(strings.Join([]string{item.Category, item.SubCategory, item.Brand, item.Model}, "\x00"))).String()
	return item, nil
}

func nonNegative(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("no es entero: %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negativo: %d", n)
	}
	return n, nil
}

func writeSQL(w io.Writer, items []entity.InventoryItem) error {
	var b strings.Builder
	b.WriteString("-- Inventario inicial\n")
	b.WriteString("-- Generado por cmd/seed_inventory\n\n")
	for _, it := range items {
		fmt.Fprintf(&b, "INSERT INTO inventory_items (id, category, sub_category, brand, model, quantity_in_stock, low_quantity_alert, status)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', %d, %d, '%s')\n",
			it.ID, escapeSQL(it.Category), escapeSQL(it.SubCategory), escapeSQL(it.Brand), escapeSQL(it.Model),
			it.QuantityInStock, it.LowQuantityAlert, it.Status)
		b.WriteString("ON CONFLICT (category, sub_category, brand, model) DO UPDATE SET\n")
		b.WriteString("  quantity_in_stock = EXCLUDED.quantity_in_stock,\n")
		b.WriteString("  low_quantity_alert = EXCLUDED.low_quantity_alert,\n")
		b.WriteString("  status = EXCLUDED.status,\n")
		b.WriteString("  updated_at = NOW();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
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
