// Package importer loads products from a CSV export into the catalog.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"jericho-storefront/internal/domain"
)

// CatalogWriter is the part of the catalog store the importer writes through.
type CatalogWriter interface {
	HasCategory(name string) bool
	AddCategory(name string) error
	Product(id int) (*domain.Product, error)
	AddProduct(p domain.Product) (*domain.Product, error)
	UpdateProduct(p domain.Product) (*domain.Product, error)
}

// Result summarises one import run.
type Result struct {
	Added      int
	Updated    int
	Categories []string
}

// Imported is the number of products written.
func (r Result) Imported() int { return r.Added + r.Updated }

// CSVImporter reads rows of
//
//	id,name,price,originalPrice,category,description,image,isNew,isAvailable
//
// Only name, price and category are required. A row whose id matches an
// existing product updates it; every other row adds a product with the next
// free id. Unknown categories are created.
type CSVImporter struct {
	reader  *csv.Reader
	catalog CatalogWriter
}

func NewCSVImporter(r io.Reader, catalog CatalogWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, catalog: catalog}
}

// Run imports every row. It stops at the first invalid row; rows before it
// stay imported.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range []string{"name", "price", "category"} {
		if _, ok := index[col]; !ok {
			return res, fmt.Errorf("%w: missing column %q", domain.ErrInvalidInput, col)
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", line, err)
		}
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if err := i.ensureCategory(p.Category, &res); err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
		if err := i.save(p, &res); err != nil {
			return res, fmt.Errorf("row %d: %w", line, err)
		}
	}
	return res, nil
}

func (i *CSVImporter) ensureCategory(name string, res *Result) error {
	if i.catalog.HasCategory(name) {
		return nil
	}
	if err := i.catalog.AddCategory(name); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	res.Categories = append(res.Categories, name)
	return nil
}

func (i *CSVImporter) save(p domain.Product, res *Result) error {
	if p.ID > 0 {
		if _, err := i.catalog.Product(p.ID); err == nil {
			if _, err := i.catalog.UpdateProduct(p); err != nil {
				return fmt.Errorf("update product %d: %w", p.ID, err)
			}
			res.Updated++
			return nil
		}
	}
	if _, err := i.catalog.AddProduct(p); err != nil {
		return fmt.Errorf("add product %q: %w", p.Name, err)
	}
	res.Added++
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		Name:        pick(record, index, "name"),
		Category:    pick(record, index, "category"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		IsAvailable: true,
	}
	if p.Name == "" {
		return p, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	if p.Category == "" {
		return p, fmt.Errorf("%w: category required", domain.ErrInvalidInput)
	}
	if p.Image == "" {
		p.Image = domain.DefaultProductImage
	}

	if raw := pick(record, index, "id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			return p, fmt.Errorf("%w: bad id %q", domain.ErrInvalidInput, raw)
		}
		p.ID = id
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return p, fmt.Errorf("%w: bad price %q", domain.ErrInvalidInput, pick(record, index, "price"))
	}
	p.Price = price.Round(2)

	if raw := pick(record, index, "originalPrice"); raw != "" {
		orig, err := decimal.NewFromString(raw)
		if err != nil {
			return p, fmt.Errorf("%w: bad originalPrice %q", domain.ErrInvalidInput, raw)
		}
		orig = orig.Round(2)
		p.OriginalPrice = &orig
	}

	if p.IsNew, err = boolField(record, index, "isNew", false); err != nil {
		return p, err
	}
	if p.IsAvailable, err = boolField(record, index, "isAvailable", true); err != nil {
		return p, err
	}
	return p, nil
}

func boolField(record []string, index map[string]int, key string, def bool) (bool, error) {
	raw := pick(record, index, key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def, fmt.Errorf("%w: bad %s %q", domain.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
