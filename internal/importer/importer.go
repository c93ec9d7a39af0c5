// Package importer loads the workshop and product spreadsheets into the backend through the api client.
//
// Each sheet is read from its first worksheet. The first row holds the column headings,
// every following non-empty row is created with one api call. A failing row does not stop the run.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
)

// column headings
const (
	colWorkshopName    = "Название цеха"
	colWorkshopType    = "Тип цеха"
	colWorkersCount    = "Количество человек для производства"
	colProductName     = "Наименование продукции"
	colArticle         = "Артикул"
	colMinPartnerPrice = "Минимальная стоимость для партнера"
	colProductType     = "Тип продукции"
	colMaterialType    = "Основной материал"
)

// API is the part of the client used by the importer
type API interface {
	FetchProductTypes(ctx context.Context) ([]client.LookupItem, error)
	FetchMaterialTypes(ctx context.Context) ([]client.LookupItem, error)
	CreateWorkshop(ctx context.Context, payload client.WorkshopWritePayload) (*client.Workshop, error)
	CreateProduct(ctx context.Context, payload client.ProductWritePayload) (*client.ProductWriteResult, error)
}

// RowError describes a row that was not imported. Row is the 1-based spreadsheet row.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Result counts the outcome of an import run
type Result struct {
	Created int
	Failed  int
	Errors  []RowError
}

func (r *Result) fail(row int, msg string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Row: row, Message: msg})
}

type Importer struct {
	api    API
	logger *slog.Logger
}

func New(api API, logger *slog.Logger) *Importer {
	return &Importer{api: api, logger: logger}
}

// Workshops creates one workshop per row of the workshop sheet
func (im *Importer) Workshops(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	sheet, err := readSheet(r, colWorkshopName, colWorkshopType, colWorkersCount)
	if err != nil {
		return res, err
	}

	for _, row := range sheet.rows {
		name := row.get(colWorkshopName)
		if name == "" {
			res.fail(row.number, "не указано название цеха")
			continue
		}

		payload := client.WorkshopWritePayload{Name: name}
		if t := row.get(colWorkshopType); t != "" {
			payload.WorkshopType = &t
		}
		if v := row.get(colWorkersCount); v != "" {
			n, err := parseCount(v)
			if err != nil {
				res.fail(row.number, fmt.Sprintf("%s: %v", colWorkersCount, err))
				continue
			}
			payload.WorkersCount = &n
		}

		if _, err := im.api.CreateWorkshop(ctx, payload); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			im.rowFailed(&res, row.number, err)
			continue
		}
		res.Created++
		im.logger.Debug("workshop imported", slog.Int("row", row.number), slog.String("name", name))
	}

	im.logger.Info("workshop import finished", slog.Int("created", res.Created), slog.Int("failed", res.Failed))
	return res, nil
}

// Products creates one product per row of the product sheet. Type names are resolved through the lookup endpoints.
func (im *Importer) Products(ctx context.Context, r io.Reader) (Result, error) {
	var res Result

	sheet, err := readSheet(r, colProductName, colArticle, colMinPartnerPrice, colProductType, colMaterialType)
	if err != nil {
		return res, err
	}

	productTypes, err := im.api.FetchProductTypes(ctx)
	if err != nil {
		return res, fmt.Errorf("fetching product types: %w", err)
	}
	materialTypes, err := im.api.FetchMaterialTypes(ctx)
	if err != nil {
		return res, fmt.Errorf("fetching material types: %w", err)
	}

	for _, row := range sheet.rows {
		payload, msg := parseProductRow(row, productTypes, materialTypes)
		if msg != "" {
			res.fail(row.number, msg)
			im.logger.Warn("product row skipped", slog.Int("row", row.number), slog.String("reason", msg))
			continue
		}

		if _, err := im.api.CreateProduct(ctx, payload); err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			im.rowFailed(&res, row.number, err)
			continue
		}
		res.Created++
		im.logger.Debug("product imported", slog.Int("row", row.number), slog.String("name", payload.Name))
	}

	im.logger.Info("product import finished", slog.Int("created", res.Created), slog.Int("failed", res.Failed))
	return res, nil
}

func parseProductRow(row sheetRow, productTypes, materialTypes []client.LookupItem) (client.ProductWritePayload, string) {
	var payload client.ProductWritePayload

	payload.Name = row.get(colProductName)
	if payload.Name == "" {
		return payload, "не указано наименование продукции"
	}
	payload.Article = row.get(colArticle)

	price, err := decimal.NewFromString(strings.ReplaceAll(row.get(colMinPartnerPrice), ",", "."))
	if err != nil {
		return payload, fmt.Sprintf("%s: некорректное число %q", colMinPartnerPrice, row.get(colMinPartnerPrice))
	}
	payload.MinPartnerPrice = price.Round(2)

	typeName := row.get(colProductType)
	id, ok := client.LookupID(productTypes, typeName)
	if !ok {
		return payload, "не найден тип продукции: " + typeName
	}
	payload.ProductTypeID = id

	materialName := row.get(colMaterialType)
	if id, ok = client.LookupID(materialTypes, materialName); !ok {
		return payload, "не найден тип материала: " + materialName
	}
	payload.MaterialTypeID = id

	return payload, ""
}

// rowFailed records an api failure using the message the ui would show
func (im *Importer) rowFailed(res *Result, row int, err error) {
	msg := err.Error()
	var ce *client.ClientError
	if errors.As(err, &ce) {
		msg = ce.UserMessage
		im.logger.Warn("row rejected", slog.Int("row", row), slog.Any("error", ce))
	} else {
		im.logger.Warn("row rejected", slog.Int("row", row), slog.String("error", msg))
	}
	res.fail(row, msg)
}

// parseCount accepts whole numbers, also when the spreadsheet stores them as "5.0"
func parseCount(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(v, ",", "."))
	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("ожидается целое число, получено %q", v)
	}
	return int(d.IntPart()), nil
}

type sheetRow struct {
	number int
	cells  map[string]string
}

func (r sheetRow) get(column string) string {
	return r.cells[column]
}

type sheet struct {
	rows []sheetRow
}

// readSheet reads the first worksheet. Every required column must be present in the heading row.
func readSheet(r io.Reader, required ...string) (sheet, error) {
	var s sheet

	f, err := excelize.OpenReader(r)
	if err != nil {
		return s, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return s, errors.New("workbook has no sheets")
	}

	// raw values, so number formats like "#,##0.00" do not leak into the parsed text
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return s, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return s, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns := make(map[string]int, len(rows[0]))
	for i, heading := range rows[0] {
		columns[strings.TrimSpace(heading)] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, strconv.Quote(name))
		}
	}
	if len(missing) > 0 {
		return s, fmt.Errorf("sheet %q is missing columns: %s", sheets[0], strings.Join(missing, ", "))
	}

	for i, cells := range rows[1:] {
		row := sheetRow{number: i + 2, cells: make(map[string]string, len(required))}
		empty := true
		for _, name := range required {
			idx := columns[name]
			if idx < len(cells) {
				v := strings.TrimSpace(cells[idx])
				row.cells[name] = v
				if v != "" {
					empty = false
				}
			}
		}
		if !empty {
			s.rows = append(s.rows, row)
		}
	}
	return s, nil
}
