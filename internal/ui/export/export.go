// Package export writes resource lists as xlsx workbooks
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
)

// ContentType of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one exported list: a header row and one row per item
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Write renders sheet as a single-sheet workbook with a bold, frozen header row
func Write(w io.Writer, sheet Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet.Name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if len(sheet.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(sheet.Header), 1)
		if err != nil {
			return fmt.Errorf("header range: %w", err)
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("styling header: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(sheet.Header))
		if err := f.SetColWidth(sheet.Name, "A", lastCol, 22); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if err := f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet.Name, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// FileName is the download name for an export made at now, e.g. products_20250101_120000.xlsx
func FileName(base string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", base, now.Format("20060102_150405"))
}

func optional(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}

func Products(items []client.ProductListItem) Sheet {
	s := Sheet{
		Name: "Продукция",
		Header: []string{
			"Артикул", "Наименование продукции", "Тип продукции", "Основной материал",
			"Минимальная стоимость для партнера", "Время изготовления, ч",
		},
	}
	for _, p := range items {
		var price any = ""
		if p.MinPartnerPrice.Valid {
			price = p.MinPartnerPrice.Decimal.InexactFloat64()
		}
		s.Rows = append(s.Rows, []any{
			optional(p.Article), p.Name, p.ProductType, p.MaterialType, price, p.ManufactureTimeHours,
		})
	}
	return s
}

func Partners(items []client.Partner) Sheet {
	s := Sheet{
		Name: "Партнеры",
		Header: []string{
			"Тип партнера", "Наименование партнера", "Директор", "Электронная почта партнера",
			"Телефон партнера", "Юридический адрес партнера", "ИНН", "Рейтинг",
		},
	}
	for _, p := range items {
		s.Rows = append(s.Rows, []any{
			p.PartnerType, p.CompanyName, p.DirectorName, p.Email, p.Phone, p.LegalAddress, p.INN, p.Rating,
		})
	}
	return s
}

func Materials(items []client.Material) Sheet {
	s := Sheet{
		Name: "Материалы",
		Header: []string{
			"Наименование", "Тип материала", "Поставщик", "Единица измерения", "Количество в упаковке",
			"Цена", "Количество на складе", "Минимальное количество",
		},
	}
	for _, m := range items {
		s.Rows = append(s.Rows, []any{
			m.Name, m.MaterialType, m.SupplierName, m.Unit, optionalInt(m.QuantityInPackage),
			m.Cost.InexactFloat64(), m.StockQuantity, m.MinQuantity,
		})
	}
	return s
}

func Employees(items []client.Employee) Sheet {
	s := Sheet{
		Name: "Сотрудники",
		Header: []string{
			"ФИО", "Дата рождения", "Паспортные данные", "Банковские реквизиты", "Наличие семьи", "Состояние здоровья",
		},
	}
	for _, e := range items {
		family := "Нет"
		if e.HasFamily {
			family = "Да"
		}
		s.Rows = append(s.Rows, []any{
			e.FullName, optional(e.BirthDate), e.PassportData, e.BankDetails, family, e.HealthStatus,
		})
	}
	return s
}
