package client

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// FieldLabels maps backend field names to the labels shown in the forms
var FieldLabels = map[string]string{
	// products
	"article":           "Артикул",
	"name":              "Наименование",
	"min_partner_price": "Стоимость",
	"product_type_id":   "Тип продукта",
	"material_type_id":  "Основной материал",

	// partners
	"partner_type":  "Тип партнера",
	"company_name":  "Наименование компании",
	"legal_address": "Юридический адрес",
	"inn":           "ИНН",
	"director_name": "ФИО директора",
	"phone":         "Телефон",
	"email":         "Email",
	"logo_url":      "Логотип",
	"rating":        "Рейтинг",
	"sales_places":  "Места продаж",

	// suppliers and materials
	"supplier_type":       "Тип поставщика",
	"supplier":            "Поставщик",
	"unit":                "Единица измерения",
	"quantity_in_package": "Количество в упаковке",
	"description":         "Описание",
	"image_url":           "Изображение",
	"cost":                "Цена",
	"stock_quantity":      "Количество на складе",
	"min_quantity":        "Минимальное количество",

	// employees
	"full_name":     "ФИО",
	"birth_date":    "Дата рождения",
	"passport_data": "Паспортные данные",
	"bank_details":  "Банковские реквизиты",
	"has_family":    "Наличие семьи",
	"health_status": "Состояние здоровья",

	// workshops
	"workshop_type": "Тип цеха",
	"workers_count": "Количество человек",

	// raw material calculation
	"product_quantity": "Количество продукции",
	"parameter_one":    "Параметр 1",
	"parameter_two":    "Параметр 2",
}

// GenericErrorMessage is used when the error body carries nothing displayable
func GenericErrorMessage(status int) string {
	return fmt.Sprintf("Request error (HTTP %d).", status)
}

// ErrorMessage turns an error response into one human-readable message.
//
// body is the raw JSON error body, nil when the response had none (or it was not JSON).
//   - {"detail": "..."} returns the detail verbatim
//   - {"field": ["msg", ...], ...} returns one "label: msg, msg" line per non-empty field, in body order
//   - ["msg", ...] (non-field errors) returns the messages one per line
//
// anything else falls back to GenericErrorMessage.
func ErrorMessage(status int, body []byte) string {
	if body == nil || !gjson.ValidBytes(body) {
		return GenericErrorMessage(status)
	}

	parsed := gjson.ParseBytes(body)

	var parts []string
	switch {
	case parsed.IsObject():
		if detail := parsed.Get("detail"); detail.Type == gjson.String {
			return detail.String()
		}
		// a repeated key keeps its first position and its last value
		var keys []string
		values := map[string]gjson.Result{}
		parsed.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, seen := values[k]; !seen {
				keys = append(keys, k)
			}
			values[k] = value
			return true
		})
		for _, k := range keys {
			if text := valueText(values[k]); text != "" {
				parts = append(parts, fieldLabel(k)+": "+text)
			}
		}
	case parsed.IsArray():
		parsed.ForEach(func(_, value gjson.Result) bool {
			if text := valueText(value); text != "" {
				parts = append(parts, text)
			}
			return true
		})
	}

	if len(parts) == 0 {
		return GenericErrorMessage(status)
	}
	return strings.Join(parts, "\n")
}

func fieldLabel(key string) string {
	if label, ok := FieldLabels[key]; ok {
		return label
	}
	return key
}

// valueText renders a field value, empty values (null, false, 0, "", [], {}) render as ""
func valueText(value gjson.Result) string {
	switch value.Type {
	case gjson.Null, gjson.False:
		return ""
	case gjson.True:
		return "true"
	case gjson.String:
		return value.String()
	case gjson.Number:
		if value.Num == 0 {
			return ""
		}
		return value.Raw
	}

	if value.IsArray() {
		elems := value.Array()
		if len(elems) == 0 {
			return ""
		}
		texts := make([]string, 0, len(elems))
		for _, elem := range elems {
			texts = append(texts, elementText(elem))
		}
		return strings.Join(texts, ", ")
	}

	// nested serializer errors
	var nested []string
	value.ForEach(func(key, v gjson.Result) bool {
		if text := valueText(v); text != "" {
			nested = append(nested, fieldLabel(key.String())+": "+text)
		}
		return true
	})
	return strings.Join(nested, "; ")
}

func elementText(elem gjson.Result) string {
	switch elem.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return elem.String()
	case gjson.JSON:
		return valueText(elem)
	default:
		return elem.Raw
	}
}
