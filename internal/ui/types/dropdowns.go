package types

import (
	"strconv"

	"github.com/komfort-mfg/komfort-admin/internal/ui/client"
)

// =============================================================================
// DROPDOWN OPTIONS
// =============================================================================

type Option struct {
	Value string
	Label string
}

// LookupOptions converts product or material types to select options
func LookupOptions(items []client.LookupItem) []Option {
	options := make([]Option, 0, len(items))
	for _, item := range items {
		options = append(options, Option{
			Value: strconv.FormatInt(item.ID, 10),
			Label: item.Name,
		})
	}
	return options
}

func SupplierOptions(suppliers []client.Supplier) []Option {
	options := make([]Option, 0, len(suppliers))
	for _, s := range suppliers {
		options = append(options, Option{
			Value: strconv.FormatInt(s.ID, 10),
			Label: s.Name,
		})
	}
	return options
}

// PartnerTypeOptions are the legal forms accepted by the backend
func PartnerTypeOptions() []Option {
	return []Option{
		{Value: "ЗАО", Label: "ЗАО"},
		{Value: "ООО", Label: "ООО"},
		{Value: "ПАО", Label: "ПАО"},
		{Value: "ОАО", Label: "ОАО"},
	}
}
