package handlers

import (
	"github.com/komfort-mfg/komfort-admin/internal/ui/routes"
)

// Views binds every page of the route table to its handlers
func (h *HandlerService) Views() routes.Views {
	return routes.Views{
		routes.Home:             {Show: h.HandleHome},
		routes.Products:         {Show: h.HandleProducts},
		routes.ProductNew:       {Show: h.HandleProductNew, Submit: h.HandleProductCreate},
		routes.ProductEdit:      {Show: h.HandleProductEdit, Submit: h.HandleProductUpdate, Delete: h.HandleProductDelete},
		routes.ProductWorkshops: {Show: h.HandleProductWorkshops},
		routes.Partners:         {Show: h.HandlePartners},
		routes.PartnerNew:       {Show: h.HandlePartnerNew, Submit: h.HandlePartnerCreate},
		routes.PartnerEdit:      {Show: h.HandlePartnerEdit, Submit: h.HandlePartnerUpdate, Delete: h.HandlePartnerDelete},
		routes.Warehouse:        {Show: h.HandleWarehouse},
		routes.SupplierNew:      {Show: h.HandleSupplierNew, Submit: h.HandleSupplierCreate},
		routes.SupplierEdit:     {Show: h.HandleSupplierEdit, Submit: h.HandleSupplierUpdate, Delete: h.HandleSupplierDelete},
		routes.MaterialNew:      {Show: h.HandleMaterialNew, Submit: h.HandleMaterialCreate},
		routes.MaterialEdit:     {Show: h.HandleMaterialEdit, Submit: h.HandleMaterialUpdate, Delete: h.HandleMaterialDelete},
		routes.Production:       {Show: h.HandleProduction, Submit: h.HandleCalculate},
		routes.WorkshopNew:      {Show: h.HandleWorkshopNew, Submit: h.HandleWorkshopCreate},
		routes.WorkshopEdit:     {Show: h.HandleWorkshopEdit, Submit: h.HandleWorkshopUpdate, Delete: h.HandleWorkshopDelete},
		routes.Staff:            {Show: h.HandleStaff},
		routes.EmployeeNew:      {Show: h.HandleEmployeeNew, Submit: h.HandleEmployeeCreate},
		routes.EmployeeEdit:     {Show: h.HandleEmployeeEdit, Submit: h.HandleEmployeeUpdate, Delete: h.HandleEmployeeDelete},
		routes.NotFound:         {Show: h.HandleNotFound},
	}
}
