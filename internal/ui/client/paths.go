package client

import (
	"fmt"

	komfort "github.com/komfort-mfg/komfort-admin"
)

// resource names, used in metrics labels and as the last element of the collection path
const (
	resourceProducts      = "products"
	resourcePartners      = "partners"
	resourceSuppliers     = "suppliers"
	resourceMaterials     = "materials"
	resourceEmployees     = "employees"
	resourceWorkshops     = "workshops"
	resourceProductTypes  = "product-types"
	resourceMaterialTypes = "material-types"
	resourceRawMaterial   = "raw-material"
	resourceHealth        = "health"
)

// CollectionPath returns the REST collection path for a resource, e.g. /api/products
func CollectionPath(resource string) string {
	return komfort.APIPathPrefix + "/" + resource
}

// ItemPath returns the REST item path for a resource, e.g. /api/products/7
func ItemPath(resource string, id int64) string {
	return fmt.Sprintf("%s/%d", CollectionPath(resource), id)
}
