package skuquery

// Conventional record fields read when reporting a matching SKU.
const (
	FieldSKUName           = "skuName"
	FieldProduct           = "product"
	FieldLicenseAttributes = "licenseAttributes"
	FieldDescription       = "description"
)

// SKU describes one record that holds the queried property.
type SKU struct {
	// SKUName and Product are copied verbatim from the record and omitted
	// when the record lacks them.
	SKUName       any    `json:"skuName,omitzero"`
	Product       any    `json:"product,omitzero"`
	Description   string `json:"description"`
	PropertyPath  string `json:"propertyPath"`
	PropertyValue any    `json:"propertyValue"`
}

// QueryReport is the result of FindFirstMatches. SKUs is never nil.
type QueryReport struct {
	Property string `json:"property"`
	Found    bool   `json:"found"`
	Count    int    `json:"count"`
	SKUs     []SKU  `json:"skus"`
}

// FindFirstMatches reports, in collection order, each record that contains
// property, together with the first occurrence found in it. Records without
// the property are left out.
func FindFirstMatches(c Collection, property string) *QueryReport {
	r := &QueryReport{Property: property, SKUs: []SKU{}}
	for _, rec := range c {
		m, ok := FindFirst(rec, property)
		if !ok {
			continue
		}
		sku := SKU{PropertyPath: m.Path, PropertyValue: m.Value}
		sku.SKUName, _ = field(rec, FieldSKUName)
		sku.Product, _ = field(rec, FieldProduct)
		sku.Description = description(rec)
		r.SKUs = append(r.SKUs, sku)
	}
	r.Count = len(r.SKUs)
	r.Found = r.Count > 0
	return r
}

func description(rec any) string {
	attrs, _ := field(rec, FieldLicenseAttributes)
	v, _ := fieldFold(attrs, FieldDescription)
	s, _ := v.(string)
	return s
}
