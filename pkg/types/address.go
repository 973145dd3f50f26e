package types

import "strings"

// ShippingAddress is the structured destination captured at checkout. It is
// stored on the order row as JSON via the gorm serializer.
type ShippingAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Complete reports whether every field carries a non-blank value.
func (a ShippingAddress) Complete() bool {
	fields := []string{a.Name, a.Address, a.City, a.Zip, a.Country}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// MissingFields lists the blank fields, in declaration order.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", a.Name},
		{"address", a.Address},
		{"city", a.City},
		{"zip", a.Zip},
		{"country", a.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
