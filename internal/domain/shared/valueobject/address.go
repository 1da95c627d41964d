package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a postal address as it appears on
// an invoice. It is immutable - all operations return new Address instances.
type Address struct {
	line1      string
	line2      string
	city       string
	state      string
	postalCode string
	country    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithLine2 sets the second address line
func WithLine2(line2 string) AddressOption {
	return func(a *Address) {
		a.line2 = strings.TrimSpace(line2)
	}
}

// WithState sets the state or region
func WithState(state string) AddressOption {
	return func(a *Address) {
		a.state = strings.TrimSpace(state)
	}
}

// WithPostalCode sets the postal code
func WithPostalCode(postalCode string) AddressOption {
	return func(a *Address) {
		a.postalCode = strings.TrimSpace(postalCode)
	}
}

// WithCountry sets the country
func WithCountry(country string) AddressOption {
	return func(a *Address) {
		a.country = strings.TrimSpace(country)
	}
}

// NewAddress creates a new Address. Line1 and city are required when any
// field is set; everything else is optional.
func NewAddress(line1, city string, opts ...AddressOption) (Address, error) {
	line1 = strings.TrimSpace(line1)
	city = strings.TrimSpace(city)

	if line1 == "" {
		return Address{}, fmt.Errorf("address line cannot be empty")
	}
	if len(line1) > 200 {
		return Address{}, fmt.Errorf("address line cannot exceed 200 characters")
	}
	if city == "" {
		return Address{}, fmt.Errorf("city cannot be empty")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}

	addr := Address{
		line1: line1,
		city:  city,
	}
	for _, opt := range opts {
		opt(&addr)
	}

	if len(addr.postalCode) > 20 {
		return Address{}, fmt.Errorf("postal code cannot exceed 20 characters")
	}
	if len(addr.country) > 100 {
		return Address{}, fmt.Errorf("country cannot exceed 100 characters")
	}
	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(line1, city string, opts ...AddressOption) Address {
	addr, err := NewAddress(line1, city, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Line1 returns the first address line
func (a Address) Line1() string { return a.line1 }

// Line2 returns the second address line
func (a Address) Line2() string { return a.line2 }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the state or region
func (a Address) State() string { return a.state }

// PostalCode returns the postal code
func (a Address) PostalCode() string { return a.postalCode }

// Country returns the country
func (a Address) Country() string { return a.country }

// IsEmpty returns true if the address has no content
func (a Address) IsEmpty() bool {
	return a.line1 == "" && a.city == ""
}

// Lines returns the address as display lines for rendering
func (a Address) Lines() []string {
	if a.IsEmpty() {
		return nil
	}
	lines := []string{a.line1}
	if a.line2 != "" {
		lines = append(lines, a.line2)
	}
	locality := a.city
	if a.state != "" {
		locality += ", " + a.state
	}
	if a.postalCode != "" {
		locality += " " + a.postalCode
	}
	lines = append(lines, locality)
	if a.country != "" {
		lines = append(lines, a.country)
	}
	return lines
}

// String returns a single-line representation of the address
func (a Address) String() string {
	return strings.Join(a.Lines(), ", ")
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a.line1 == other.line1 &&
		a.line2 == other.line2 &&
		a.city == other.city &&
		a.state == other.state &&
		a.postalCode == other.postalCode &&
		a.country == other.country
}

// addressJSON is used for JSON marshaling/unmarshaling
type addressJSON struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Line1:      a.line1,
		Line2:      a.line2,
		City:       a.city,
		State:      a.state,
		PostalCode: a.postalCode,
		Country:    a.country,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Empty objects decode to
// EmptyAddress; anything else goes through NewAddress for validation.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Line1 == "" && v.City == "" {
		*a = EmptyAddress()
		return nil
	}
	addr, err := NewAddress(v.Line1, v.City,
		WithLine2(v.Line2), WithState(v.State),
		WithPostalCode(v.PostalCode), WithCountry(v.Country))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage
// Stores as JSON string
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}
	return json.Unmarshal(data, a)
}
