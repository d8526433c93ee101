package domain

import "strings"

// Seller is the agency contact printed in document footers.
type Seller struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// SellerDirectory resolves seller keys to contacts.
// Unknown or empty keys resolve to the default seller.
type SellerDirectory struct {
	sellers    map[string]Seller
	defaultKey string
}

// DefaultSeller is used when no seller directory is configured.
var DefaultSeller = Seller{
	Key:   "ventas",
	Name:  "Lucky Tour Ventas",
	Email: "ventas@luckytourviajes.com",
}

// NewSellerDirectory builds a directory. defaultKey must name one of sellers;
// otherwise the first seller (or DefaultSeller when empty) becomes the default.
func NewSellerDirectory(sellers []Seller, defaultKey string) *SellerDirectory {
	if len(sellers) == 0 {
		sellers = []Seller{DefaultSeller}
	}

	d := &SellerDirectory{sellers: make(map[string]Seller, len(sellers))}
	for _, s := range sellers {
		s.Key = strings.ToLower(strings.TrimSpace(s.Key))
		d.sellers[s.Key] = s
	}

	d.defaultKey = strings.ToLower(strings.TrimSpace(defaultKey))
	if _, ok := d.sellers[d.defaultKey]; !ok {
		d.defaultKey = strings.ToLower(strings.TrimSpace(sellers[0].Key))
	}
	return d
}

// Lookup returns the seller for key, case-insensitively, or the default seller.
func (d *SellerDirectory) Lookup(key string) Seller {
	if s, ok := d.sellers[strings.ToLower(strings.TrimSpace(key))]; ok {
		return s
	}
	return d.sellers[d.defaultKey]
}

// ParseSellers parses "key|name|email|phone" entries separated by ';'.
// Malformed entries (fewer than three fields) are skipped.
func ParseSellers(raw string) []Seller {
	var sellers []Seller
	for _, entry := range strings.Split(raw, ";") {
		fields := strings.Split(entry, "|")
		if len(fields) < 3 {
			continue
		}
		s := Seller{
			Key:   strings.TrimSpace(fields[0]),
			Name:  strings.TrimSpace(fields[1]),
			Email: strings.TrimSpace(fields[2]),
		}
		if len(fields) > 3 {
			s.Phone = strings.TrimSpace(fields[3])
		}
		if s.Key == "" {
			continue
		}
		sellers = append(sellers, s)
	}
	return sellers
}
