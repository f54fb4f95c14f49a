package models

// PaymentCredentials routes checkout and webhook traffic for one host.
// Hosts without their own processor account leave these empty and fall
// back to the platform defaults.
type PaymentCredentials struct {
	SecretKey     string `mapstructure:"secret_key" json:"-"`
	SigningSecret string `mapstructure:"signing_secret" json:"-"`
}

// Host owns one or more listings and the payment routing for them.
type Host struct {
	ID           string             `mapstructure:"id" json:"id"`
	Name         string             `mapstructure:"name" json:"name"`
	Email        string             `mapstructure:"email" json:"email"`
	PasswordHash string             `mapstructure:"password_hash" json:"-"`
	SiteKey      string             `mapstructure:"site_key" json:"siteKey"` // identifies the host's property site
	ListingIDs   []string           `mapstructure:"listings" json:"listings"`
	Payment      PaymentCredentials `mapstructure:"payment" json:"-"`
}

// Owns reports whether the host owns the given listing.
func (h Host) Owns(listingID string) bool {
	for _, id := range h.ListingIDs {
		if id == listingID {
			return true
		}
	}
	return false
}
