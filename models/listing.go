package models

// Listing is a bookable unit from the static catalog. Immutable after load.
type Listing struct {
	ID           string `bson:"id" mapstructure:"id" json:"id"`
	Title        string `bson:"title" mapstructure:"title" json:"title"`
	NightlyPrice int64  `bson:"nightly_price" mapstructure:"nightly_price" json:"nightlyPrice"` // minor currency units per night
	CleaningFee  int64  `bson:"cleaning_fee" mapstructure:"cleaning_fee" json:"cleaningFee"`    // flat fee in minor currency units
	Currency     string `bson:"currency" mapstructure:"currency" json:"currency"`               // ISO 4217, e.g. "usd"
}

// TotalPrice computes the charge for a stay of the given number of nights.
func (l Listing) TotalPrice(nights int) int64 {
	return l.NightlyPrice*int64(nights) + l.CleaningFee
}
