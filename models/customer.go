package models

import "time"

// Customer is a guest contact record captured at confirmation time,
// scoped to the host whose listing was booked.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	HostID    string    `bson:"host_id" json:"hostId"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
