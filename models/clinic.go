package models

import "time"

// ClinicAddress is the embedded address document of a clinic.
type ClinicAddress struct {
	Street  string `bson:"street" json:"street"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country" json:"country"`
}

// OperatingHours is one weekday's open/close window for a clinic.
type OperatingHours struct {
	Day       int    `bson:"day" json:"day"` // 0 = Sunday .. 6 = Saturday
	OpenTime  string `bson:"openTime" json:"openTime"`
	CloseTime string `bson:"closeTime" json:"closeTime"`
	IsClosed  bool   `bson:"isClosed" json:"isClosed"`
}

// Clinic is a physical location where doctors consult.
type Clinic struct {
	ID             string           `bson:"id" json:"id"`
	Name           string           `bson:"name" json:"name"`
	Description    string           `bson:"description,omitempty" json:"description,omitempty"`
	Address        ClinicAddress    `bson:"address" json:"address"`
	Phone          string           `bson:"phone" json:"phone"`
	Email          string           `bson:"email,omitempty" json:"email,omitempty"`
	OperatingHours []OperatingHours `bson:"operatingHours,omitempty" json:"operatingHours,omitempty"`
	IsVerified     bool             `bson:"isVerified" json:"isVerified"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time        `bson:"updatedAt" json:"updatedAt"`
}
