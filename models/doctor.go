package models

import "time"

// Doctor is the professional profile behind a user account.
type Doctor struct {
	ID                     string    `bson:"id" json:"id"`
	UserID                 string    `bson:"userId" json:"userId"`
	LicenseNumber          string    `bson:"licenseNumber" json:"licenseNumber"`
	Specializations        []string  `bson:"specializations,omitempty" json:"specializations,omitempty"`
	YearsOfExperience      int       `bson:"yearsOfExperience" json:"yearsOfExperience"`
	Bio                    string    `bson:"bio,omitempty" json:"bio,omitempty"`
	ConsultationFee        float64   `bson:"consultationFee" json:"consultationFee"`
	HomeVisitFee           float64   `bson:"homeVisitFee,omitempty" json:"homeVisitFee,omitempty"`
	OffersTeleConsultation bool      `bson:"offersTeleConsultation" json:"offersTeleConsultation"`
	OffersHomeVisit        bool      `bson:"offersHomeVisit" json:"offersHomeVisit"`
	IsVerified             bool      `bson:"isVerified" json:"isVerified"`
	AverageRating          float64   `bson:"averageRating,omitempty" json:"averageRating,omitempty"`
	TotalRatings           int       `bson:"totalRatings,omitempty" json:"totalRatings,omitempty"`
	CreatedAt              time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updatedAt" json:"updatedAt"`
}

// UpdateDoctorProfileRequest carries the profile fields a doctor may edit.
// Pointer fields distinguish "leave unchanged" from an explicit zero, so a
// doctor can clear a fee without wiping the rest of the profile.
type UpdateDoctorProfileRequest struct {
	LicenseNumber          *string   `json:"licenseNumber"`
	Specializations        *[]string `json:"specializations"`
	YearsOfExperience      *int      `json:"yearsOfExperience"`
	Bio                    *string   `json:"bio"`
	ConsultationFee        *float64  `json:"consultationFee"`
	HomeVisitFee           *float64  `json:"homeVisitFee"`
	OffersTeleConsultation *bool     `json:"offersTeleConsultation"`
	OffersHomeVisit        *bool     `json:"offersHomeVisit"`
}
