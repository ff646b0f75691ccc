package models

import "time"

// ScheduleBlock is one weekly recurring availability window inside a
// doctor-clinic pairing. Times of day are stored as minutes from midnight
// (e.g., 540 for 9:00 AM), the same reference frame the generator uses.
type ScheduleBlock struct {
	ID                  string `bson:"id" json:"id"`
	DayOfWeek           int    `bson:"dayOfWeek" json:"dayOfWeek"`   // 0 = Sunday .. 6 = Saturday
	StartMinute         int    `bson:"startMinute" json:"startMinute"`
	EndMinute           int    `bson:"endMinute" json:"endMinute"`
	SlotDurationMinutes int    `bson:"slotDurationMinutes" json:"slotDurationMinutes"`
	MaxPatientsPerSlot  int    `bson:"maxPatientsPerSlot,omitempty" json:"maxPatientsPerSlot,omitempty"` // 0 = unlimited
	IsActive            bool   `bson:"isActive" json:"isActive"`
}

// DoctorClinic links a doctor to a clinic they consult at, carrying the
// weekly schedule blocks for that pairing as an embedded array.
type DoctorClinic struct {
	ID                   string          `bson:"id" json:"id"`
	DoctorID             string          `bson:"doctorId" json:"doctorId"`
	ClinicID             string          `bson:"clinicId" json:"clinicId"`
	ConsultationFee      float64         `bson:"consultationFee" json:"consultationFee"`
	ConsultationDuration int             `bson:"consultationDuration" json:"consultationDuration"` // minutes, default slot length
	IsActive             bool            `bson:"isActive" json:"isActive"`
	Schedules            []ScheduleBlock `bson:"schedules" json:"schedules"`
	CreatedAt            time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time       `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleBlockInput is the payload shape for setting up weekly blocks.
// Times of day arrive as "HH:MM" strings and are converted to minutes.
type ScheduleBlockInput struct {
	DayOfWeek          int    `json:"dayOfWeek" binding:"min=0,max=6"`
	StartTime          string `json:"startTime" binding:"required"`
	EndTime            string `json:"endTime" binding:"required"`
	SlotDuration       int    `json:"slotDuration"`
	MaxPatientsPerSlot int    `json:"maxPatients"`
}

// SetClinicScheduleRequest defines the payload for replacing a doctor's
// weekly schedule at one clinic.
type SetClinicScheduleRequest struct {
	ClinicID             string               `json:"clinicId" binding:"required"`
	ConsultationFee      float64              `json:"consultationFee"`
	ConsultationDuration int                  `json:"consultationDuration" binding:"required,gt=0"`
	Schedules            []ScheduleBlockInput `json:"schedules" binding:"required"`
}
