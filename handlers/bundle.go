package handlers

// HandlerBundle aggregates the handler groups the router wires up.
type HandlerBundle struct {
	Auth          *AuthHandler
	Schedules     *ScheduleHandler
	Appointments  *AppointmentHandler
	Clinics       *ClinicHandler
	Doctors       *DoctorHandler
	Prescriptions *PrescriptionHandler
	Ratings       *RatingHandler
}
