package scheduling

import "medibook/models"

// FilterAvailable returns the slots that do not overlap any busy interval.
// Both sides are treated as half-open ranges, so a slot ending exactly when
// an appointment starts stays available. The input slice is not mutated and
// relative order is preserved.
//
// Pairwise comparison is deliberate: daily appointment volumes are tens of
// intervals, where a sort-and-sweep buys nothing.
func FilterAvailable(slots []models.Slot, busy []models.BusyInterval) []models.Slot {
	if len(busy) == 0 {
		out := make([]models.Slot, len(slots))
		copy(out, slots)
		return out
	}

	out := make([]models.Slot, 0, len(slots))
	for _, s := range slots {
		taken := false
		for _, b := range busy {
			if Overlaps(s.Start, s.End, b.Start, b.End) {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, s)
		}
	}
	return out
}

// ActiveAppointments reduces raw appointments to the busy intervals that
// occupy real calendar time. Cancelled and no-show appointments never count;
// whether completed ones do depends on the call site (validating a future
// booking excludes them, rebooking past time may not), so it is an explicit
// parameter rather than inferred.
func ActiveAppointments(appts []models.Appointment, includeCompleted bool) []models.BusyInterval {
	busy := make([]models.BusyInterval, 0, len(appts))
	for _, a := range appts {
		switch a.Status {
		case models.AppointmentStatusCancelled, models.AppointmentStatusNoShow:
			continue
		case models.AppointmentStatusCompleted:
			if !includeCompleted {
				continue
			}
		}
		busy = append(busy, models.BusyInterval{
			ID:     a.ID,
			Start:  a.ScheduledStart,
			End:    a.ScheduledEnd,
			Status: a.Status,
		})
	}
	return busy
}
