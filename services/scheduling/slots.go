package scheduling

import (
	"fmt"
	"sort"
	"time"

	"medibook/models"
)

// BlockIssue describes a malformed schedule block that was skipped during
// generation. The query still succeeds; callers log these as data-integrity
// warnings.
type BlockIssue struct {
	BlockID string
	Reason  string
}

// GenerateSlots expands the weekly blocks of one doctor-clinic pairing over
// the inclusive date range [rangeStart, rangeEnd] into discrete slots.
//
// For each calendar day in range, every active block matching that weekday
// produces a run of fixed-duration slots walked forward from the block's
// start; a trailing partial slot that would overrun the block end is
// discarded, never truncated. Inactive blocks are ignored; malformed blocks
// (start >= end, non-positive duration) are skipped and reported. Blocks are
// not assumed pre-sorted; overlapping blocks on the same day are a caller
// data issue and their slots are all emitted as-is.
//
// All timestamps are built by combining the day with the block's
// minutes-from-midnight fields in rangeStart's location; no timezone
// conversion happens here.
func GenerateSlots(clinicID string, blocks []models.ScheduleBlock, rangeStart, rangeEnd time.Time) ([]models.Slot, []BlockIssue, error) {
	if rangeStart.After(rangeEnd) {
		return nil, nil, newPreconditionError("dateRange", "start date is after end date")
	}

	var issues []BlockIssue
	valid := make([]models.ScheduleBlock, 0, len(blocks))
	for _, b := range blocks {
		if !b.IsActive {
			continue
		}
		switch {
		case b.StartMinute >= b.EndMinute:
			issues = append(issues, BlockIssue{BlockID: b.ID, Reason: fmt.Sprintf("start minute %d is not before end minute %d", b.StartMinute, b.EndMinute)})
		case b.SlotDurationMinutes <= 0:
			issues = append(issues, BlockIssue{BlockID: b.ID, Reason: fmt.Sprintf("slot duration %d is not positive", b.SlotDurationMinutes)})
		case b.DayOfWeek < 0 || b.DayOfWeek > 6:
			issues = append(issues, BlockIssue{BlockID: b.ID, Reason: fmt.Sprintf("day of week %d is out of range", b.DayOfWeek)})
		default:
			valid = append(valid, b)
		}
	}

	loc := rangeStart.Location()
	first := time.Date(rangeStart.Year(), rangeStart.Month(), rangeStart.Day(), 0, 0, 0, 0, loc)
	last := time.Date(rangeEnd.Year(), rangeEnd.Month(), rangeEnd.Day(), 0, 0, 0, 0, loc)

	var slots []models.Slot
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		weekday := int(day.Weekday())
		dayStr := day.Format("2006-01-02")
		dayStart := len(slots)

		for _, b := range valid {
			if b.DayOfWeek != weekday {
				continue
			}
			blockEnd := day.Add(time.Duration(b.EndMinute) * time.Minute)
			step := time.Duration(b.SlotDurationMinutes) * time.Minute
			for cur := day.Add(time.Duration(b.StartMinute) * time.Minute); ; cur = cur.Add(step) {
				slotEnd := cur.Add(step)
				if slotEnd.After(blockEnd) {
					break
				}
				slots = append(slots, models.Slot{
					ClinicID: clinicID,
					Date:     dayStr,
					Start:    cur,
					End:      slotEnd,
				})
			}
		}

		// Independent block runs on the same day come out in block order;
		// present them start-ascending.
		daySlots := slots[dayStart:]
		sort.SliceStable(daySlots, func(i, j int) bool {
			return daySlots[i].Start.Before(daySlots[j].Start)
		})
	}

	return slots, issues, nil
}
