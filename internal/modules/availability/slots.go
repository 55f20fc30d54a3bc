package availability

import (
	"sort"
	"time"

	"fitbook/internal/domain"
)

// SlotStep is the fixed granularity at which candidate start times are laid
// out inside an availability window.
const SlotStep = 30 * time.Minute

// GenerateSlots expands a provider's availability blocks into candidate
// slots for one calendar date. Pure: identical inputs always produce the
// identical slice, nothing is carried between calls.
//
// Rules:
//   - only available-type blocks matching the date (weekly by weekday,
//     one-offs by exact date) produce candidates;
//   - candidates advance in SlotStep increments from the block start and
//     must end at or before the block end;
//   - blocked-type blocks for the same date mark overlapping candidates
//     unavailable;
//   - if the date is today, candidates starting at or before now are
//     dropped entirely;
//   - duplicate start times collapse to one slot, an available one winning
//     over an unavailable one.
func GenerateSlots(blocks []domain.AvailabilityBlock, providerID int64, date time.Time, duration time.Duration, now time.Time) []domain.Slot {
	if duration <= 0 {
		return []domain.Slot{}
	}

	var open, closed []domain.AvailabilityBlock
	for _, b := range blocks {
		if b.ProviderID != providerID || !b.AppliesTo(date) {
			continue
		}
		switch b.BlockType {
		case domain.BlockAvailable:
			open = append(open, b)
		case domain.BlockBlocked:
			closed = append(closed, b)
		}
	}

	sameDay := date.Year() == now.Year() && date.YearDay() == now.YearDay()

	byStart := make(map[time.Time]domain.Slot)
	for _, b := range open {
		start, end := b.WindowOn(date)
		for step := start; !step.Add(duration).After(end); step = step.Add(SlotStep) {
			if sameDay && !step.After(now) {
				continue
			}

			slot := domain.Slot{
				ProviderID: providerID,
				Start:      step,
				End:        step.Add(duration),
				Available:  !coveredByBlocked(step, step.Add(duration), closed, date),
			}

			if prev, ok := byStart[slot.Start]; ok && prev.Available {
				continue
			}
			byStart[slot.Start] = slot
		}
	}

	out := make([]domain.Slot, 0, len(byStart))
	for _, s := range byStart {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func coveredByBlocked(start, end time.Time, blocked []domain.AvailabilityBlock, date time.Time) bool {
	for _, b := range blocked {
		bStart, bEnd := b.WindowOn(date)
		if overlaps(start, end, bStart, bEnd) {
			return true
		}
	}
	return false
}

// MarkConflicts flags every candidate slot that strictly overlaps an active
// booking. Back-to-back intervals (slot end == booking start, or the
// reverse) never conflict.
func MarkConflicts(slots []domain.Slot, bookings []domain.Booking, now time.Time, holdTTL time.Duration) []domain.Slot {
	out := make([]domain.Slot, len(slots))
	copy(out, slots)

	for i := range out {
		if !out[i].Available {
			continue
		}
		for _, b := range bookings {
			if !b.Active(now, holdTTL) {
				continue
			}
			if overlaps(out[i].Start, out[i].End, b.ScheduledAt, b.EndsAt()) {
				out[i].Available = false
				break
			}
		}
	}
	return out
}

// overlaps implements the strict open-interval predicate:
// [aStart, aEnd) and [bStart, bEnd) share at least one instant.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// AvailableOnly filters the computation down to bookable slots.
func AvailableOnly(slots []domain.Slot) []domain.Slot {
	out := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
