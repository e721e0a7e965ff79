package schedule

// Daily bookable window. Availability search renders one-hour slots
// from opening to closing.
const (
	OpeningHour = 6
	ClosingHour = 22
)

// DaySlots returns the fixed one-hour slot grid, 06:00-07:00 through
// 21:00-22:00. The generator never produces empty ranges, which keeps
// the degenerate start==end case out of the overlap test.
func DaySlots() []TimeRange {
	slots := make([]TimeRange, 0, ClosingHour-OpeningHour)
	for hour := OpeningHour; hour < ClosingHour; hour++ {
		slots = append(slots, TimeRange{
			start: TimeOfDay(hour * MinutesPerHour),
			end:   TimeOfDay((hour + 1) * MinutesPerHour),
		})
	}
	return slots
}
