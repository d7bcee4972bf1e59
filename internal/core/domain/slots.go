package domain

// Slot is a fixed-length bookable interval for a service on a date.
// Times are wall-clock HH:mm strings, ordered ascending by StartTime.
type Slot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
}

// SlotAvailability is the result of a slot query for one
// (business, service, date) key.
type SlotAvailability struct {
	Date         string `json:"date"`
	BusinessOpen bool   `json:"businessOpen"`
	OpenTime     string `json:"openTime,omitempty"`
	CloseTime    string `json:"closeTime,omitempty"`
	Slots        []Slot `json:"slots"`
}

// AvailableSlots returns the choosable subset, preserving order. A closed
// business offers nothing regardless of the slot payload.
func (a SlotAvailability) AvailableSlots() []Slot {
	if !a.BusinessOpen {
		return nil
	}
	var out []Slot
	for _, s := range a.Slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}
