package response

// SlotResponse is a single computed slot, local wall clock.
type SlotResponse struct {
	Time           string `json:"time"`
	Available      bool   `json:"available"`
	RemainingSlots int    `json:"remaining_slots"`
}

type AvailabilityResponse struct {
	IsOpen bool           `json:"is_open"`
	Date   string         `json:"date"`
	Slots  []SlotResponse `json:"slots"`
}
