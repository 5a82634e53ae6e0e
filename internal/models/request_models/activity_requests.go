package request_models

// UpdateActivityRequest covers the locally-editable activity fields. A later
// re-import overwrites these with provider-derived values again; the edit
// endpoint documents that to the caller.
type UpdateActivityRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	IsRace       *bool   `json:"is_race"`
	ChipTime     *int    `json:"chip_time" binding:"omitempty,min=0"`
	RaceDistance *string `json:"race_distance"`
}
