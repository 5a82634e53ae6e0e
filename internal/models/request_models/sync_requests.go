package request_models

type SyncRequest struct {
	// Re-pull the last N days instead of resuming from the checkpoint.
	Days int `json:"days" binding:"omitempty,min=0,max=3650"`
	// Bypass the minimum-resync-interval check.
	Force bool `json:"force"`
}
