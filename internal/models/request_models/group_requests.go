package request_models

type CreateGroupRequest struct {
	Name         string `json:"name" binding:"required,min=3,max=100"`
	Description  string `json:"description" binding:"max=500"`
	Announcement string `json:"announcement" binding:"max=1000"`
	IsOpen       bool   `json:"is_open"`
}

type ReviewApplicationRequest struct {
	// "approved" or "rejected"
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}
