package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type SignUpRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=3,max=50"`
	UseMetric   *bool   `json:"use_metric"`
	BirthYear   *int    `json:"birth_year" binding:"omitempty,min=1900,max=2100"`
	Gender      *string `json:"gender" binding:"omitempty,oneof=M F"`
}
