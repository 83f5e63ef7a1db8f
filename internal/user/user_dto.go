package user

// UserResponse never exposes the stored credential.
type UserResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"companyId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		CompanyID:   u.CompanyID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
