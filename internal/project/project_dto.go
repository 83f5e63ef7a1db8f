package project

// ProjectResponse is the listing shape; the denormalized timesheet
// configuration stays server-side.
type ProjectResponse struct {
	ID                 string   `json:"id"`
	CompanyID          string   `json:"companyId"`
	Name               string   `json:"name"`
	OwnerID            string   `json:"ownerId,omitempty"`
	AvailablePositions []string `json:"availablePositions"`
	CreatedAt          string   `json:"createdAt,omitempty"`
}

func mapToResponse(p *Project) ProjectResponse {
	resp := ProjectResponse{
		ID:                 p.ID.String(),
		CompanyID:          p.CompanyID.String(),
		Name:               p.Name,
		AvailablePositions: p.AvailablePositions,
		CreatedAt:          p.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if p.OwnerID != nil {
		resp.OwnerID = p.OwnerID.String()
	}
	return resp
}
