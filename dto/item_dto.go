package dto

type CreateItemInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Type        string  `json:"type" binding:"required,itemtype"`
	ContactInfo string  `json:"contactInfo"`
	ImageURL    *string `json:"imageUrl"`
}

type UpdateItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	ContactInfo *string `json:"contactInfo"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status" binding:"omitempty,itemstatus"`
}

// ItemQuery holds the GET /api/items filters. Only the first non-empty one
// in the order type, location, search is applied.
type ItemQuery struct {
	Type     string `form:"type"`
	Location string `form:"location"`
	Search   string `form:"search"`
}
