package deals

import "time"

// TypeDealExpire is the asynq task that deactivates a deal at its end date
const TypeDealExpire = "deal:expire"

type (
	// Deal is a time-boxed discount offered under a shop
	Deal struct {
		DealUniqueID    string  `json:"deal_unique_id"`
		DealName        string  `json:"deal_name"`
		DealImage       *string `json:"deal_image"`
		DiscountPercent int     `json:"discount_percent"`
		StartDate       string  `json:"start_date"`
		EndDate         string  `json:"end_date"`
		Categories      string  `json:"categories"`
		IsActive        bool    `json:"is_active"`
		ShopOwner       string  `json:"shop_owner"` // shop id
		RegisteredOn    string  `json:"registered_on"`
		LastUpdated     *string `json:"last_updated"`
	}

	CreateRequest struct {
		DealName        string  `json:"deal_name" validate:"required"`
		DealImage       *string `json:"deal_image"`
		DiscountPercent int     `json:"discount_percent" validate:"min=0,max=100"`
		StartDate       string  `json:"start_date" validate:"required,stamp"`
		EndDate         string  `json:"end_date" validate:"required,stamp"`
		Categories      string  `json:"categories" validate:"required"`
	}

	UpdateRequest struct {
		DealName        *string `json:"deal_name"`
		DealImage       *string `json:"deal_image"`
		DiscountPercent *int    `json:"discount_percent" validate:"omitempty,min=0,max=100"`
		IsActive        *bool   `json:"is_active"`
		StartDate       *string `json:"start_date" validate:"omitempty,stamp"`
		EndDate         *string `json:"end_date" validate:"omitempty,stamp"`
		Categories      *string `json:"categories"`
	}

	// ExpirePayload is the body of a deal:expire task
	ExpirePayload struct {
		DealID    string    `json:"deal_id"`
		EndDate   string    `json:"end_date"`
		RequestID string    `json:"request_id"`
		QueuedAt  time.Time `json:"queued_at"`
	}
)

// Apply copies every set field of the update onto d and reports whether anything was set
func (r *UpdateRequest) Apply(d *Deal) bool {
	changed := false
	if r.DealName != nil {
		d.DealName = *r.DealName
		changed = true
	}
	if r.DealImage != nil {
		d.DealImage = r.DealImage
		changed = true
	}
	if r.DiscountPercent != nil {
		d.DiscountPercent = *r.DiscountPercent
		changed = true
	}
	if r.IsActive != nil {
		d.IsActive = *r.IsActive
		changed = true
	}
	if r.StartDate != nil {
		d.StartDate = *r.StartDate
		changed = true
	}
	if r.EndDate != nil {
		d.EndDate = *r.EndDate
		changed = true
	}
	if r.Categories != nil {
		d.Categories = *r.Categories
		changed = true
	}
	return changed
}
