package shops

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type (
	Coordinates struct {
		Lat  float64 `json:"lat"`
		Long float64 `json:"long"`
	}

	Location struct {
		City        string      `json:"city" validate:"required"`
		State       string      `json:"state" validate:"required"`
		Country     string      `json:"country" validate:"required"`
		Zipcode     string      `json:"zipcode" validate:"required"`
		Coordinates Coordinates `json:"coordinates"`
	}

	// Shop is a storefront registered by an owner
	Shop struct {
		ShopUniqueID   string   `json:"shop_unique_id"`
		StoreCategory  string   `json:"store_category"`
		StoreTypes     string   `json:"store_types"`
		Location       Location `json:"location"`
		Contact        string   `json:"contact"`
		FloorNumber    int      `json:"floor_number"`
		ShopImage      string   `json:"shop_image"`
		StoreName      string   `json:"store_name"`
		StoreNumber    int      `json:"store_number"`
		Tags           []string `json:"tags"`
		Website        string   `json:"website"`
		Description    string   `json:"description"`
		Owner          string   `json:"owner"`
		DealsUnderShop []string `json:"deals_under_shop"`
		ShopStatus     string   `json:"shop_status"`
		RegisteredOn   string   `json:"registered_on"`
		LastUpdated    *string  `json:"last_updated"`
	}

	// Summary is the owner-facing view, without ownership bookkeeping
	Summary struct {
		ShopUniqueID  string   `json:"shop_unique_id"`
		StoreCategory string   `json:"store_category"`
		StoreTypes    string   `json:"store_types"`
		Location      Location `json:"location"`
		Contact       string   `json:"contact"`
		FloorNumber   int      `json:"floor_number"`
		ShopImage     string   `json:"shop_image"`
		StoreName     string   `json:"store_name"`
		StoreNumber   int      `json:"store_number"`
		Tags          []string `json:"tags"`
		Website       string   `json:"website"`
		Description   string   `json:"description"`
		ShopStatus    string   `json:"shop_status"`
		RegisteredOn  string   `json:"registered_on"`
		LastUpdated   *string  `json:"last_updated"`
	}

	RegisterRequest struct {
		StoreCategory string   `json:"store_category" validate:"required"`
		StoreTypes    string   `json:"store_types" validate:"required"`
		Location      Location `json:"location" validate:"required"`
		Contact       string   `json:"contact" validate:"required"`
		FloorNumber   int      `json:"floor_number"`
		ShopImage     string   `json:"shop_image" validate:"required"`
		StoreName     string   `json:"store_name" validate:"required"`
		StoreNumber   int      `json:"store_number"`
		Tags          []string `json:"tags" validate:"required"`
		Website       string   `json:"website" validate:"required"`
		Description   string   `json:"description" validate:"required"`
	}

	UpdateLocation struct {
		City        *string      `json:"city"`
		State       *string      `json:"state"`
		Country     *string      `json:"country"`
		Zipcode     *string      `json:"zipcode"`
		Coordinates *Coordinates `json:"coordinates"`
	}

	UpdateRequest struct {
		StoreCategory *string         `json:"store_category"`
		StoreTypes    *string         `json:"store_types"`
		Location      *UpdateLocation `json:"location"`
		Contact       *string         `json:"contact"`
		FloorNumber   *int            `json:"floor_number"`
		ShopImage     *string         `json:"shop_image"`
		StoreName     *string         `json:"store_name"`
		StoreNumber   *int            `json:"store_number"`
		Tags          []string        `json:"tags"`
		Website       *string         `json:"website"`
		Description   *string         `json:"description"`
	}
)

// Active reports whether the shop is visible
func (s *Shop) Active() bool {
	return s.ShopStatus == StatusActive
}

// Summary drops owner and deal bookkeeping from the document
func (s *Shop) Summary() Summary {
	return Summary{
		ShopUniqueID:  s.ShopUniqueID,
		StoreCategory: s.StoreCategory,
		StoreTypes:    s.StoreTypes,
		Location:      s.Location,
		Contact:       s.Contact,
		FloorNumber:   s.FloorNumber,
		ShopImage:     s.ShopImage,
		StoreName:     s.StoreName,
		StoreNumber:   s.StoreNumber,
		Tags:          s.Tags,
		Website:       s.Website,
		Description:   s.Description,
		ShopStatus:    s.ShopStatus,
		RegisteredOn:  s.RegisteredOn,
		LastUpdated:   s.LastUpdated,
	}
}

// Apply copies every set field of the update onto s and reports whether anything was set
func (r *UpdateRequest) Apply(s *Shop) bool {
	changed := false
	setString := func(dst, src *string) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}
	setInt := func(dst, src *int) {
		if src != nil {
			*dst = *src
			changed = true
		}
	}

	setString(&s.StoreCategory, r.StoreCategory)
	setString(&s.StoreTypes, r.StoreTypes)
	setString(&s.Contact, r.Contact)
	setString(&s.ShopImage, r.ShopImage)
	setString(&s.StoreName, r.StoreName)
	setString(&s.Website, r.Website)
	setString(&s.Description, r.Description)
	setInt(&s.FloorNumber, r.FloorNumber)
	setInt(&s.StoreNumber, r.StoreNumber)
	if r.Tags != nil {
		s.Tags = r.Tags
		changed = true
	}

	if loc := r.Location; loc != nil {
		setString(&s.Location.City, loc.City)
		setString(&s.Location.State, loc.State)
		setString(&s.Location.Country, loc.Country)
		setString(&s.Location.Zipcode, loc.Zipcode)
		if loc.Coordinates != nil {
			s.Location.Coordinates = *loc.Coordinates
			changed = true
		}
	}
	return changed
}
