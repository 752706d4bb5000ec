package owners

type (
	Address struct {
		Street  string `json:"street" validate:"required"`
		City    string `json:"city" validate:"required"`
		State   string `json:"state" validate:"required"`
		ZipCode string `json:"zip_code" validate:"required"`
		Country string `json:"country" validate:"required"`
	}

	// Owner is a shop administrator stored in the owners collection
	Owner struct {
		UniqueID       string   `json:"unique_id"`
		Email          string   `json:"email"`
		Username       string   `json:"username"`
		Password       string   `json:"password"` // bcrypt hash
		FirstName      string   `json:"first_name"`
		LastName       string   `json:"last_name"`
		Gender         string   `json:"gender"`
		ProfilePicture *string  `json:"profile_picture"`
		PhoneNumber    string   `json:"phone_number"`
		Address        Address  `json:"address"`
		Role           string   `json:"role"`
		ShopsOwned     []string `json:"shops_owned"`
		RegisteredOn   string   `json:"registered_on"`
		LastUpdated    *string  `json:"last_updated"`
	}

	RegisterRequest struct {
		Email          string  `json:"email" validate:"required,email"`
		Username       string  `json:"username" validate:"required"`
		Password       string  `json:"password" validate:"required"`
		FirstName      string  `json:"first_name" validate:"required"`
		LastName       string  `json:"last_name" validate:"required"`
		Gender         string  `json:"gender" validate:"required"`
		ProfilePicture *string `json:"profile_picture"`
		PhoneNumber    string  `json:"phone_number" validate:"required"`
		Address        Address `json:"address" validate:"required"`
	}
)
