package users

type (
	// User is a shopper account stored in the users collection
	User struct {
		UniqueID     string  `json:"unique_id"`
		Username     string  `json:"username"`
		FirstName    string  `json:"first_name"`
		LastName     string  `json:"last_name"`
		Email        string  `json:"email"`
		Phone        *string `json:"phone"`
		Password     string  `json:"password"` // bcrypt hash
		Role         string  `json:"role"`
		RegisteredOn string  `json:"registered_on"`
		LastUpdated  *string `json:"last_updated"`
	}

	RegisterRequest struct {
		Username  string  `json:"username" validate:"required,min=4"`
		FirstName string  `json:"first_name" validate:"required,min=2"`
		LastName  string  `json:"last_name" validate:"required,min=2"`
		Email     string  `json:"email" validate:"required,min=5,email"`
		Phone     *string `json:"phone"`
		Password  string  `json:"password" validate:"required,min=8,max=16"`
	}

	// LoginRequest is shared by user and admin login
	LoginRequest struct {
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password string  `json:"password" validate:"required"`
	}

	UpdateRequest struct {
		FirstName *string `json:"first_name" validate:"omitempty,min=2"`
		LastName  *string `json:"last_name" validate:"omitempty,min=2"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Phone     *string `json:"phone"`
		Password  *string `json:"password" validate:"omitempty,min=8,max=16"`
	}

	// TokenResponse is the login payload
	TokenResponse struct {
		Token string `json:"token"`
	}
)

// Identifier returns the login identifier, preferring email
func (r *LoginRequest) Identifier() (field, value string, ok bool) {
	if r.Email != nil && *r.Email != "" {
		return "email", *r.Email, true
	}
	if r.Username != nil && *r.Username != "" {
		return "username", *r.Username, true
	}
	return "", "", false
}

// Empty reports whether the update carries no field at all
func (r *UpdateRequest) Empty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Email == nil &&
		r.Phone == nil && r.Password == nil
}
