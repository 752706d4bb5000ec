package accounts

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/benedict-erwin/shop-directory/internal/entities/owners"
	"github.com/benedict-erwin/shop-directory/internal/entities/users"
	"github.com/benedict-erwin/shop-directory/internal/store"
	"github.com/benedict-erwin/shop-directory/pkg/auth"
	"github.com/benedict-erwin/shop-directory/pkg/logger"
	"github.com/benedict-erwin/shop-directory/pkg/utils"
)

var (
	ErrMissingIdentifier  = errors.New("email or username is required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNothingToUpdate    = errors.New("nothing to update")
)

// Service registers and authenticates users and shop owners
type Service struct {
	store  *store.Store
	tokens *auth.TokenService
	now    func() time.Time
}

// NewService creates an account service
func NewService(st *store.Store, tokens *auth.TokenService) *Service {
	return &Service{store: st, tokens: tokens, now: utils.Now}
}

// WithClock replaces the clock used for timestamps
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) stamp() string {
	return s.now().Format(utils.DateTimeLayout)
}

// claimIdentity reserves username and email in one collection, releasing
// the username again if the email is taken
func claimIdentity[T any](ctx context.Context, coll *store.Collection[T], id, username, email string) error {
	if err := coll.Claim(ctx, store.FieldUsername, username, id); err != nil {
		return err
	}
	if err := coll.Claim(ctx, store.FieldEmail, email, id); err != nil {
		if rerr := coll.Release(ctx, store.FieldUsername, username); rerr != nil {
			logger.Error().Err(rerr).Str("collection", coll.Name()).Msg("Failed to release username claim")
		}
		return err
	}
	return nil
}

// releaseIdentity undoes claimIdentity after a failed write
func releaseIdentity[T any](ctx context.Context, coll *store.Collection[T], username, email string) {
	if err := coll.Release(ctx, store.FieldUsername, username); err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Msg("Failed to release username claim")
	}
	if err := coll.Release(ctx, store.FieldEmail, email); err != nil {
		logger.Error().Err(err).Str("collection", coll.Name()).Msg("Failed to release email claim")
	}
}

// RegisterUser creates a shopper account
func (s *Service) RegisterUser(ctx context.Context, req *users.RegisterRequest) (*users.User, error) {
	log := logger.WithScope("accounts.RegisterUser")

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &users.User{
		UniqueID:     store.NewID(),
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     hash,
		Role:         string(auth.RoleUser),
		RegisteredOn: s.stamp(),
	}

	if err := claimIdentity(ctx, s.store.Users, user.UniqueID, user.Username, user.Email); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Info().Str("username", user.Username).Msg("User already exists")
		}
		return nil, err
	}
	if err := s.store.Users.Insert(ctx, user.UniqueID, user, nil); err != nil {
		releaseIdentity(ctx, s.store.Users, user.Username, user.Email)
		return nil, err
	}

	log.Info().Str("unique_id", user.UniqueID).Msg("User registered")
	return user, nil
}

// LoginUser checks user credentials and returns a session token
func (s *Service) LoginUser(ctx context.Context, req *users.LoginRequest) (string, error) {
	field, value, ok := req.Identifier()
	if !ok {
		return "", ErrMissingIdentifier
	}

	user, err := s.store.Users.Lookup(ctx, field, value)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if user == nil || !auth.CheckPassword(req.Password, user.Password) {
		logger.WithScope("accounts.LoginUser").Info().Str(field, value).Msg("Invalid credentials")
		return "", ErrInvalidCredentials
	}

	return s.issue(user.UniqueID, user.Username, user.Email, user.Role)
}

// UpdateUser applies a partial update to the user identified by id
func (s *Service) UpdateUser(ctx context.Context, id string, req *users.UpdateRequest) error {
	if req.Empty() {
		return ErrNothingToUpdate
	}

	current, err := s.store.Users.Get(ctx, id)
	if err != nil {
		return err
	}

	var hash string
	if req.Password != nil {
		if hash, err = auth.HashPassword(*req.Password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	// Move the email claim before touching the document
	newEmail := ""
	if req.Email != nil && !strings.EqualFold(*req.Email, current.Email) {
		if err := s.store.Users.Claim(ctx, store.FieldEmail, *req.Email, id); err != nil {
			return err
		}
		newEmail = *req.Email
	}

	oldEmail := current.Email
	_, err = s.store.Users.Update(ctx, id, func(u *users.User) error {
		if req.FirstName != nil {
			u.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			u.LastName = *req.LastName
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Phone != nil {
			u.Phone = req.Phone
		}
		if hash != "" {
			u.Password = hash
		}
		stamp := s.stamp()
		u.LastUpdated = &stamp
		return nil
	})
	if err != nil {
		if newEmail != "" {
			if rerr := s.store.Users.Release(ctx, store.FieldEmail, newEmail); rerr != nil {
				logger.Error().Err(rerr).Str("unique_id", id).Msg("Failed to release new email claim")
			}
		}
		return err
	}

	if newEmail != "" {
		if err := s.store.Users.Release(ctx, store.FieldEmail, oldEmail); err != nil {
			logger.Error().Err(err).Str("unique_id", id).Msg("Failed to release previous email claim")
		}
	}
	return nil
}

// RegisterOwner creates a shop administrator account with the admin role
func (s *Service) RegisterOwner(ctx context.Context, req *owners.RegisterRequest) (*owners.Owner, error) {
	return s.createOwner(ctx, req, auth.RoleAdmin)
}

// CreateSuperAdmin seeds a superadmin. There is no HTTP path for this.
func (s *Service) CreateSuperAdmin(ctx context.Context, req *owners.RegisterRequest) (*owners.Owner, error) {
	return s.createOwner(ctx, req, auth.RoleSuperAdmin)
}

func (s *Service) createOwner(ctx context.Context, req *owners.RegisterRequest, role auth.Role) (*owners.Owner, error) {
	log := logger.WithScope("accounts.RegisterOwner")

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	owner := &owners.Owner{
		UniqueID:       store.NewID(),
		Email:          req.Email,
		Username:       req.Username,
		Password:       hash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		ProfilePicture: req.ProfilePicture,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		Role:           string(role),
		ShopsOwned:     []string{},
		RegisteredOn:   s.stamp(),
	}

	if err := claimIdentity(ctx, s.store.Owners, owner.UniqueID, owner.Username, owner.Email); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			log.Info().Str("username", owner.Username).Msg("Owner already exists")
		}
		return nil, err
	}
	if err := s.store.Owners.Insert(ctx, owner.UniqueID, owner, nil); err != nil {
		releaseIdentity(ctx, s.store.Owners, owner.Username, owner.Email)
		return nil, err
	}

	log.Info().Str("unique_id", owner.UniqueID).Str("role", owner.Role).Msg("Owner registered")
	return owner, nil
}

// LoginOwner checks owner credentials and returns a session token
func (s *Service) LoginOwner(ctx context.Context, req *users.LoginRequest) (string, error) {
	field, value, ok := req.Identifier()
	if !ok {
		return "", ErrMissingIdentifier
	}

	owner, err := s.store.Owners.Lookup(ctx, field, value)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", err
	}
	if owner == nil || !auth.CheckPassword(req.Password, owner.Password) {
		logger.WithScope("accounts.LoginOwner").Info().Str(field, value).Msg("Invalid credentials")
		return "", ErrInvalidCredentials
	}

	return s.issue(owner.UniqueID, owner.Username, owner.Email, owner.Role)
}

// ListOwners returns every owner ordered by registration time
func (s *Service) ListOwners(ctx context.Context) ([]owners.Owner, error) {
	list, err := s.store.Owners.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].RegisteredOn != list[j].RegisteredOn {
			return list[i].RegisteredOn < list[j].RegisteredOn
		}
		return list[i].UniqueID < list[j].UniqueID
	})
	return list, nil
}

func (s *Service) issue(id, username, email, role string) (string, error) {
	claims, err := auth.NewClaims(id, username, email, auth.Role(role), s.now())
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(claims)
}
