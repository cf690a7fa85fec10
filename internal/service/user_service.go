package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"store-pos/internal/access"
	"store-pos/internal/model"
	"store-pos/internal/repository"
	"store-pos/pkg/e"
	"store-pos/pkg/validator"
)

type UserService interface {
	CreateUser(actor *access.Principal, req CreateUserRequest) (*model.UserResponse, error)
	UpdateProfile(actor *access.Principal, userID uuid.UUID, req ProfileRequest) (*model.UserResponse, error)
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	ResetPassword(username, newPassword string) error
}

type CreateUserRequest struct {
	Username    string `json:"username" form:"username" validate:"required,max=150"`
	Email       string `json:"email" form:"email" validate:"omitempty,email"`
	Password    string `json:"password" form:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" form:"full_name"`
	IsSuperuser bool   `json:"is_superuser" form:"is_superuser"`
	// Role is optional: an account without one has no profile.
	Role       string `json:"role" form:"role" validate:"omitempty,oneof=seller manager administrator client"`
	Department string `json:"department" form:"department" validate:"max=100"`
	HireDate   string `json:"hire_date" form:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	ClientID   string `json:"client_id" form:"client_id" validate:"omitempty,uuid"`
}

type ProfileRequest struct {
	Role       string `json:"role" form:"role" validate:"required,oneof=seller manager administrator client"`
	Department string `json:"department" form:"department" validate:"max=100"`
	Active     *bool  `json:"active" form:"active"`
	HireDate   string `json:"hire_date" form:"hire_date" validate:"omitempty,datetime=2006-01-02"`
}

type userService struct {
	userRepo   repository.UserRepository
	clientRepo repository.ClientRepository
	db         *gorm.DB
	now        Clock
}

func NewUserService(userRepo repository.UserRepository, clientRepo repository.ClientRepository, db *gorm.DB, now Clock) UserService {
	if now == nil {
		now = time.Now
	}
	return &userService{userRepo: userRepo, clientRepo: clientRepo, db: db, now: now}
}

func (s *userService) CreateUser(actor *access.Principal, req CreateUserRequest) (*model.UserResponse, error) {
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	verr := validator.NewValidationError()
	req.Username = strings.TrimSpace(req.Username)
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		verr.Add("username", "A user with that username already exists.")
	} else if !errors.Is(err, e.ErrNotFound) {
		return nil, err
	}

	var clientID uuid.UUID
	if req.ClientID != "" {
		if model.Role(req.Role) != model.RoleClient {
			verr.Add("client_id", "Only client accounts can be linked to a client.")
		} else {
			clientID = uuid.MustParse(req.ClientID)
			client, err := s.clientRepo.FindByID(clientID)
			switch {
			case errors.Is(err, e.ErrNotFound):
				verr.Add("client_id", "Select a valid choice.")
			case err != nil:
				return nil, err
			case client.UserID != nil:
				verr.Add("client_id", "This client already has an account.")
			}
		}
	}
	if !verr.Empty() {
		return nil, verr
	}

	user := &model.User{
		Username:    req.Username,
		Email:       req.Email,
		FullName:    req.FullName,
		IsSuperuser: req.IsSuperuser,
		IsActive:    true,
	}
	user.CreatedBy = actorName(actor)
	user.UpdatedBy = actorName(actor)
	if err := user.SetPassword(req.Password); err != nil {
		return nil, e.Wrap("hash password", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		if req.Role != "" {
			profile := s.newProfile(actor, user.ID, model.Role(req.Role), req.Department, nil, req.HireDate)
			if err := s.userRepo.SaveProfile(tx, profile); err != nil {
				return err
			}
		}
		if clientID != uuid.Nil {
			return s.clientRepo.LinkUser(tx, clientID, user.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetUserByID(user.ID)
}

func (s *userService) UpdateProfile(actor *access.Principal, userID uuid.UUID, req ProfileRequest) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	profile := s.newProfile(actor, user.ID, model.Role(req.Role), req.Department, req.Active, req.HireDate)
	if user.Profile != nil && req.HireDate == "" {
		profile.HireDate = user.Profile.HireDate
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.userRepo.SaveProfile(tx, profile)
	})
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(userID)
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse()
	}
	return out, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ResetPassword sets a new password and ends any open session of the account.
func (s *userService) ResetPassword(username, newPassword string) error {
	if len(newPassword) < 6 {
		verr := validator.NewValidationError()
		verr.Add("password", "Ensure this value has at least 6 items or characters.")
		return verr
	}
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return e.Wrap("hash password", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}
	return s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String())
}

func (s *userService) newProfile(actor *access.Principal, userID uuid.UUID, role model.Role, department string, active *bool, hireDate string) *model.UserProfile {
	profile := &model.UserProfile{
		UserID:     userID,
		Role:       role,
		Department: department,
		Active:     true,
		HireDate:   s.now(),
	}
	if active != nil {
		profile.Active = *active
	}
	if hireDate != "" {
		if d, err := time.ParseInLocation("2006-01-02", hireDate, time.Local); err == nil {
			profile.HireDate = d
		}
	}
	profile.CreatedBy = actorName(actor)
	profile.UpdatedBy = actorName(actor)
	return profile
}
