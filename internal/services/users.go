package services

import (
	"context"
	"errors"

	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Create(ctx context.Context, req types.UserRequest) (*models.User, error) {
	req.Normalize()

	if err := validateStruct(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique(tx, &models.User{}, "email", "email", user.Email, 0); err != nil {
			return err
		}

		if err := tx.Create(&user).Error; err != nil {
			return translateWriteError(err, "email", "User")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return findByID[models.User](s.db.WithContext(ctx), id, "User")
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", types.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User")
		}
		return nil, err
	}

	return &user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	if err := s.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// Update replaces every field of the user, password included. Only the user
// themself may do it.
func (s *UserService) Update(ctx context.Context, principal models.User, id uint, req types.UserRequest) (*models.User, error) {
	req.Normalize()

	var user *models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		user, err = findByID[models.User](tx, id, "User")
		if err != nil {
			return err
		}

		if !auth.IsOwner(principal, user.ID) {
			return ErrForbidden
		}

		if err := validateStruct(req); err != nil {
			return err
		}

		if err := ensureUnique(tx, &models.User{}, "email", "email", req.Email, user.ID); err != nil {
			return err
		}

		passwordHash, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}

		user.Email = req.Email
		user.FirstName = req.FirstName
		user.LastName = req.LastName
		user.PasswordHash = passwordHash

		if err := tx.Save(user).Error; err != nil {
			return translateWriteError(err, "email", "User")
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes the user unless they still author or execute tasks.
func (s *UserService) Delete(ctx context.Context, principal models.User, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := findByID[models.User](tx, id, "User")
		if err != nil {
			return err
		}

		if !auth.IsOwner(principal, user.ID) {
			return ErrForbidden
		}

		var count int64
		if err := tx.Model(&models.Task{}).
			Where("author_id = ? OR executor_id = ?", user.ID, user.ID).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return inUse("User")
		}

		if err := tx.Delete(user).Error; err != nil {
			return translateWriteError(err, "email", "User")
		}

		return nil
	})
}
