package repository

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/inkhub/inkhub/models"
	"github.com/inkhub/inkhub/utils"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const minPasswordLength = 8

// UserDraft carries the writable fields of a user. Password is plaintext and
// is hashed inside the repository before anything touches storage.
type UserDraft struct {
	Name     string
	Email    string
	Password string
	Bio      string
	Avatar   string
	Role     models.Role
}

// UserRepository persists users. It owns the password hashing step: plaintext
// never reaches the database and is re-hashed whenever a new value is supplied.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create validates the draft and inserts a new user. The email existence
// pre-check is an optimization only; the unique index is the real guard.
func (r *UserRepository) Create(draft UserDraft) (*models.User, error) {
	if err := validateUserDraft(&draft, true); err != nil {
		return nil, err
	}

	var existing models.User
	if err := r.db.Where("email = ?", draft.Email).First(&existing).Error; err == nil {
		return nil, conflictErr("email")
	}

	hash, err := utils.HashPassword(draft.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         draft.Name,
		Email:        draft.Email,
		PasswordHash: hash,
		Bio:          draft.Bio,
		Avatar:       draft.Avatar,
		Role:         draft.Role,
	}
	if err := r.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("email")
		}
		return nil, err
	}
	return &user, nil
}

// Update replaces all writable fields of the user. An empty Password keeps the
// stored hash; a non-empty one is validated and re-hashed.
func (r *UserRepository) Update(id uint, draft UserDraft) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := validateUserDraft(&draft, draft.Password != ""); err != nil {
		return nil, err
	}

	if draft.Email != user.Email {
		var existing models.User
		if err := r.db.Where("email = ? AND id <> ?", draft.Email, id).First(&existing).Error; err == nil {
			return nil, conflictErr("email")
		}
	}

	user.Name = draft.Name
	user.Email = draft.Email
	user.Bio = draft.Bio
	user.Avatar = draft.Avatar
	user.Role = draft.Role
	if draft.Password != "" {
		hash, err := utils.HashPassword(draft.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := r.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictErr("email")
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns the user registered under email (matched lowercase).
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns a page of users newest first, optionally filtered by a
// case-insensitive substring over name or email. total ignores the page window.
func (r *UserRepository) List(search string, page, limit int) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete removes the user with the given id.
func (r *UserRepository) Delete(id uint) error {
	res := r.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// validateUserDraft normalizes and validates the draft in place. The password
// is only checked when requirePassword is set (creation, or an update that
// supplies a new one).
func validateUserDraft(draft *UserDraft, requirePassword bool) error {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Email = strings.ToLower(strings.TrimSpace(draft.Email))

	if draft.Name == "" {
		return validationErr("name", "name is required")
	}
	if draft.Email == "" {
		return validationErr("email", "email is required")
	}
	if !emailRe.MatchString(draft.Email) {
		return validationErr("email", "please enter a valid email address")
	}
	if requirePassword {
		if draft.Password == "" {
			return validationErr("password", "password is required")
		}
		if len(draft.Password) < minPasswordLength {
			return validationErr("password", "password must be at least 8 characters long")
		}
	}
	if draft.Role == "" {
		draft.Role = models.RoleAuthor
	}
	if !draft.Role.Valid() {
		return validationErr("role", "unknown role")
	}
	return nil
}
