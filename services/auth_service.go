package services

import (
	"errors"
	"time"

	"quizquest/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleMismatch       = errors.New("no account with this role found for this email")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: jwtSecret}
}

type RegisterRequest struct {
	Role     string `json:"role" binding:"required,oneof=Teacher Student"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Confirm  string `json:"confirm" binding:"required"`
}

type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=Teacher Student"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the safe user shape returned to clients.
type UserSummary struct {
	ID    uint   `json:"id"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func summarize(user *models.User) UserSummary {
	return UserSummary{ID: user.ID, Role: user.Role, Name: user.Name, Email: user.Email}
}

func (s *AuthService) Register(req *RegisterRequest) (*UserSummary, error) {
	if req.Password != req.Confirm {
		return nil, ErrPasswordMismatch
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooShort
	}

	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Role:     req.Role,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	summary := summarize(&user)
	return &summary, nil
}

// Login authenticates by email, password and role. The role is cross-checked
// against the stored account so a Student cannot log in through the Teacher
// flow; role mismatches get their own message.
func (s *AuthService) Login(req *LoginRequest) (*UserSummary, string, error) {
	var user models.User
	err := s.db.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if user.Role != req.Role {
		return nil, "", ErrRoleMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, "", err
	}

	summary := summarize(&user)
	return &summary, token, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*UserSummary, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	summary := summarize(&user)
	return &summary, nil
}

// SearchTeachers matches Teacher-role users by name or email.
func (s *AuthService) SearchTeachers(query string) ([]UserSummary, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := s.db.Where("role = ?", models.RoleTeacher).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	results := make([]UserSummary, 0, len(users))
	for _, user := range users {
		results = append(results, summarize(&user))
	}
	return results, nil
}
