package service

import (
	"strings"

	"attendance-tracker/internal/models"
	"attendance-tracker/internal/repository"
	"attendance-tracker/pkg/token"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
	logger   *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) *AuthService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account with an EMPLOYEE role
func (s *AuthService) Register(name, email, password, confirmPassword string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || confirmPassword == "" {
		return nil, &ValidationError{Message: "All fields are required"}
	}

	if password != confirmPassword {
		return nil, &ValidationError{Message: "Passwords do not match"}
	}

	if len(password) < 6 {
		return nil, &ValidationError{Message: "Password must be at least 6 characters"}
	}

	exists, err := s.userRepo.EmailExists(email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to check existing user")
		return nil, err
	}

	if exists {
		s.logger.WithField("email", email).Warn("Registration attempt with existing email")
		return nil, &ConflictError{Message: "User already exists, Please login"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleEmployee,
		Status:   models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.UserID,
		"email":   user.Email,
	}).Info("User registered successfully")

	return user, nil
}

// Login verifies credentials and issues a 24h token
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(email)

	if email == "" || password == "" {
		return nil, "", &ValidationError{Message: "Email and password are required"}
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up user by email")
		return nil, "", err
	}

	if user == nil {
		return nil, "", &NotFoundError{Message: "User not found"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Login attempt with wrong password")
		return nil, "", &UnauthorizedError{Message: "Invalid user name or password"}
	}

	tokenStr, err := s.tokens.Issue(user.UserID, user.Email)
	if err != nil {
		s.logger.WithError(err).Error("Failed to issue token")
		return nil, "", err
	}

	s.logger.WithField("user_id", user.UserID).Info("User logged in")

	return user, tokenStr, nil
}
