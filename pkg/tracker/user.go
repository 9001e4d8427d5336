package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"liyu1981.xyz/maintenance-tracker/pkg/common"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

const MinPasswordLen = 8

type UserInput struct {
	Username string
	Email    string
	Password string
}

func (in UserInput) validate() *ValidationError {
	verr := &ValidationError{}
	requireText(verr, "username", in.Username, 80)
	requireText(verr, "email", in.Email, 120)
	if _, found := verr.Fields["email"]; !found {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			verr.Add("email", "must be a valid email address")
		}
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLen {
		verr.Add("password", fmt.Sprintf("must be at least %d characters", MinPasswordLen))
	}
	return verr
}

func (t *Tracker) registerUser(ctx context.Context, input UserInput) (*models.User, error) {
	logger := t.logger(common.LoggerCategoryUser)

	if verr := input.validate(); verr.HasErrors() {
		return nil, verr
	}

	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    t.now(),
	}
	err = t.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		verr := &ValidationError{}
		var taken int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&taken).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if taken > 0 {
			verr.Add("username", "is already taken")
		}
		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken > 0 {
			verr.Add("email", "is already registered")
		}
		if verr.HasErrors() {
			return verr
		}

		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("User registered", zap.Uint("id", user.ID), zap.String("username", user.Username))
	return &user, nil
}

func (t *Tracker) authenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	logger := t.logger(common.LoggerCategoryUser)

	var user models.User
	if err := t.Db.Conn.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login rejected", zap.String("username", username), zap.String("reason", "unknown user"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Login rejected", zap.String("username", username), zap.String("reason", "wrong password"))
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (t *Tracker) getUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := t.Db.Conn.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "user", ID: id}
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return &user, nil
}

type IUserImpl struct {
	tracker *Tracker
}

func (iu *IUserImpl) RegisterUser(ctx context.Context, input UserInput) (*models.User, error) {
	return iu.tracker.registerUser(ctx, input)
}

func (iu *IUserImpl) AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	return iu.tracker.authenticateUser(ctx, username, password)
}

func (iu *IUserImpl) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return iu.tracker.getUser(ctx, id)
}

func (t *Tracker) GetIUser() IUser {
	return &IUserImpl{tracker: t}
}
