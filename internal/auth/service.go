package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/LupryM/Barbershop-Durban/internal/audit"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
	"github.com/LupryM/Barbershop-Durban/internal/sms"
	"github.com/LupryM/Barbershop-Durban/internal/timezone"
)

const (
	OtpTTL     = 10 * time.Minute
	SessionTTL = 30 * 24 * time.Hour
)

type Service struct {
	db    *gorm.DB
	sms   *sms.Dispatcher
	audit *audit.Dispatcher
}

func NewService(db *gorm.DB, smsDispatcher *sms.Dispatcher, auditDispatcher *audit.Dispatcher) *Service {
	return &Service{
		db:    db,
		sms:   smsDispatcher,
		audit: auditDispatcher,
	}
}

// ======================================================
// OTP
// ======================================================

// RequestCode issues a fresh code for the phone. Older outstanding codes
// stay valid until they expire or get used.
func (s *Service) RequestCode(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	otp := models.OtpCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: timezone.Now().Add(OtpTTL),
	}

	if err := s.db.WithContext(ctx).Create(&otp).Error; err != nil {
		return "", err
	}

	s.sms.Dispatch(sms.Message{
		Phone: phone,
		Body:  fmt.Sprintf("Your Xclusive Barber code is %s. It expires in 10 minutes.", code),
	})

	return code, nil
}

// VerifyCode consumes the newest matching code, finds or creates the
// customer for the phone, and opens a session. The whole sequence runs
// in one transaction so a failure never burns a code without issuing a
// session.
func (s *Service) VerifyCode(
	ctx context.Context,
	phone string,
	code string,
	name string,
) (*models.User, *models.Session, error) {

	now := timezone.Now()

	var (
		user    *models.User
		session *models.Session
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp models.OtpCode
		err := tx.
			Where(
				"phone = ? AND code = ? AND used = ? AND expires_at > ?",
				phone, code, false, now,
			).
			Order("created_at DESC, id DESC").
			First(&otp).Error

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeInvalidOrExpiredCode)
			}
			return err
		}

		otp.Used = true
		if err := tx.Save(&otp).Error; err != nil {
			return err
		}

		if user, err = findOrCreateUser(tx, phone, name, now); err != nil {
			return err
		}

		session, err = openSession(tx, user.ID, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "otp_login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	return user, session, nil
}

func findOrCreateUser(
	tx *gorm.DB,
	phone string,
	name string,
	now time.Time,
) (*models.User, error) {

	var user models.User
	err := tx.Where("phone = ?", phone).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Phone: phone,
			Name:  name,
			Role:  models.RoleCustomer,
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if user.Name == "" && name != "" {
		user.Name = name
	}
	user.LastLogin = &now

	if err := tx.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// ======================================================
// Sessions
// ======================================================

func openSession(tx *gorm.DB, userID uint, now time.Time) (*models.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(SessionTTL),
	}

	if err := tx.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// ResolveSession maps a bearer token to its user. A missing, unknown or
// expired token is the normal anonymous outcome, never an error.
func (s *Service) ResolveSession(ctx context.Context, token string) *models.User {
	if token == "" {
		return nil
	}

	var session models.Session
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("token = ? AND expires_at > ?", token, timezone.Now()).
		First(&session).Error
	if err != nil {
		return nil
	}

	return &session.User
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.Session{}).Error
}

// ======================================================
// Generators
// ======================================================

// generateCode draws a uniform 6-digit code; leading zeros are kept.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
