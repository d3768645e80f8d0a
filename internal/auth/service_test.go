package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LupryM/Barbershop-Durban/internal/audit"
	"github.com/LupryM/Barbershop-Durban/internal/httperr"
	"github.com/LupryM/Barbershop-Durban/internal/models"
	"github.com/LupryM/Barbershop-Durban/internal/sms"
	"github.com/LupryM/Barbershop-Durban/internal/timezone"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.OtpCode{},
		&models.Session{},
		&models.AuditLog{},
	))

	svc := NewService(
		db,
		sms.NewDispatcher(sms.LogSender{}),
		audit.NewDispatcher(audit.New(db)),
	)

	return svc, db
}

func TestRequestCode_FormatAndPersistence(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	code, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9]{6}$`), code)

	var otp models.OtpCode
	require.NoError(t, db.Where("phone = ?", "+27821111111").First(&otp).Error)
	assert.Equal(t, code, otp.Code)
	assert.False(t, otp.Used)
	assert.True(t, otp.ExpiresAt.After(timezone.Now()))
}

func TestRequestCode_MultipleOutstandingCodes(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)
	second, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.OtpCode{}).
		Where("phone = ?", "+27821111111").
		Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// any outstanding code verifies
	_, _, err = svc.VerifyCode(ctx, "+27821111111", second, "Thabo")
	assert.NoError(t, err)
}

func TestVerifyCode_CreatesCustomerAndSession(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	code, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	user, session, err := svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	require.NoError(t, err)

	assert.Equal(t, "+27821111111", user.Phone)
	assert.Equal(t, "Thabo", user.Name)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotNil(t, user.LastLogin)

	assert.Len(t, session.Token, 64)
	assert.True(t, session.ExpiresAt.After(timezone.Now().Add(29*24*time.Hour)))

	// the session resolves back to the user
	resolved := svc.ResolveSession(ctx, session.Token)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	var stored models.OtpCode
	require.NoError(t, db.Where("phone = ?", "+27821111111").First(&stored).Error)
	assert.True(t, stored.Used)
}

func TestVerifyCode_ExistingUserKeepsRoleAndName(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	barber := models.User{Phone: "+27822222222", Name: "Sipho Nkosi", Role: models.RoleBarber, IsActive: true}
	require.NoError(t, db.Create(&barber).Error)

	code, err := svc.RequestCode(ctx, "+27822222222")
	require.NoError(t, err)

	user, _, err := svc.VerifyCode(ctx, "+27822222222", code, "Someone Else")
	require.NoError(t, err)

	assert.Equal(t, barber.ID, user.ID)
	assert.Equal(t, models.RoleBarber, user.Role)
	assert.Equal(t, "Sipho Nkosi", user.Name)
	assert.NotNil(t, user.LastLogin)
}

func TestVerifyCode_RejectsWrongCode(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	_, _, err = svc.VerifyCode(ctx, "+27821111111", "000000x", "Thabo")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidOrExpiredCode))
}

func TestVerifyCode_SingleUse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	code, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	_, _, err = svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	require.NoError(t, err)

	// replaying a consumed code must fail
	_, _, err = svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidOrExpiredCode))
}

func TestVerifyCode_FailureDoesNotBurnCode(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	code, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	// knock out session storage so the verify sequence fails after the
	// code has been matched
	require.NoError(t, db.Migrator().DropTable(&models.Session{}))

	_, _, err = svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	require.Error(t, err)

	var otp models.OtpCode
	require.NoError(t, db.Where("phone = ?", "+27821111111").First(&otp).Error)
	assert.False(t, otp.Used)

	// once storage is healthy again the same code still works
	require.NoError(t, db.AutoMigrate(&models.Session{}))

	user, session, err := svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Len(t, session.Token, 64)
}

func TestVerifyCode_Expired(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	otp := models.OtpCode{
		Phone:     "+27821111111",
		Code:      "123456",
		ExpiresAt: timezone.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&otp).Error)

	_, _, err := svc.VerifyCode(ctx, "+27821111111", "123456", "Thabo")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidOrExpiredCode))
}

func TestResolveSession_FailsOpen(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	assert.Nil(t, svc.ResolveSession(ctx, ""))
	assert.Nil(t, svc.ResolveSession(ctx, "unknown-token"))

	user := models.User{Phone: "+27821111111", Role: models.RoleCustomer}
	require.NoError(t, db.Create(&user).Error)

	expired := models.Session{
		Token:     "deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
		UserID:    user.ID,
		ExpiresAt: timezone.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)

	assert.Nil(t, svc.ResolveSession(ctx, expired.Token))
}

func TestLogout_DeletesSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	code, err := svc.RequestCode(ctx, "+27821111111")
	require.NoError(t, err)

	_, session, err := svc.VerifyCode(ctx, "+27821111111", code, "Thabo")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))
	assert.Nil(t, svc.ResolveSession(ctx, session.Token))
}
