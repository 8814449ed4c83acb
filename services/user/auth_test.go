package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"sevahub/models"
	"sevahub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestOTP_RejectsBadPhone(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.RequestOTP(context.Background(), "12345")

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)
}

func TestRequestOTP_NormalizesAndTexts(t *testing.T) {
	env := newTestEnv()
	sessionID, err := env.svc.RequestOTP(context.Background(), "+91 98765 43210")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	session, err := env.sessions.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", session.Phone)
	assert.Equal(t, sessionPending, session.Status)
	assert.NotEqual(t, env.otpFor("9876543210"), session.OTPHash)
	assert.Len(t, env.otpFor("9876543210"), utils.OTPLength)
}

func TestVerifyOTP_NewPhoneNeedsRegistration(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID, err := env.svc.RequestOTP(ctx, "9876543210")
	require.NoError(t, err)

	res, err := env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	require.NoError(t, err)
	assert.True(t, res.NeedRegistration)
	assert.Equal(t, sessionID, res.SessionID)
	assert.Empty(t, res.Token)

	session, err := env.sessions.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionVerified, session.Status)
}

func TestVerifyOTP_KnownPhoneGetsToken(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.users.put(models.UserProfile{ID: "u1", Name: "Asha", Phone: "9876543210", Role: models.RoleUser})

	sessionID, err := env.svc.RequestOTP(ctx, "9876543210")
	require.NoError(t, err)
	res, err := env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Equal(t, "u1", res.User.ID)

	claims, err := utils.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "user", claims.Role)

	_, err = env.sessions.Get(ctx, sessionID)
	assert.ErrorIs(t, err, utils.ErrAuthSessionNotFound)
}

func TestVerifyOTP_DisabledAccount(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.users.put(models.UserProfile{ID: "w1", Phone: "9876543210", Role: models.RoleWorker, IsActive: boolPtr(false)})

	sessionID, err := env.svc.RequestOTP(ctx, "9876543210")
	require.NoError(t, err)
	_, err = env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestVerifyOTP_WrongCodeCountsAttempts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID, err := env.svc.RequestOTP(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if env.otpFor("9876543210") == wrong {
		wrong = "111111"
	}
	for i := 0; i < utils.MaxOTPAttempts; i++ {
		_, err = env.svc.VerifyOTP(ctx, sessionID, wrong)
		assert.ErrorIs(t, err, ErrInvalidOTP)
	}

	_, err = env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	_, err = env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func TestVerifyOTP_ConcurrentGuessesShareAttemptBudget(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	sessionID, err := env.svc.RequestOTP(ctx, "9876543210")
	require.NoError(t, err)

	wrong := "000000"
	if env.otpFor("9876543210") == wrong {
		wrong = "111111"
	}

	const guesses = 40
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		evaluated int
	)
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.svc.VerifyOTP(ctx, sessionID, wrong)
			if errors.Is(err, ErrInvalidOTP) {
				mu.Lock()
				evaluated++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, utils.MaxOTPAttempts, evaluated)
	_, err = env.svc.VerifyOTP(ctx, sessionID, env.otpFor("9876543210"))
	assert.Error(t, err)
}

func TestVerifyOTP_UnknownSession(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.VerifyOTP(context.Background(), "missing", "123456")
	assert.ErrorIs(t, err, ErrOTPExpired)
}

func verifiedSession(t *testing.T, env *testEnv, phone string) string {
	t.Helper()
	ctx := context.Background()
	sessionID, err := env.svc.RequestOTP(ctx, phone)
	require.NoError(t, err)
	res, err := env.svc.VerifyOTP(ctx, sessionID, env.otpFor(phone))
	require.NoError(t, err)
	require.True(t, res.NeedRegistration)
	return sessionID
}

func TestRegister_User(t *testing.T) {
	env := newTestEnv()
	sessionID := verifiedSession(t, env, "9876543210")

	res, err := env.svc.Register(context.Background(), models.RegistrationInput{
		SessionID: sessionID,
		Name:      " Asha ",
		Role:      models.RoleUser,
		Location:  models.Location{Village: "Hosur"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "Asha", res.User.Name)
	assert.Equal(t, "Hosur", res.User.Village)
	assert.Empty(t, res.User.WorkerCode)
	assert.True(t, res.User.Active())

	_, err = env.sessions.Get(context.Background(), sessionID)
	assert.ErrorIs(t, err, utils.ErrAuthSessionNotFound)
}

func TestRegister_WorkerDefaults(t *testing.T) {
	env := newTestEnv()
	sessionID := verifiedSession(t, env, "9876543210")

	res, err := env.svc.Register(context.Background(), models.RegistrationInput{
		SessionID: sessionID,
		Name:      "Kumar",
		Role:      models.RoleWorker,
		Services:  []string{"Electrician", " Electrician", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, "WRK001", res.User.WorkerCode)
	assert.Equal(t, []string{"Electrician"}, res.User.Services)
	assert.Equal(t, models.DefaultWorkingHours, res.User.WorkingHours)
	assert.Equal(t, models.AvailabilityAvailable, res.User.AvailabilityStatus)
}

func TestRegister_WorkerCodeRetry(t *testing.T) {
	env := newTestEnv()
	env.users.takeCode = 2
	sessionID := verifiedSession(t, env, "9876543210")

	res, err := env.svc.Register(context.Background(), models.RegistrationInput{
		SessionID: sessionID,
		Name:      "Kumar",
		Role:      models.RoleWorker,
		Services:  []string{"Plumber"},
	})
	require.NoError(t, err)
	assert.Equal(t, "WRK003", res.User.WorkerCode)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name  string
		in    models.RegistrationInput
		field string
	}{
		{"missing name", models.RegistrationInput{Role: models.RoleUser}, "name"},
		{"admin role", models.RegistrationInput{Name: "Raj", Role: models.RoleAdmin}, "role"},
		{"worker without services", models.RegistrationInput{Name: "Kumar", Role: models.RoleWorker}, "services"},
		{"bad hours", models.RegistrationInput{Name: "Kumar", Role: models.RoleWorker, Services: []string{"Plumber"}, WorkingHours: "6pm-9am"}, "workingHours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.in.SessionID = verifiedSession(t, env, "9876543210")
			_, err := env.svc.Register(context.Background(), tt.in)
			var verr *utils.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestRegister_RequiresVerifiedSession(t *testing.T) {
	env := newTestEnv()
	sessionID, err := env.svc.RequestOTP(context.Background(), "9876543210")
	require.NoError(t, err)

	_, err = env.svc.Register(context.Background(), models.RegistrationInput{SessionID: sessionID, Name: "Asha", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestRequestOTP_SMSFailure(t *testing.T) {
	env := newTestEnv()
	env.svc.SendSMS = func(string, string) error { return assert.AnError }
	_, err := env.svc.RequestOTP(context.Background(), "9876543210")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "OTP"))
}
