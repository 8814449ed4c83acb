package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	LoadConfig()

	assert.Equal(t, "8080", AppConfig.AppPort)
	assert.Equal(t, "sevahub", AppConfig.DatabaseName)
	assert.Equal(t, "Asia/Kolkata", AppConfig.Timezone)
	assert.Equal(t, 60, AppConfig.ReminderLeadMinutes)
	assert.False(t, IsProduction())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REMINDER_LEAD_MINUTES", "15")
	t.Setenv("ENV", "production")

	LoadConfig()

	assert.Equal(t, "9090", AppConfig.AppPort)
	assert.Equal(t, 15, AppConfig.ReminderLeadMinutes)
	assert.True(t, IsProduction())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	prev := AppConfig
	defer func() { AppConfig = prev }()

	AppConfig.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, Location())

	AppConfig.Timezone = ""
	assert.Equal(t, time.UTC, Location())
}

func TestTokenTTL(t *testing.T) {
	prev := AppConfig
	defer func() { AppConfig = prev }()

	AppConfig.TokenTTLHours = 0
	assert.Equal(t, 24*time.Hour, TokenTTL())

	AppConfig.TokenTTLHours = 48
	assert.Equal(t, 48*time.Hour, TokenTTL())
}
