package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfigDefaultsAndOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowOrigins)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Empty(t, cfg.RedisAddr)
	assert.Nil(t, InitRedis(cfg))
}

func TestInitLogger(t *testing.T) {
	log := InitLogger(&Config{Environment: "production", LogLevel: "debug"})
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, logrus.DebugLevel, log.Level)

	log = InitLogger(&Config{Environment: "development", LogLevel: "bogus"})
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
	assert.Equal(t, logrus.InfoLevel, log.Level)
}

func TestDefaultTicketTypesCoverEveryKind(t *testing.T) {
	var remote, inPerson, withHotel int
	for _, tt := range defaultTicketTypes() {
		switch {
		case tt.IsRemote:
			remote++
		case tt.IncludesHotel:
			withHotel++
		default:
			inPerson++
		}
	}
	assert.Equal(t, 1, remote)
	assert.Equal(t, 1, inPerson)
	assert.Equal(t, 1, withHotel)
}
