package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvironmentConfigOverridesFileValues(t *testing.T) {
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "3307")
	t.Setenv("DATABASE_DO_AUTO_MIGRATE", "true")
	t.Setenv("SERVER_INTERNAL_PORT", "9090")
	t.Setenv("MAIL_SERVER_SUMMARY_TO", "a@example.org,b@example.org")

	c := Configuration{}
	c.Database.Host = "localhost"
	c.Database.Port = 3306
	c.Server.InternalPort = 8080

	GetEnvironmentConfig(&c)

	assert.Equal(t, "db.internal", c.Database.Host)
	assert.Equal(t, 3307, c.Database.Port)
	assert.True(t, c.Database.DoAutoMigrate)
	assert.Equal(t, 9090, c.Server.InternalPort)
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, c.MailServer.SummaryTo)
}

func TestGetEnvironmentConfigKeepsFileValuesWhenUnset(t *testing.T) {
	t.Setenv("DATABASE_HOST", "")
	t.Setenv("DATABASE_USER", "")

	c := Configuration{}
	c.Database.Host = "localhost"
	c.Database.User = "dashboard"

	GetEnvironmentConfig(&c)

	assert.Equal(t, "localhost", c.Database.Host)
	assert.Equal(t, "dashboard", c.Database.User)
}

func TestNullTimeFromString(t *testing.T) {
	nt := NullTime{}
	nt.FromString("2024-03-01 10:30:00")
	assert.True(t, nt.Valid)
	assert.Equal(t, 2024, nt.Time.Year())

	nt = NullTime{}
	nt.FromString("not a date")
	assert.False(t, nt.Valid)
}
