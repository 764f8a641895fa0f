package core

import (
	"os"
	"strconv"
	"strings"
)

func GetEnvironmentConfig(c *Configuration) {
	if os.Getenv("DATABASE_HOST") != "" {
		c.Database.Host = os.Getenv("DATABASE_HOST")
	}
	if os.Getenv("DATABASE_DATABASE") != "" {
		c.Database.Database = os.Getenv("DATABASE_DATABASE")
	}
	if os.Getenv("DATABASE_USER") != "" {
		c.Database.User = os.Getenv("DATABASE_USER")
	}
	if os.Getenv("DATABASE_PASSWORD") != "" {
		c.Database.Password = os.Getenv("DATABASE_PASSWORD")
	}
	if os.Getenv("DATABASE_PORT") != "" {
		c.Database.Port, _ = strconv.Atoi(os.Getenv("DATABASE_PORT"))
	}
	if os.Getenv("DATABASE_DO_AUTO_MIGRATE") != "" {
		c.Database.DoAutoMigrate, _ = strconv.ParseBool(os.Getenv("DATABASE_DO_AUTO_MIGRATE"))
	}
	if os.Getenv("DATABASE_DO_INSERT") != "" {
		c.Database.DoInsert, _ = strconv.ParseBool(os.Getenv("DATABASE_DO_INSERT"))
	}
	if os.Getenv("DATABASE_DEBUG") != "" {
		c.Database.Debug, _ = strconv.ParseBool(os.Getenv("DATABASE_DEBUG"))
	}

	if os.Getenv("SERVER_HOSTNAME") != "" {
		c.Server.Hostname = os.Getenv("SERVER_HOSTNAME")
	}
	if os.Getenv("SERVER_INTERNAL_PORT") != "" {
		c.Server.InternalPort, _ = strconv.Atoi(os.Getenv("SERVER_INTERNAL_PORT"))
	}
	if os.Getenv("SERVER_WITH_SSL") != "" {
		c.Server.WithSSL, _ = strconv.ParseBool(os.Getenv("SERVER_WITH_SSL"))
	}
	if os.Getenv("SERVER_SSL_CERT_FILE") != "" {
		c.Server.SSLCertFile = os.Getenv("SERVER_SSL_CERT_FILE")
	}
	if os.Getenv("SERVER_SSL_KEY_FILE") != "" {
		c.Server.SSLKeyFile = os.Getenv("SERVER_SSL_KEY_FILE")
	}
	if os.Getenv("SERVER_DELIVER_FRONT_END") != "" {
		c.Server.DeliverFrontEnd, _ = strconv.ParseBool(os.Getenv("SERVER_DELIVER_FRONT_END"))
	}
	if os.Getenv("SERVER_FRONT_END_PATH") != "" {
		c.Server.FrontEndPath = os.Getenv("SERVER_FRONT_END_PATH")
	}
	if os.Getenv("SERVER_UPLOAD_FILEPATH") != "" {
		c.Server.UploadFilepath = os.Getenv("SERVER_UPLOAD_FILEPATH")
	}
	if os.Getenv("SERVER_TMP_PATH") != "" {
		c.Server.TmpPath = os.Getenv("SERVER_TMP_PATH")
	}
	if os.Getenv("SERVER_CHART_FONT_FILE") != "" {
		c.Server.ChartFontFile = os.Getenv("SERVER_CHART_FONT_FILE")
	}

	if os.Getenv("MAIL_SERVER_SMTP_HOST") != "" {
		c.MailServer.SmtpHost = os.Getenv("MAIL_SERVER_SMTP_HOST")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PORT") != "" {
		c.MailServer.SmtpPort, _ = strconv.Atoi(os.Getenv("MAIL_SERVER_SMTP_PORT"))
	}
	if os.Getenv("MAIL_SERVER_SMTP_USERNAME") != "" {
		c.MailServer.SmtpUsername = os.Getenv("MAIL_SERVER_SMTP_USERNAME")
	}
	if os.Getenv("MAIL_SERVER_SMTP_PASSWORD") != "" {
		c.MailServer.SmtpPassword = os.Getenv("MAIL_SERVER_SMTP_PASSWORD")
	}
	if os.Getenv("MAIL_SERVER_SUMMARY_FROM") != "" {
		c.MailServer.SummaryFrom = os.Getenv("MAIL_SERVER_SUMMARY_FROM")
	}
	if os.Getenv("MAIL_SERVER_SUMMARY_TO") != "" {
		c.MailServer.SummaryTo = strings.Split(os.Getenv("MAIL_SERVER_SUMMARY_TO"), ",")
	}
}
