package core

import (
	"crypto/tls"
	"errors"
	"log"

	"gopkg.in/gomail.v2"
)

// SendMail delivers a mail through the configured SMTP server. Credentials come
// from the configuration only, there is no built-in fallback account.
func SendMail(from string, to []string, subject string, body string, files []string) error {

	if Config.MailServer.SmtpHost == "" || Config.MailServer.SmtpPort <= 0 {
		return errors.New("no mail server configured")
	}

	if from == "" {
		from = Config.MailServer.SmtpUsername
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	for _, file := range files {
		m.Attach(file)
	}

	d := gomail.NewDialer(Config.MailServer.SmtpHost, Config.MailServer.SmtpPort, Config.MailServer.SmtpUsername, Config.MailServer.SmtpPassword)
	d.TLSConfig = &tls.Config{ServerName: Config.MailServer.SmtpHost}

	if err := d.DialAndSend(m); err != nil {
		log.Println(err)
		return err
	}
	return nil
}
