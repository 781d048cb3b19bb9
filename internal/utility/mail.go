package utility

import (
	"net/smtp"
	"os"
)

// SendMail delivers a plain-text mail through the configured SMTP account.
// Callers treat failures as best-effort (a missed welcome mail never fails
// the request that triggered it).
func SendMail(msg string, receiver string, subject string) error {
	from := os.Getenv("MAILING_ADDRESS")
	password := os.Getenv("MAILING_SERVICE_PSWD")

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	message := []byte(
		"From: CentraTutor\r\n" +
			"To: " + receiver + "\r\n" +
			"Subject: " + subject + "\r\n\r\n" +
			msg,
	)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{receiver}, message)
	if err != nil {
		return err
	}

	return nil
}
