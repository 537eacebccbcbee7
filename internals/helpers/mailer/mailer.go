// file: internals/helpers/mailer/mailer.go
package mailer

import "log"

// Mailer adalah seam ke layanan email eksternal. Implementasi produksi
// (SMTP/provider) hidup di luar repo ini; service hanya butuh kontraknya.
type Mailer interface {
	Send(to, subject, body string) error
}

// LogMailer menulis email ke log. Dipakai saat MAIL_PROVIDER belum diset
// dan di test.
type LogMailer struct {
	From string
}

func (m LogMailer) Send(to, subject, body string) error {
	log.Printf("[MAIL] from=%s to=%s subject=%q len=%d", m.From, to, subject, len(body))
	return nil
}
