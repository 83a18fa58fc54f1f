package settings

import (
	"strings"
	"time"
)

// SiteSettings is the single live configuration record for the public
// site: branding, the inquiry notification recipient list and
// third-party integration keys.
type SiteSettings struct {
	ID              int64  `json:"id"`
	SiteName        string `json:"site_name"`
	CompanyFullName string `json:"company_full_name"`
	LogoID          *int64 `json:"logo_id,omitempty"`
	FaviconID       *int64 `json:"favicon_id,omitempty"`

	NotificationEmails string `json:"notification_emails"`
	DefaultEmailFrom   string `json:"default_email_from"`

	RecaptchaSiteKey   string `json:"recaptcha_site_key,omitempty"`
	RecaptchaSecretKey string `json:"-"`
	YandexMetricaID    string `json:"yandex_metrica_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationRecipients splits the stored recipient list on commas and
// semicolons, trimming whitespace and dropping empties.
func (s *SiteSettings) NotificationRecipients() []string {
	fields := strings.FieldsFunc(s.NotificationEmails, func(r rune) bool {
		return r == ',' || r == ';'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
