// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds Kulturhub-specific configuration.
//
// WAFFLE's CoreConfig covers framework-level settings (ports, TLS, log
// level, environment). Everything the association site itself needs lives
// here: the MongoDB connection, session cookies, SMTP for outgoing mail,
// and the optional Google OAuth credentials for admin sign-in.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies (must be strong in production)
	SessionDomain string // cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Base URL for links in emails and QR lookups
	// (e.g. "https://kulturhub.example" or "http://localhost:3000").
	BaseURL string

	// Google OAuth for admin sign-in. Both must be set for the button
	// to appear on the login page.
	GoogleClientID     string
	GoogleClientSecret string

	// AdminEmail is promoted to (or created as) an admin account at
	// startup so a fresh deployment has someone who can sign in.
	AdminEmail string
}
