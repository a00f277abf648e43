// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// AccessCodeEmailData holds data for the registration confirmation email.
type AccessCodeEmailData struct {
	SiteName   string
	EventTitle string
	Name       string
	AccessCode string
	CodeURL    string // page where the attendee enters the code to see their QR
}

// BuildAccessCodeEmail creates the email sent after an admin registers an
// attendee for an event.
func BuildAccessCodeEmail(data AccessCodeEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("Your registration for %s", data.EventTitle),
		TextBody: buildAccessCodeText(data),
		HTMLBody: buildAccessCodeHTML(data),
	}
}

func buildAccessCodeText(data AccessCodeEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s,\n\n", data.Name)
	fmt.Fprintf(&buf, "You are registered for %s.\n\n", data.EventTitle)
	fmt.Fprintf(&buf, "Your access code is: %s\n\n", data.AccessCode)
	fmt.Fprintf(&buf, "Enter it at %s to view the QR code you will show at the door.\n", data.CodeURL)
	return buf.String()
}

func buildAccessCodeHTML(data AccessCodeEmailData) string {
	tmpl := template.Must(template.New("access_code").Parse(accessCodeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

// MemberApprovedEmailData holds data for the membership confirmation email.
type MemberApprovedEmailData struct {
	SiteName         string
	Name             string
	MembershipNumber int64
}

// BuildMemberApprovedEmail creates the email sent when an admin approves a
// membership application.
func BuildMemberApprovedEmail(data MemberApprovedEmailData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Hello %s,\n\n", data.Name)
	fmt.Fprintf(&buf, "Welcome to %s! Your membership application has been approved.\n\n", data.SiteName)
	fmt.Fprintf(&buf, "Your membership number is %d. Quote it when registering for events to get the member price.\n", data.MembershipNumber)

	return Email{
		Subject:  fmt.Sprintf("Welcome to %s", data.SiteName),
		TextBody: buf.String(),
	}
}

// PasswordResetEmailData holds data for the admin password-reset email.
type PasswordResetEmailData struct {
	SiteName  string
	ResetLink string
	ExpiresIn string // e.g., "30 minutes"
}

// BuildPasswordResetEmail creates the password-reset email for back-office
// accounts.
func BuildPasswordResetEmail(data PasswordResetEmailData) Email {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "A password reset was requested for your %s account.\n\n", data.SiteName)
	fmt.Fprintf(&buf, "Reset your password here:\n%s\n\n", data.ResetLink)
	fmt.Fprintf(&buf, "The link expires in %s. If you did not request this, you can safely ignore this email.\n", data.ExpiresIn)

	return Email{
		Subject:  fmt.Sprintf("Reset your %s password", data.SiteName),
		TextBody: buf.String(),
	}
}

const accessCodeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Registration</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #7c2d12;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151;">
                Hello {{.Name}}, you are registered for <strong>{{.EventTitle}}</strong>.
              </p>
              <p style="margin: 0 0 12px; font-size: 14px; color: #6b7280;">Your access code:</p>
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; text-align: center; margin-bottom: 24px;">
                <span style="font-size: 28px; font-weight: 700; letter-spacing: 6px; color: #1f2937; font-family: 'Courier New', monospace;">{{.AccessCode}}</span>
              </div>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.CodeURL}}" style="display: inline-block; padding: 14px 32px; background-color: #7c2d12; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Show my QR code
                    </a>
                  </td>
                </tr>
              </table>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
