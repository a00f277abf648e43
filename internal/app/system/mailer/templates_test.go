package mailer

import (
	"strings"
	"testing"
)

func TestBuildAccessCodeEmail(t *testing.T) {
	e := BuildAccessCodeEmail(AccessCodeEmailData{
		SiteName:   "Kulturhub",
		EventTitle: "Spring Concert",
		Name:       "Jane Doe",
		AccessCode: "a1b2c3d4",
		CodeURL:    "https://example.org/my-code",
	})

	if !strings.Contains(e.Subject, "Spring Concert") {
		t.Errorf("subject missing event title: %q", e.Subject)
	}
	if !strings.Contains(e.TextBody, "a1b2c3d4") {
		t.Error("text body missing access code")
	}
	if !strings.Contains(e.HTMLBody, "a1b2c3d4") {
		t.Error("HTML body missing access code")
	}
	if !strings.Contains(e.HTMLBody, "Spring Concert") {
		t.Error("HTML body missing event title")
	}
}

func TestBuildMemberApprovedEmail(t *testing.T) {
	e := BuildMemberApprovedEmail(MemberApprovedEmailData{
		SiteName:         "Kulturhub",
		Name:             "Jane Doe",
		MembershipNumber: 42,
	})

	if !strings.Contains(e.TextBody, "42") {
		t.Error("text body missing membership number")
	}
	if e.HTMLBody != "" {
		t.Error("approval email is text-only")
	}
}

func TestBuildPasswordResetEmail(t *testing.T) {
	e := BuildPasswordResetEmail(PasswordResetEmailData{
		SiteName:  "Kulturhub",
		ResetLink: "https://example.org/login/reset/tok",
		ExpiresIn: "30 minutes",
	})

	if !strings.Contains(e.TextBody, "https://example.org/login/reset/tok") {
		t.Error("text body missing reset link")
	}
	if !strings.Contains(e.TextBody, "30 minutes") {
		t.Error("text body missing expiry")
	}
}
