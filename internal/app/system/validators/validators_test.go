package validators

import "testing"

func TestEmailValid(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"a@b.co", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"Jana Novak <jana@example.com>", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := EmailValid(tt.email); got != tt.want {
				t.Errorf("EmailValid(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestPhoneValid(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+420601234567", true},
		{"601234567", true},
		{"123456", true},

		{"", false},
		{"12345", false},            // too short
		{"1234567890123456", false}, // too long
		{"+420 601 234 567", false}, // separators not stripped
		{"abc123456", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := PhoneValid(tt.phone); got != tt.want {
				t.Errorf("PhoneValid(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}
