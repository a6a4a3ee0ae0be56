package verilens

import (
	"errors"
	"testing"
)

func TestValidateSocialLink(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=abc123",
		"http://example.com/post/1",
		"https://social.example.co.uk/v/99?t=10",
		"  https://example.com/x  ",
	}
	for _, link := range valid {
		if err := ValidateSocialLink(link); err != nil {
			t.Errorf("ValidateSocialLink(%q) = %v, want nil", link, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"not a url",
		"ftp://example.com/file",
		"example.com/no-scheme",
		"https:///no-host",
		"https://127.0.0.1/clip",
		"https://[::1]/clip",
		"https://localhost/clip",
		"https://.example.com/x",
		"https://example./x",
	}
	for _, link := range invalid {
		if err := ValidateSocialLink(link); !errors.Is(err, ErrInvalidLink) {
			t.Errorf("ValidateSocialLink(%q) = %v, want ErrInvalidLink", link, err)
		}
	}
}
