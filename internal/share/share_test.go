package share

import (
	"strings"
	"testing"
)

func TestFormatIngredients(t *testing.T) {
	msg := FormatIngredients("قورمه سبزی", []string{"۵۰۰ گرم گوشت", "سبزی قورمه"})

	if !strings.HasPrefix(msg, "مواد لازم برای قورمه سبزی:\n\n") {
		t.Fatalf("header mismatch: %q", msg)
	}
	if !strings.Contains(msg, "۵۰۰ گرم گوشت\nسبزی قورمه") {
		t.Fatalf("ingredients must be newline-joined: %q", msg)
	}
}

func TestSMSLink(t *testing.T) {
	link := SMSLink("+98 912 000 0000", "سلام دنیا")

	if !strings.HasPrefix(link, "sms:+98 912 000 0000?body=") {
		t.Fatalf("unexpected link: %q", link)
	}
	if strings.Contains(link, "سلام") {
		t.Fatalf("body must be percent-encoded: %q", link)
	}
}

func TestSMSLinkEmptyPhone(t *testing.T) {
	link := SMSLink("", "پیام")
	if !strings.HasPrefix(link, "sms:?body=") {
		t.Fatalf("empty phone must still produce a valid link: %q", link)
	}
}

func TestWhatsAppLinkStripsNonDigits(t *testing.T) {
	link := WhatsAppLink("+98 (912) 000-0000", "پیام")

	if !strings.HasPrefix(link, "https://wa.me/989120000000?text=") {
		t.Fatalf("phone must be digits only: %q", link)
	}
}
