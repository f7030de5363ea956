// Package share formats the current ingredient list for SMS and WhatsApp
// and opens the platform's handler for the resulting link.
package share

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hammamikhairi/sofre/internal/logger"
)

// FormatIngredients renders the shareable message for a dish: a Persian
// header followed by one ingredient per line.
func FormatIngredients(dishName string, ingredients []string) string {
	return fmt.Sprintf("مواد لازم برای %s:\n\n%s", dishName, strings.Join(ingredients, "\n"))
}

// SMSLink builds an sms: URL carrying the message. The phone number may
// be empty; the messaging app then asks for a recipient.
func SMSLink(phone, message string) string {
	return fmt.Sprintf("sms:%s?body=%s", strings.TrimSpace(phone), url.QueryEscape(message))
}

// WhatsAppLink builds a wa.me URL carrying the message. Everything but
// digits is stripped from the phone number, per the wa.me format.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(message))
}

// Open hands the link to the platform's default handler.
func Open(link string, log *logger.Logger) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	log.Debug("opening %s", link)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening link: %w", err)
	}
	return nil
}
