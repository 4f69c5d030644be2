// Package validation holds the field-level checks shared by every form.
// All validators are pure and total: malformed input yields false, never a panic.
package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"coursehub/backend/models"
)

var (
	emailRegex  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex  = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
	cardRegex   = regexp.MustCompile(`^\d{13,19}$`)
	expiryRegex = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2})$`)
	cvvRegex    = regexp.MustCompile(`^\d{3,4}$`)
)

var languages = []string{"English", "German", "French", "Italian", "Spanish", "Chinese", "Japanese", "Persian"}

const (
	MinPasswordLength    = 6
	MaxPasswordBytes     = 72
	MaxNameLength        = 50
	MinSeats             = 1
	MaxSeats             = 10
	MinRating            = 1
	MaxRating            = 5
	MinReviewTextLength  = 10
	MaxReviewTextLength  = 1000
	MinReviewTitleLength = 3
	MaxReviewTitleLength = 100
)

func Email(s string) bool {
	return emailRegex.MatchString(s)
}

func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// PasswordFits reports whether s is within the bcrypt input limit.
func PasswordFits(s string) bool {
	return len(s) <= MaxPasswordBytes
}

func ConfirmPassword(password, confirm string) bool {
	return password == confirm
}

func Name(s string) bool {
	return between(trimmedLen(s), 1, MaxNameLength)
}

// Phone accepts digits, spaces, parentheses and hyphens with an optional
// leading '+', at least ten of them.
func Phone(s string) bool {
	return phoneRegex.MatchString(s)
}

// CardNumber checks the digit count and the Luhn checksum.
func CardNumber(s string) bool {
	cleaned := strings.Join(strings.Fields(s), "")
	if !cardRegex.MatchString(cleaned) {
		return false
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func ExpiryDate(s string) bool {
	return ExpiryDateAt(s, time.Now())
}

// ExpiryDateAt reports whether an MM/YY card expiry is still valid at now.
// A card stays valid through the last day of its expiry month.
func ExpiryDateAt(s string, now time.Time) bool {
	m := expiryRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	month, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])

	// first instant of the month after expiry
	end := time.Date(2000+year, time.Month(month)+1, 1, 0, 0, 0, 0, now.Location())
	return end.After(now)
}

func CVV(s string) bool {
	return cvvRegex.MatchString(s)
}

func Seats(n int) bool {
	return between(n, MinSeats, MaxSeats)
}

func Rating(n int) bool {
	return between(n, MinRating, MaxRating)
}

func ReviewText(s string) bool {
	return between(trimmedLen(s), MinReviewTextLength, MaxReviewTextLength)
}

func ReviewTitle(s string) bool {
	return between(trimmedLen(s), MinReviewTitleLength, MaxReviewTitleLength)
}

func PriceRange(min, max float64) bool {
	return finite(min) && finite(max) && min >= 0 && max >= min
}

func Price(p float64) bool {
	return finite(p) && p >= 0
}

func CourseSelection(id string) bool {
	return strings.TrimSpace(id) != ""
}

// Level matches one of the catalog levels, ignoring case.
func Level(s string) bool {
	_, ok := CanonicalLevel(s)
	return ok
}

func Language(s string) bool {
	_, ok := CanonicalLanguage(s)
	return ok
}

// CanonicalLevel returns the catalog spelling of a level given in any case.
func CanonicalLevel(s string) (string, bool) {
	return lookupFold(models.Levels, s)
}

func CanonicalLanguage(s string) (string, bool) {
	return lookupFold(languages, s)
}

// ParseInt parses a form value as a base-10 integer after trimming.
func ParseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func between(n, lo, hi int) bool {
	return n >= lo && n <= hi
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func lookupFold(list []string, s string) (string, bool) {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return v, true
		}
	}
	return "", false
}
