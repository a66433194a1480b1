package commit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Person is the author or committer identity recorded in a commit.
//
// Wire format: "Name <email> timestamp timezone", e.g.
// "Ada Lovelace <ada@example.com> 1609459200 +0000".
type Person struct {
	Name  string
	Email string
	When  time.Time
}

var personPattern = regexp.MustCompile(`^(.+) <([^>]+)> (\d+) ([+-]\d{4})$`)

// NewPerson creates a Person with validation.
func NewPerson(name, email string, when time.Time) (*Person, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email format: %s", email)
	}

	return &Person{
		Name:  strings.TrimSpace(name),
		Email: email,
		When:  when,
	}, nil
}

// FormatGit renders the person in wire format with a +HHMM/-HHMM zone.
func (p *Person) FormatGit() string {
	timestamp := p.When.Unix()
	_, offset := p.When.Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60

	return fmt.Sprintf("%s <%s> %d %s%02d%02d", p.Name, p.Email, timestamp, sign, hours, minutes)
}

// ParsePerson parses a person from wire format.
func ParsePerson(s string) (*Person, error) {
	matches := personPattern.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid person format: %s", s)
	}

	timestamp, err := strconv.ParseInt(matches[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp: %w", err)
	}

	location, err := parseZone(matches[4])
	if err != nil {
		return nil, err
	}

	return NewPerson(matches[1], matches[2], time.Unix(timestamp, 0).In(location))
}

// Equal compares two persons by name, email and unix time.
func (p *Person) Equal(other *Person) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.Email == other.Email &&
		p.When.Unix() == other.When.Unix()
}

// String returns a human-readable representation.
func (p *Person) String() string {
	return fmt.Sprintf("%s <%s> at %s", p.Name, p.Email, p.When.Format(time.RFC3339))
}

// parseZone parses "+0530" or "-0800" into a fixed location.
func parseZone(tz string) (*time.Location, error) {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return nil, fmt.Errorf("invalid timezone: %s", tz)
	}

	hours, err := strconv.Atoi(tz[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone hours: %w", err)
	}
	minutes, err := strconv.Atoi(tz[3:5])
	if err != nil {
		return nil, fmt.Errorf("invalid timezone minutes: %w", err)
	}

	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}

	return time.FixedZone(tz, offset), nil
}
