// Package forms validates login and signup form snapshots.
package forms

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf16"
)

const (
	MsgRequired         = "This field is required"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgPasswordMismatch = "Passwords do not match"
)

type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypePassword FieldType = "password"
)

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
)

type Field struct {
	Name     string
	Type     FieldType
	Required bool
}

// Annotation is the single error message attached to an invalid field.
type Annotation struct {
	Field   string
	Message string
}

type Report struct {
	Valid       bool
	Annotations []Annotation
	// Notice is a form-level message that blocks submission, such as a
	// password mismatch. It is shown through the flash notifier.
	Notice string
}

// Message returns the annotation for field, or "".
func (r Report) Message(field string) string {
	for _, a := range r.Annotations {
		if a.Field == field {
			return a.Message
		}
	}
	return ""
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func LoginFields() []Field {
	return []Field{
		{Name: FieldUsername, Type: TypeText, Required: true},
		{Name: FieldPassword, Type: TypePassword, Required: true},
	}
}

func SignupFields() []Field {
	return []Field{
		{Name: FieldUsername, Type: TypeText, Required: true},
		{Name: FieldEmail, Type: TypeEmail, Required: true},
		{Name: FieldPassword, Type: TypePassword, Required: true},
		{Name: FieldConfirmPassword, Type: TypePassword, Required: true},
	}
}

// Validate checks required fields and email format. Each invalid field
// gets exactly one annotation, in field order.
func Validate(fields []Field, values url.Values) Report {
	rep := Report{Valid: true}
	for _, f := range fields {
		raw := values.Get(f.Name)
		v := strings.TrimSpace(raw)
		var msg string
		switch {
		case f.Required && v == "":
			msg = MsgRequired
		case f.Type == TypeEmail && v != "" && !ValidEmail(raw):
			msg = MsgInvalidEmail
		}
		if msg != "" {
			rep.Valid = false
			rep.Annotations = append(rep.Annotations, Annotation{Field: f.Name, Message: msg})
		}
	}
	return rep
}

// CheckSubmit is Validate followed by the confirm-password comparison,
// which only runs once every field is valid. A mismatch blocks submission
// with a form-level notice.
func CheckSubmit(fields []Field, values url.Values) Report {
	rep := Validate(fields, values)
	if !rep.Valid || !hasField(fields, FieldConfirmPassword) {
		return rep
	}
	confirm := values.Get(FieldConfirmPassword)
	if confirm != "" && confirm != values.Get(FieldPassword) {
		rep.Valid = false
		rep.Notice = MsgPasswordMismatch
	}
	return rep
}

// ConfirmMismatch is the live check run on every confirm keystroke. An
// empty side never counts as a mismatch.
func ConfirmMismatch(password, confirm string) bool {
	return password != "" && confirm != "" && password != confirm
}

func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func hasField(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

type Level int

const (
	Weak Level = iota
	Medium
	Strong
)

func (l Level) String() string {
	switch l {
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	default:
		return "weak"
	}
}

// Strength scores a password: one point each for length >= 8, mixed case,
// a digit and a symbol. Classes are ASCII only and length counts UTF-16
// code units, the same rules the browser meter applies.
func Strength(password string) (int, Level) {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	score := 0
	if len(utf16.Encode([]rune(password))) >= 8 {
		score++
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}
	switch {
	case score >= 4:
		return score, Strong
	case score >= 2:
		return score, Medium
	default:
		return score, Weak
	}
}
