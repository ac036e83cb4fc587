package service

import (
	"regexp"
	"strings"

	"github.com/stitch/backend/internal/model"
)

// Rule inspects the submitted fields and records any violation in errs.
// Rules must not overwrite an error already recorded for a field.
type Rule func(data model.FormData, errs model.ValidationErrors)

// Validator applies an ordered list of field rules to a submission.
// The three built-in rules run first, in a fixed order; collaborators can
// append rules with AddRule to extend the set without touching this package.
type Validator struct {
	rules []Rule
}

// emailPattern accepts local@domain with at least one dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLength    = 2
	minMessageLength = 10
)

// NewValidator creates a Validator with the built-in email, name and
// message rules.
func NewValidator() *Validator {
	return &Validator{rules: []Rule{emailRule, nameRule, messageRule}}
}

// AddRule appends a custom rule; it runs after the built-in rules.
func (v *Validator) AddRule(r Rule) {
	v.rules = append(v.rules, r)
}

// Validate runs every rule over data and returns the collected field errors.
// An empty result means the submission is valid.
func (v *Validator) Validate(data model.FormData) model.ValidationErrors {
	errs := make(model.ValidationErrors)
	for _, rule := range v.rules {
		rule(data, errs)
	}
	return errs
}

func emailRule(data model.FormData, errs model.ValidationErrors) {
	email := strings.TrimSpace(data["email"])
	switch {
	case email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		errs["email"] = "Please enter a valid email address"
	}
}

func nameRule(data model.FormData, errs model.ValidationErrors) {
	name := strings.TrimSpace(data["name"])
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len([]rune(name)) < minNameLength:
		errs["name"] = "Name must be at least 2 characters"
	}
}

func messageRule(data model.FormData, errs model.ValidationErrors) {
	message := strings.TrimSpace(data["message"])
	switch {
	case message == "":
		errs["message"] = "Message is required"
	case len([]rune(message)) < minMessageLength:
		errs["message"] = "Message must be at least 10 characters"
	}
}
