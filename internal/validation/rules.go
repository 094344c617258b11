// Package validation checks list-page requests against a declared, typed rule set.
package validation

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/monitoring-admin-api/pkg/errors"
)

// Kind enumerates the supported field rules.
type Kind int

const (
	KindFreeText Kind = iota + 1
	KindIdentifier
	KindIdentifierSet
	KindEnumMember
	KindBoundedInt
)

func (k Kind) String() string {
	switch k {
	case KindFreeText:
		return "string"
	case KindIdentifier:
		return "id"
	case KindIdentifierSet:
		return "array_id"
	case KindEnumMember:
		return "in"
	case KindBoundedInt:
		return "ge"
	default:
		return "unknown"
	}
}

// Rule is the typed rule attached to one request field.
type Rule struct {
	Kind    Kind
	Members []string
	Min     int
}

// Text accepts any single value.
func Text() Rule { return Rule{Kind: KindFreeText} }

// ID accepts a single database identifier.
func ID() Rule { return Rule{Kind: KindIdentifier} }

// IDs accepts any number of database identifiers. Blank elements are dropped.
func IDs() Rule { return Rule{Kind: KindIdentifierSet} }

// In accepts a single value out of members.
func In(members ...string) Rule { return Rule{Kind: KindEnumMember, Members: members} }

// Min accepts a single integer greater than or equal to min.
func Min(min int) Rule { return Rule{Kind: KindBoundedInt, Min: min} }

// RuleSet maps request field names to their rule.
type RuleSet map[string]Rule

// Request holds raw request values, query and form merged.
type Request map[string][]string

// Validator interprets rule sets. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator around a go-playground validator instance.
func New(validate *validator.Validate) *Validator {
	if validate == nil {
		validate = validator.New()
	}
	return &Validator{validate: validate}
}

// Validate checks every declared field present in req. Undeclared fields are dropped.
// The first failing field fails the whole request and no Input is returned.
func (v *Validator) Validate(req Request, rules RuleSet) (Input, error) {
	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	accepted := make(map[string][]string, len(fields))
	for _, field := range fields {
		values, present := lookup(req, field, rules[field])
		if !present {
			continue
		}
		if rules[field].Kind == KindIdentifierSet {
			values = slices.DeleteFunc(slices.Clone(values), func(value string) bool { return strings.TrimSpace(value) == "" })
		}
		if err := v.check(field, values, rules[field]); err != nil {
			return Input{}, err
		}
		accepted[field] = slices.Clone(values)
	}
	return Input{values: accepted}, nil
}

func lookup(req Request, field string, rule Rule) ([]string, bool) {
	values, ok := req[field]
	if rule.Kind != KindIdentifierSet {
		return values, ok
	}
	list, listOK := req[field+"[]"]
	if !ok && !listOK {
		return nil, false
	}
	return append(slices.Clone(values), list...), true
}

func (v *Validator) check(field string, values []string, rule Rule) error {
	if rule.Kind != KindIdentifierSet && len(values) != 1 {
		return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: a single value is expected", field))
	}

	switch rule.Kind {
	case KindFreeText:
		return nil
	case KindIdentifier:
		return v.checkID(field, values[0])
	case KindIdentifierSet:
		for _, value := range values {
			if err := v.checkID(field, value); err != nil {
				return err
			}
		}
		return nil
	case KindEnumMember:
		if !slices.Contains(rule.Members, values[0]) {
			return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: value must be one of %s", field, strings.Join(listedMembers(rule.Members), ", ")))
		}
		return nil
	case KindBoundedInt:
		n, err := strconv.Atoi(strings.TrimSpace(values[0]))
		if err != nil {
			return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: an integer is expected", field))
		}
		if err := v.validate.Var(n, fmt.Sprintf("gte=%d", rule.Min)); err != nil {
			return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: value must be no less than %d", field, rule.Min))
		}
		return nil
	default:
		return appErrors.Invalid(field, fmt.Sprintf("unsupported rule for field %q", field))
	}
}

func (v *Validator) checkID(field, value string) error {
	if err := v.validate.Var(value, "required,number,max=19"); err != nil {
		return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: a number is expected", field))
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return appErrors.Invalid(field, fmt.Sprintf("incorrect value for field %q: value is out of range", field))
	}
	return nil
}

func listedMembers(members []string) []string {
	return slices.DeleteFunc(slices.Clone(members), func(m string) bool { return m == "" })
}
