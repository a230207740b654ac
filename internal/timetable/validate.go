package timetable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// listingValidate checks the struct tags on the model types.
var listingValidate = validator.New()

// Validate checks a single listing for structural problems.
func Validate(l Listing) error {
	if err := listingValidate.Struct(l); err != nil {
		return fmt.Errorf("%w %q: %s", ErrInvalidListing, l.Name, describeValidation(err))
	}
	return nil
}

// ValidateListings validates each listing and checks that every present week
// presence vector in the batch has the same length.
func ValidateListings(listings []Listing) error {
	weeks := -1
	weeksFrom := ""
	for _, l := range listings {
		if err := Validate(l); err != nil {
			return err
		}
		for _, c := range l.Components {
			for si, s := range c.Streams {
				for oi, o := range s.Occurrences {
					if o.WeekPresence == nil {
						continue
					}
					where := fmt.Sprintf("%s/%s/stream %d/occurrence %d", l.Name, c.Name, si, oi)
					if weeks == -1 {
						weeks = len(o.WeekPresence)
						weeksFrom = where
						continue
					}
					if len(o.WeekPresence) != weeks {
						return fmt.Errorf("%w: %s has %d weeks but %s has %d",
							ErrWeekPresenceMismatch, where, len(o.WeekPresence), weeksFrom, weeks)
					}
				}
			}
		}
	}
	return nil
}

// describeValidation flattens validator errors into one readable line.
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
