package account

import (
	"fmt"
	"strings"

	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

// TrimProfile strips surrounding whitespace from every string field, the way
// the store normalizes documents on write.
func TrimProfile(p *Profile) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Bio = strings.TrimSpace(p.Bio)
	if p.Location != nil {
		p.Location.City = strings.TrimSpace(p.Location.City)
		p.Location.Country = strings.TrimSpace(p.Location.Country)
	}
	for i := range p.Skills {
		p.Skills[i] = strings.TrimSpace(p.Skills[i])
	}
	for i := range p.Experience {
		p.Experience[i].Company = strings.TrimSpace(p.Experience[i].Company)
		p.Experience[i].Position = strings.TrimSpace(p.Experience[i].Position)
		p.Experience[i].Description = strings.TrimSpace(p.Experience[i].Description)
	}
	for i := range p.Education {
		p.Education[i].Institution = strings.TrimSpace(p.Education[i].Institution)
		p.Education[i].Degree = strings.TrimSpace(p.Education[i].Degree)
		p.Education[i].Field = strings.TrimSpace(p.Education[i].Field)
	}
}

// ValidateProfile records profile constraint violations on v. requireNames
// is set at registration, where first and last name are mandatory; profile
// updates validate only what is present.
func ValidateProfile(v *validate.Validation, p Profile, requireNames bool) {
	nameRules := []validate.Rule{
		validate.MaxLen(50, "Name must be between 1-50 characters"),
	}
	if requireNames {
		nameRules = append([]validate.Rule{
			validate.Required("First name is required"),
		}, nameRules...)
	}
	v.Field("profile.firstName", p.FirstName, nameRules...)

	lastRules := []validate.Rule{
		validate.MaxLen(50, "Name must be between 1-50 characters"),
	}
	if requireNames {
		lastRules = append([]validate.Rule{
			validate.Required("Last name is required"),
		}, lastRules...)
	}
	v.Field("profile.lastName", p.LastName, lastRules...)

	v.Field("profile.phone", p.Phone, validate.Phone())
	v.Field("profile.bio", p.Bio, validate.MaxLen(500, "Bio cannot exceed 500 characters"))

	if p.Location != nil {
		v.Field("profile.location.city", p.Location.City,
			validate.MaxLen(100, "City name cannot exceed 100 characters"))
		v.Field("profile.location.country", p.Location.Country,
			validate.MaxLen(100, "Country name cannot exceed 100 characters"))
	}

	v.StringList("profile.skills", p.Skills, 50, "Each skill cannot exceed 50 characters")

	for i, exp := range p.Experience {
		prefix := fmt.Sprintf("profile.experience[%d]", i)
		v.Field(prefix+".company", exp.Company,
			validate.Required("Company is required"),
			validate.MaxLen(100, "Company name cannot exceed 100 characters"))
		v.Field(prefix+".position", exp.Position,
			validate.Required("Position is required"),
			validate.MaxLen(100, "Position cannot exceed 100 characters"))
		v.Check(prefix+".startDate", !exp.StartDate.IsZero(), "Start date is required")
		v.Field(prefix+".description", exp.Description,
			validate.MaxLen(500, "Description cannot exceed 500 characters"))
	}

	for i, edu := range p.Education {
		prefix := fmt.Sprintf("profile.education[%d]", i)
		v.Field(prefix+".institution", edu.Institution,
			validate.Required("Institution is required"),
			validate.MaxLen(100, "Institution name cannot exceed 100 characters"))
		v.Field(prefix+".degree", edu.Degree,
			validate.Required("Degree is required"),
			validate.MaxLen(100, "Degree cannot exceed 100 characters"))
		v.Field(prefix+".field", edu.Field,
			validate.MaxLen(100, "Field cannot exceed 100 characters"))
		v.Check(prefix+".startDate", !edu.StartDate.IsZero(), "Start date is required")
	}
}
