package account

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Anurag-Zel/User-Registration/internal/validate"
)

func validateProfile(p Profile, requireNames bool) validate.Errors {
	v := validate.New()
	ValidateProfile(v, p, requireNames)
	return v.Errors()
}

func TestValidateProfile_RegisterRequiresNames(t *testing.T) {
	errs := validateProfile(Profile{}, true)

	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	require.Contains(t, fields, "profile.firstName")
	require.Contains(t, fields, "profile.lastName")
}

func TestValidateProfile_UpdateAllowsMissingNames(t *testing.T) {
	errs := validateProfile(Profile{}, false)
	require.Empty(t, errs)
}

func TestValidateProfile_Constraints(t *testing.T) {
	long := strings.Repeat("x", 501)
	p := Profile{
		FirstName: "A",
		LastName:  "B",
		Phone:     "01-bad",
		Bio:       long,
		Location:  &Location{City: strings.Repeat("c", 101)},
		Skills:    []string{strings.Repeat("s", 51)},
	}

	errs := validateProfile(p, true)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	require.True(t, fields["profile.phone"])
	require.True(t, fields["profile.bio"])
	require.True(t, fields["profile.location.city"])
	require.True(t, fields["profile.skills[0]"])
}

func TestValidateProfile_ExperienceEntries(t *testing.T) {
	p := Profile{
		FirstName: "A",
		LastName:  "B",
		Experience: []Experience{
			{Position: "Engineer"}, // company and start date missing
			{Company: "Acme", Position: "Engineer", StartDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}

	errs := validateProfile(p, true)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	require.True(t, fields["profile.experience[0].company"])
	require.True(t, fields["profile.experience[0].startDate"])
	require.False(t, fields["profile.experience[1].company"])
}

func TestValidateProfile_EducationEntries(t *testing.T) {
	p := Profile{
		FirstName: "A",
		LastName:  "B",
		Education: []Education{
			{Field: "CS"}, // institution, degree, start date missing
		},
	}

	errs := validateProfile(p, true)

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	require.True(t, fields["profile.education[0].institution"])
	require.True(t, fields["profile.education[0].degree"])
	require.True(t, fields["profile.education[0].startDate"])
}

func TestTrimProfile(t *testing.T) {
	p := Profile{
		FirstName: "  Ada ",
		LastName:  " Lovelace  ",
		Bio:       " bio ",
		Skills:    []string{" go "},
		Location:  &Location{City: " London ", Country: " UK "},
	}

	TrimProfile(&p)

	require.Equal(t, "Ada", p.FirstName)
	require.Equal(t, "Lovelace", p.LastName)
	require.Equal(t, "bio", p.Bio)
	require.Equal(t, "go", p.Skills[0])
	require.Equal(t, "London", p.Location.City)
	require.Equal(t, "UK", p.Location.Country)
}
