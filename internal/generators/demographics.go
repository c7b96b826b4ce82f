package generators

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

const dateLayout = "2006-01-02"

// DemographicsGenerator renders identity, contact and household details
type DemographicsGenerator struct {
	base
	formatting.Base
}

// NewDemographicsGenerator creates the demographics generator
func NewDemographicsGenerator(deps Dependencies) *DemographicsGenerator {
	return &DemographicsGenerator{
		base: base{key: domain.SectionDemographics, title: "Demographics", order: OrderDemographics, typ: domain.SectionStructured, deps: deps},
	}
}

// Generate implements Generator
func (g *DemographicsGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	d := record.Demographics
	if d == nil {
		return g.render(ctx, blank("identity", "contact", "emergency_contact", "family", "household"))
	}

	name := strings.Join(strings.Fields(strings.Join([]string{d.FirstName, d.MiddleName, d.LastName}, " ")), " ")
	var age string
	if years, ok := AgeOn(d.DateOfBirth, record.AssessmentDate); ok {
		age = fmt.Sprintf("%d", years)
	}

	var emergency string
	if ec := d.EmergencyContact; ec != nil && ec.Name != "" {
		emergency = ec.Name
		if ec.Relationship != "" {
			emergency += " (" + ec.Relationship + ")"
		}
		if ec.Phone != "" {
			emergency += ", " + ec.Phone
		}
	}

	var children string
	if d.NumberOfChildren > 0 {
		children = fmt.Sprintf("%d", d.NumberOfChildren)
		if d.ChildrenDetails != "" {
			children += " - " + d.ChildrenDetails
		}
	}

	return g.render(ctx, map[string]interface{}{
		"identity": g.Lines(
			g.FormatField("Name", name),
			g.FormatField("Date of Birth", d.DateOfBirth),
			g.FormatField("Age", age),
			g.FormatField("Gender", d.Gender),
		),
		"contact": g.Lines(
			g.FormatField("Phone", d.Phone),
			g.FormatField("Email", d.Email),
			g.FormatField("Address", d.Address),
		),
		"emergency_contact": g.FormatField("Emergency Contact", emergency),
		"family": g.Lines(
			g.FormatField("Marital Status", d.MaritalStatus),
			g.FormatField("Children", children),
		),
		"household": d.HouseholdMembers,
	})
}

// AgeOn returns the age in whole years on the given date. Both dates must parse;
// there is no age without an assessment date.
func AgeOn(dob, on string) (int, bool) {
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0, false
	}
	at, err := time.Parse(dateLayout, on)
	if err != nil {
		return 0, false
	}
	if at.Before(birth) {
		return 0, false
	}
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years, true
}
