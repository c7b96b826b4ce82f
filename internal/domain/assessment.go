package domain

// AssessmentRecord is the root aggregate handed to the report engine.
// The engine never mutates it; every sub-object is optional.
type AssessmentRecord struct {
	ID                   string                `json:"id,omitempty"`
	AssessmentDate       string                `json:"assessment_date,omitempty"` // YYYY-MM-DD
	Assessor             string                `json:"assessor,omitempty"`
	Demographics         *Demographics         `json:"demographics,omitempty"`
	MedicalHistory       *MedicalHistory       `json:"medical_history,omitempty"`
	Symptoms             *Symptoms             `json:"symptoms,omitempty"`
	FunctionalAssessment *FunctionalAssessment `json:"functional_assessment,omitempty"`
	TypicalDay           *TypicalDay           `json:"typical_day,omitempty"`
	Environmental        *Environmental        `json:"environmental,omitempty"`
	Care                 *Care                 `json:"care,omitempty"`
	ADL                  *ADL                  `json:"adl,omitempty"`
}

// Demographics holds identity, contact and household information
type Demographics struct {
	FirstName        string            `json:"first_name,omitempty"`
	MiddleName       string            `json:"middle_name,omitempty"`
	LastName         string            `json:"last_name,omitempty"`
	DateOfBirth      string            `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender           string            `json:"gender,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	Email            string            `json:"email,omitempty"`
	Address          string            `json:"address,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	MaritalStatus    string            `json:"marital_status,omitempty"`
	NumberOfChildren int               `json:"number_of_children,omitempty"`
	ChildrenDetails  string            `json:"children_details,omitempty"`
	HouseholdMembers []HouseholdMember `json:"household_members,omitempty"`
}

// EmergencyContact is the person to reach on the claimant's behalf
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// HouseholdMember is one person living with the claimant
type HouseholdMember struct {
	Relationship string `json:"relationship"`
	Name         string `json:"name,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// MedicalHistory covers pre-existing conditions, the index injury and treatment
type MedicalHistory struct {
	PreExistingConditions []Condition  `json:"pre_existing_conditions,omitempty"`
	Injury                *Injury      `json:"injury,omitempty"`
	Surgeries             []Surgery    `json:"surgeries,omitempty"`
	Medications           []Medication `json:"medications,omitempty"`
	Allergies             []string     `json:"allergies,omitempty"`
	Treatments            []Treatment  `json:"treatments,omitempty"`
	Notes                 string       `json:"notes,omitempty"`
}

// Condition is a pre-existing diagnosis
type Condition struct {
	Name      string `json:"name"`
	Diagnosed string `json:"diagnosed,omitempty"`
	Status    string `json:"status,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Injury describes the accident that led to the assessment
type Injury struct {
	Date          string `json:"date,omitempty"`
	Mechanism     string `json:"mechanism,omitempty"`
	Description   string `json:"description,omitempty"`
	ImmediateCare string `json:"immediate_care,omitempty"`
}

// Surgery is a past surgical procedure
type Surgery struct {
	Procedure string `json:"procedure"`
	Date      string `json:"date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Medication is a current prescription or regular medication
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Purpose   string `json:"purpose,omitempty"`
}

// Treatment is an ongoing treatment provider
type Treatment struct {
	Provider  string `json:"provider,omitempty"`
	Type      string `json:"type"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Symptoms groups the symptom inventory
type Symptoms struct {
	Physical     []Symptom `json:"physical,omitempty"`
	Cognitive    []Symptom `json:"cognitive,omitempty"`
	Emotional    []Symptom `json:"emotional,omitempty"`
	GeneralNotes string    `json:"general_notes,omitempty"`
}

// Symptom is one entry of the symptom inventory. Physical symptoms are keyed by
// location, cognitive and emotional ones by name.
type Symptom struct {
	Location    string    `json:"location,omitempty"`
	Name        string    `json:"name,omitempty"`
	Severity    Severity  `json:"severity,omitempty"`
	Frequency   Frequency `json:"frequency,omitempty"`
	Aggravating string    `json:"aggravating,omitempty"`
	Relieving   string    `json:"relieving,omitempty"`
	Impact      string    `json:"impact,omitempty"`
	Management  string    `json:"management,omitempty"`
}

// DisplayName returns the location or name of the symptom
func (s Symptom) DisplayName() string {
	if s.Location != "" {
		return s.Location
	}
	return s.Name
}

// FunctionalAssessment holds range-of-motion and balance testing
type FunctionalAssessment struct {
	RangeOfMotion []ROMMeasurement       `json:"range_of_motion,omitempty"`
	BergBalance   *BergBalanceAssessment `json:"berg_balance,omitempty"`
	Tolerances    *Tolerances            `json:"tolerances,omitempty"`
	Observations  string                 `json:"observations,omitempty"`
}

// ROMMeasurement is one joint/movement range-of-motion measurement in degrees
type ROMMeasurement struct {
	Joint     string    `json:"joint"`
	Movement  string    `json:"movement"`
	Active    ActiveROM `json:"active"`
	Passive   *SidePair `json:"passive,omitempty"`
	PainScale *SidePair `json:"pain_scale,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// ActiveROM holds active measurements. Normal is looked up from the reference
// table when nil.
type ActiveROM struct {
	Left   float64  `json:"left"`
	Right  float64  `json:"right"`
	Normal *float64 `json:"normal,omitempty"`
}

// SidePair holds a left/right pair of values
type SidePair struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// BergBalanceItem is one of the 14 Berg items, scored 0-4
type BergBalanceItem struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Notes string `json:"notes,omitempty"`
}

// BergBalanceAssessment holds the ordered items and the caller-supplied total.
// TotalScore is not recomputed from the items.
type BergBalanceAssessment struct {
	Items        []BergBalanceItem `json:"items,omitempty"`
	TotalScore   int               `json:"total_score"`
	GeneralNotes string            `json:"general_notes,omitempty"`
}

// Tolerances records positional tolerances in minutes
type Tolerances struct {
	SittingMinutes  int    `json:"sitting_minutes,omitempty"`
	StandingMinutes int    `json:"standing_minutes,omitempty"`
	WalkingMinutes  int    `json:"walking_minutes,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// TypicalDay compares the pre-accident routine with the current one
type TypicalDay struct {
	PreAccident *DailyRoutine `json:"pre_accident,omitempty"`
	Current     *DailyRoutine `json:"current,omitempty"`
}

// DailyRoutine describes a typical day in one timeframe
type DailyRoutine struct {
	Sleep         *SleepSchedule    `json:"sleep,omitempty"`
	Morning       *PeriodActivities `json:"morning,omitempty"`
	Afternoon     *PeriodActivities `json:"afternoon,omitempty"`
	Evening       *PeriodActivities `json:"evening,omitempty"`
	Night         *PeriodActivities `json:"night,omitempty"`
	WeeklyPattern *WeeklyPattern    `json:"weekly_pattern,omitempty"`
}

// SleepSchedule describes sleep timing and quality
type SleepSchedule struct {
	WakeTime string `json:"wake_time,omitempty"`
	BedTime  string `json:"bed_time,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Naps     string `json:"naps,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// PeriodActivities lists what happens in one part of the day
type PeriodActivities struct {
	Activities []string `json:"activities,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

// WeeklyPattern describes how weekdays and weekends differ
type WeeklyPattern struct {
	Weekdays  string   `json:"weekdays,omitempty"`
	Weekends  string   `json:"weekends,omitempty"`
	Recurring []string `json:"recurring,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

// Environmental holds home-environment findings
type Environmental struct {
	DwellingType    string        `json:"dwelling_type,omitempty"`
	Levels          int           `json:"levels,omitempty"`
	Ownership       string        `json:"ownership,omitempty"`
	Entrance        *Entrance     `json:"entrance,omitempty"`
	Rooms           []RoomFinding `json:"rooms,omitempty"`
	Hazards         []string      `json:"hazards,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
	Notes           string        `json:"notes,omitempty"`
}

// Entrance describes access into the dwelling
type Entrance struct {
	Steps    int    `json:"steps,omitempty"`
	Railings bool   `json:"railings,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// RoomFinding is the assessment of one room
type RoomFinding struct {
	Name        string   `json:"name"`
	Floor       string   `json:"floor,omitempty"`
	Barriers    []string `json:"barriers,omitempty"`
	Adaptations []string `json:"adaptations,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// Care holds itemized attendant-care needs
type Care struct {
	Tasks           []CareTask `json:"tasks,omitempty"`
	CurrentProvider string     `json:"current_provider,omitempty"`
	Notes           string     `json:"notes,omitempty"`
}

// CareTask is one itemized attendant-care need. Duration is in minutes.
type CareTask struct {
	Category  CareCategory `json:"category"`
	Task      string       `json:"task"`
	Frequency int          `json:"frequency"`
	Duration  int          `json:"duration"`
	Period    CarePeriod   `json:"period"`
	Level     CareLevel    `json:"level_of_care"`
}

// ADL holds activities-of-daily-living status grouped by domain
type ADL struct {
	SelfCare     []ADLActivity `json:"self_care,omitempty"`
	Domestic     []ADLActivity `json:"domestic,omitempty"`
	Mobility     []ADLActivity `json:"mobility,omitempty"`
	Community    []ADLActivity `json:"community,omitempty"`
	GeneralNotes string        `json:"general_notes,omitempty"`
}

// ADLActivity is one activity's independence status. Key is the risk-rule
// lookup key, e.g. "meal_prep".
type ADLActivity struct {
	Key          string            `json:"key"`
	Name         string            `json:"name,omitempty"`
	Independence IndependenceLevel `json:"independence,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	Equipment    []string          `json:"equipment,omitempty"`
}

// ADLGroup is a named group of activities
type ADLGroup struct {
	Title      string
	Activities []ADLActivity
}

// Groups returns the non-empty activity groups in report order
func (a *ADL) Groups() []ADLGroup {
	if a == nil {
		return nil
	}
	all := []ADLGroup{
		{Title: "Self-Care", Activities: a.SelfCare},
		{Title: "Domestic", Activities: a.Domestic},
		{Title: "Mobility", Activities: a.Mobility},
		{Title: "Community", Activities: a.Community},
	}
	groups := make([]ADLGroup, 0, len(all))
	for _, g := range all {
		if len(g.Activities) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
