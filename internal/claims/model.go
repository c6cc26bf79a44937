package claims

// PropertyClaim is the property-claim submission payload. Incident date and
// time arrive as strings and are validated before insert; the policy number
// is the caller-supplied primary key.
type PropertyClaim struct {
	PolicyNum        string  `json:"policy_num"`
	PhoneNum         string  `json:"ph_num"`
	StaffID          *string `json:"staff_id"`
	IncidentDate     string  `json:"inc_date"`
	IncidentTime     string  `json:"inc_time"`
	Address          string  `json:"address"`
	PropertyType     string  `json:"property_type"`
	DamageType       string  `json:"damage_type"`
	Country          string  `json:"country"`
	EmergencyContact *string `json:"emg_cont"`
	Description      string  `json:"descr"`
}

// MotorClaim mirrors PropertyClaim with vehicle attributes. Its policy-number
// namespace is independent of the property one.
type MotorClaim struct {
	PolicyNum    string  `json:"policy_num"`
	PhoneNum     string  `json:"ph_num"`
	StaffID      *string `json:"staff_id"`
	IncidentDate string  `json:"inc_date"`
	IncidentTime string  `json:"inc_time"`
	PlateNo      string  `json:"plate_no"`
	Colour       string  `json:"colour"`
	EngineNo     *string `json:"engine_no"`
	ChassisNo    *string `json:"chasis_no"`
	KmReading    *string `json:"km_reading"`
	VariantYear  string  `json:"variant_year"`
	Address      string  `json:"address"`
	Country      string  `json:"country"`
	Description  string  `json:"descr"`
}

// Summary is the denormalized listing record. Status, progress and amount are
// fixed placeholders until claim processing exists.
type Summary struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Date           *string `json:"date"`
	SubmissionDate *string `json:"submission_date"`
	Status         string  `json:"status"`
	Progress       int     `json:"progress"`
	Amount         float64 `json:"amount"`
}

const (
	typeProperty = "Property Insurance"
	typeMotor    = "Motor Insurance"

	statusSubmitted = "Submitted"
	defaultProgress = 10
)
