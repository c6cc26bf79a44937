package claims

import (
	"context"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
)

type Repository interface {
	InsertProperty(ctx context.Context, claim PropertyClaim) error
	InsertMotor(ctx context.Context, claim MotorClaim) error
	ListByPhone(ctx context.Context, phone string) ([]Summary, error)
}

type repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) Repository {
	return &repository{
		db: db,
	}
}

// InsertProperty writes the claim; the server assigns submission_date. A
// duplicate policy number surfaces as database.ErrDuplicate through the
// primary key.
func (r *repository) InsertProperty(ctx context.Context, claim PropertyClaim) error {
	query := `
		INSERT INTO property_claims
			(policy_num, ph_num, staff_id, inc_date, inc_time, address,
			property_type, damage_type, country, emg_cont, descr)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Insert(ctx, query,
		claim.PolicyNum, claim.PhoneNum, claim.StaffID, claim.IncidentDate,
		claim.IncidentTime, claim.Address, claim.PropertyType, claim.DamageType,
		claim.Country, claim.EmergencyContact, claim.Description)

	return err
}

func (r *repository) InsertMotor(ctx context.Context, claim MotorClaim) error {
	query := `
		INSERT INTO motor_claims
			(policy_num, ph_num, staff_id, inc_date, inc_time, plate_no, colour,
			engine_no, chasis_no, km_reading, variant_year, address, country, descr)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Insert(ctx, query,
		claim.PolicyNum, claim.PhoneNum, claim.StaffID, claim.IncidentDate,
		claim.IncidentTime, claim.PlateNo, claim.Colour, claim.EngineNo,
		claim.ChassisNo, claim.KmReading, claim.VariantYear, claim.Address,
		claim.Country, claim.Description)

	return err
}

// ListByPhone returns property claims newest-first, then motor claims
// newest-first. The two lists are concatenated, not merged into one ordering.
func (r *repository) ListByPhone(ctx context.Context, phone string) ([]Summary, error) {
	summaries := []Summary{}

	query := `
		SELECT policy_num, inc_date, submission_date
		FROM property_claims
		WHERE ph_num = ?
		ORDER BY submission_date DESC
	`

	rows, err := r.db.Select(ctx, query, phone)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries = append(summaries, summaryFromRow(row, typeProperty))
	}

	query = `
		SELECT policy_num, inc_date, submission_date
		FROM motor_claims
		WHERE ph_num = ?
		ORDER BY submission_date DESC
	`

	rows, err = r.db.Select(ctx, query, phone)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		summaries = append(summaries, summaryFromRow(row, typeMotor))
	}

	return summaries, nil
}

func summaryFromRow(row database.Row, claimType string) Summary {
	summary := Summary{
		ID:       row.String("policy_num"),
		Type:     claimType,
		Status:   statusSubmitted,
		Progress: defaultProgress,
		Amount:   0,
	}

	if incDate, ok := row.Time("inc_date"); ok {
		formatted := incDate.Format(time.DateOnly)
		summary.Date = &formatted
	}

	if submitted, ok := row.Time("submission_date"); ok {
		formatted := submitted.Format(time.RFC3339)
		summary.SubmissionDate = &formatted
	}

	return summary
}
