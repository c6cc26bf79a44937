package claims

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Apserty/ADENGAPPA-NAALU-PERU/internal/database"
)

type storedClaim struct {
	policyNum   string
	phone       string
	incDate     string
	claimType   string
	seq         int64
	submittedAt time.Time
}

// MemoryRepository keeps claims in process, one policy-number namespace per
// claim type, with the same conflict and ordering contract as the MySQL
// repository. Used by tests.
type MemoryRepository struct {
	mu       sync.Mutex
	seq      int64
	property map[string]storedClaim
	motor    map[string]storedClaim
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		property: make(map[string]storedClaim),
		motor:    make(map[string]storedClaim),
	}
}

func (r *MemoryRepository) InsertProperty(_ context.Context, claim PropertyClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.property[claim.PolicyNum]; ok {
		return fmt.Errorf("%w: property_claims", database.ErrDuplicate)
	}

	r.seq++
	r.property[claim.PolicyNum] = storedClaim{
		policyNum:   claim.PolicyNum,
		phone:       claim.PhoneNum,
		incDate:     claim.IncidentDate,
		claimType:   typeProperty,
		seq:         r.seq,
		submittedAt: time.Now(),
	}

	return nil
}

func (r *MemoryRepository) InsertMotor(_ context.Context, claim MotorClaim) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.motor[claim.PolicyNum]; ok {
		return fmt.Errorf("%w: motor_claims", database.ErrDuplicate)
	}

	r.seq++
	r.motor[claim.PolicyNum] = storedClaim{
		policyNum:   claim.PolicyNum,
		phone:       claim.PhoneNum,
		incDate:     claim.IncidentDate,
		claimType:   typeMotor,
		seq:         r.seq,
		submittedAt: time.Now(),
	}

	return nil
}

func (r *MemoryRepository) ListByPhone(_ context.Context, phone string) ([]Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summaries := []Summary{}
	summaries = append(summaries, collect(r.property, phone)...)
	summaries = append(summaries, collect(r.motor, phone)...)

	return summaries, nil
}

func collect(claims map[string]storedClaim, phone string) []Summary {
	var matched []storedClaim
	for _, claim := range claims {
		if claim.phone == phone {
			matched = append(matched, claim)
		}
	}

	// Newest submission first; seq breaks ties deterministically.
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].seq > matched[j].seq
	})

	summaries := make([]Summary, 0, len(matched))
	for _, claim := range matched {
		date := claim.incDate
		submitted := claim.submittedAt.Format(time.RFC3339)

		summaries = append(summaries, Summary{
			ID:             claim.policyNum,
			Type:           claim.claimType,
			Date:           &date,
			SubmissionDate: &submitted,
			Status:         statusSubmitted,
			Progress:       defaultProgress,
			Amount:         0,
		})
	}

	return summaries
}
