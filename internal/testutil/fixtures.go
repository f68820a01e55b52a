package testutil

import (
	"time"

	"github.com/wilsonhazen/bidroom/internal/model"
)

// ContractorFixture builds contractor profiles for tests.
type ContractorFixture struct {
	c model.Contractor
}

// NewContractorFixture starts from a mid-range, partially verified profile.
func NewContractorFixture() ContractorFixture {
	return ContractorFixture{c: model.Contractor{
		ID:                "ctr_test_001",
		Name:              "Test Builders",
		Company:           "Test Builders LLC",
		Trade:             "Plumbing",
		Location:          "Austin, TX",
		Rating:            4.2,
		ReviewCount:       30,
		CompletedProjects: 25,
		YearsInBusiness:   6,
		Specialties:       []string{"Plumbing", "Water heaters"},
		Verifications: []model.Verification{
			{Type: model.VerificationIdentity, Verified: true},
			{Type: model.VerificationLicense, Verified: true},
		},
	}}
}

func (f ContractorFixture) WithID(id string) ContractorFixture {
	f.c.ID = id
	return f
}

func (f ContractorFixture) WithTrade(trade string) ContractorFixture {
	f.c.Trade = trade
	return f
}

func (f ContractorFixture) WithRating(rating float64, reviews int) ContractorFixture {
	f.c.Rating = rating
	f.c.ReviewCount = reviews
	return f
}

func (f ContractorFixture) WithVerified(types ...model.VerificationType) ContractorFixture {
	vs := make([]model.Verification, 0, len(types))
	for _, typ := range types {
		vs = append(vs, model.Verification{Type: typ, Verified: true})
	}
	f.c.Verifications = vs
	return f
}

func (f ContractorFixture) WithIndicators(ti model.TrustIndicators) ContractorFixture {
	f.c.TrustIndicators = &ti
	return f
}

// Build returns a copy so fixtures can be reused.
func (f ContractorFixture) Build() model.Contractor {
	c := f.c
	c.Specialties = append([]string(nil), c.Specialties...)
	c.Verifications = append([]model.Verification(nil), c.Verifications...)
	return c
}

// NewSnapshotFixture returns a small workspace relative to now: one active
// project due in five days at 30%, a milestone waiting four days for review,
// an open bid inviting "usr_sub", and an appointment in three hours.
func NewSnapshotFixture(ownerID string, now time.Time) model.Snapshot {
	submitted := now.Add(-4 * 24 * time.Hour)
	return model.Snapshot{
		OwnerID: ownerID,
		Projects: []model.Project{{
			ID:                   "prj_1",
			Title:                "Kitchen remodel",
			OwnerID:              ownerID,
			Status:               model.ProjectActive,
			Budget:               25000,
			Spent:                9000,
			CompletionPercentage: 30,
			StartDate:            now.Add(-30 * 24 * time.Hour),
			EndDate:              now.Add(5 * 24 * time.Hour),
		}},
		Milestones: []model.Milestone{{
			ID:          "ms_1",
			ProjectID:   "prj_1",
			Title:       "Rough plumbing",
			AssigneeID:  "usr_sub",
			Amount:      4000,
			Status:      model.MilestonePendingReview,
			DueDate:     now.Add(2 * 24 * time.Hour),
			SubmittedAt: &submitted,
		}},
		Jobs: []model.Job{{
			ID:        "job_1",
			Title:     "Install water heater",
			PosterID:  ownerID,
			Trade:     "Plumbing",
			Budget:    1800,
			Status:    model.JobOpen,
			CreatedAt: now.Add(-48 * time.Hour),
		}},
		Bids: []model.Bid{{
			ID:             "bid_1",
			Title:          "Tile work",
			ProjectID:      "prj_1",
			CreatedBy:      ownerID,
			InvitedUserIDs: []string{"usr_sub"},
			Status:         model.BidOpen,
			DueDate:        now.Add(6 * 24 * time.Hour),
		}},
		Appointments: []model.Appointment{{
			ID:          "apt_1",
			Title:       "Site walk",
			OrganizerID: ownerID,
			Status:      model.AppointmentScheduled,
			ScheduledAt: now.Add(3 * time.Hour),
		}},
		UpdatedAt: now,
	}
}
