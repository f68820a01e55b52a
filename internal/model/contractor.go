package model

import "time"

type VerificationType string

const (
	VerificationIdentity   VerificationType = "identity"
	VerificationLicense    VerificationType = "license"
	VerificationInsurance  VerificationType = "insurance"
	VerificationBackground VerificationType = "background"
	VerificationReferences VerificationType = "references"
	VerificationPayment    VerificationType = "payment"
)

type Verification struct {
	Type       VerificationType `json:"type" bson:"type" firestore:"type"`
	Verified   bool             `json:"verified" bson:"verified" firestore:"verified"`
	VerifiedAt *time.Time       `json:"verified_at,omitempty" bson:"verified_at,omitempty" firestore:"verified_at,omitempty"`
	ExpiresAt  *time.Time       `json:"expires_at,omitempty" bson:"expires_at,omitempty" firestore:"expires_at,omitempty"`
}

// TrustIndicators are behavioural signals reported by the marketplace.
// Percentages are in [0,100]. ResponseTime is in minutes.
type TrustIndicators struct {
	ResponseTime     float64 `json:"response_time" bson:"response_time" firestore:"response_time"`
	ResponseRate     float64 `json:"response_rate" bson:"response_rate" firestore:"response_rate"`
	OnTimeRate       float64 `json:"on_time_rate" bson:"on_time_rate" firestore:"on_time_rate"`
	RepeatClientRate float64 `json:"repeat_client_rate" bson:"repeat_client_rate" firestore:"repeat_client_rate"`
	DisputeRate      float64 `json:"dispute_rate" bson:"dispute_rate" firestore:"dispute_rate"`
}

type Contractor struct {
	ID      string `json:"id" bson:"id" firestore:"id"`
	Name    string `json:"name" bson:"name" firestore:"name"`
	Company string `json:"company,omitempty" bson:"company,omitempty" firestore:"company,omitempty"`
	Trade   string `json:"trade,omitempty" bson:"trade,omitempty" firestore:"trade,omitempty"`

	Location string `json:"location,omitempty" bson:"location,omitempty" firestore:"location,omitempty"`

	Rating            float64  `json:"rating" bson:"rating" firestore:"rating"`
	ReviewCount       int      `json:"review_count" bson:"review_count" firestore:"review_count"`
	CompletedProjects int      `json:"completed_projects" bson:"completed_projects" firestore:"completed_projects"`
	YearsInBusiness   float64  `json:"years_in_business" bson:"years_in_business" firestore:"years_in_business"`
	Specialties       []string `json:"specialties" bson:"specialties" firestore:"specialties"`

	Verifications   []Verification   `json:"verifications" bson:"verifications" firestore:"verifications"`
	TrustIndicators *TrustIndicators `json:"trust_indicators,omitempty" bson:"trust_indicators,omitempty" firestore:"trust_indicators,omitempty"`

	UpdatedAt time.Time `json:"updated_at" bson:"updated_at" firestore:"updated_at"`
}
