package trust

import "github.com/wilsonhazen/bidroom/internal/model"

// Suggestions returns advisories for a client evaluating the contractor.
// Rules are evaluated independently and the output order is display order.
func Suggestions(c model.Contractor, ts model.TrustScore) []string {
	out := []string{}

	if ts.Score >= excellentThreshold {
		out = append(out, "Highly trusted contractor with an excellent track record")
	}

	if !IsVerified(c, model.VerificationIdentity) {
		out = append(out, "Identity not verified - request government ID before hiring")
	}
	if !IsVerified(c, model.VerificationLicense) {
		out = append(out, "License not verified - confirm licensing for your jurisdiction")
	}
	if !IsVerified(c, model.VerificationInsurance) {
		out = append(out, "Insurance not verified - request a certificate of insurance")
	}
	if !IsVerified(c, model.VerificationBackground) {
		out = append(out, "Background check not completed")
	}

	if ind := c.TrustIndicators; ind != nil {
		if ind.ResponseRate >= 90 {
			out = append(out, "Highly responsive to client messages")
		}
		if ind.OnTimeRate >= 90 {
			out = append(out, "Consistently completes projects on time")
		}
		if ind.RepeatClientRate >= 50 {
			out = append(out, "Strong base of repeat clients")
		}
		if ind.DisputeRate <= 2 {
			out = append(out, "Very low dispute rate")
		}
	}

	if c.YearsInBusiness >= 10 {
		out = append(out, "Established business with 10+ years of experience")
	}
	if c.CompletedProjects >= 50 {
		out = append(out, "Extensive portfolio of completed projects")
	}

	if ts.Score < goodThreshold {
		out = append(out,
			"Request and contact references before signing a contract",
			"Consider starting with a smaller project or milestone-based payments",
		)
	}
	return out
}

// Report bundles the score with its advisories.
func Report(c model.Contractor) model.TrustReport {
	ts := Calculate(c)
	return model.TrustReport{
		ContractorID: c.ID,
		Trust:        ts,
		Suggestions:  Suggestions(c, ts),
	}
}
