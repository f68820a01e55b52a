// Package matching ranks contractors for a posted job.
package matching

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wilsonhazen/bidroom/internal/model"
	"github.com/wilsonhazen/bidroom/internal/trust"
)

const (
	tradeMatchPoints = 40
	maxJitter        = 10
	DefaultLimit     = 10
)

// Matcher scores candidates. The jitter source spreads ties between
// otherwise identical profiles so one contractor does not win every job.
type Matcher struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Matcher {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource makes matching reproducible for a fixed seed.
func NewWithSource(src rand.Source) *Matcher {
	return &Matcher{rnd: rand.New(src)}
}

// Match returns up to limit matches, best first. A limit <= 0 means DefaultLimit.
func (m *Matcher) Match(job model.Job, contractors []model.Contractor, limit int) []model.Match {
	if limit <= 0 {
		limit = DefaultLimit
	}
	out := []model.Match{}
	for _, c := range contractors {
		reason, ok := tradeReason(job.Trade, c)
		if !ok {
			continue
		}
		reasons := []string{reason}

		score := tradeMatchPoints
		if pts, r := ratingTier(c.Rating); pts > 0 {
			score += pts
			reasons = append(reasons, r)
		}
		pts, r := projectTier(c.CompletedProjects)
		score += pts
		reasons = append(reasons, r)
		score += m.jitter()

		if job.Location != "" && strings.EqualFold(strings.TrimSpace(job.Location), strings.TrimSpace(c.Location)) {
			reasons = append(reasons, "Based in "+c.Location)
		}

		out = append(out, model.Match{
			ContractorID: c.ID,
			Name:         c.Name,
			Score:        min(score, 100),
			Trust:        trust.Calculate(c),
			Reasons:      reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (m *Matcher) jitter() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rnd.Intn(maxJitter)
}

func tradeReason(trade string, c model.Contractor) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(trade))
	if want == "" {
		return "", false
	}
	if strings.ToLower(strings.TrimSpace(c.Trade)) == want {
		return "Trade matches: " + c.Trade, true
	}
	for _, s := range c.Specialties {
		if strings.ToLower(strings.TrimSpace(s)) == want {
			return "Specializes in " + s, true
		}
	}
	return "", false
}

func ratingTier(rating float64) (int, string) {
	switch {
	case rating >= 4.5:
		return 30, fmt.Sprintf("Excellent rating (%.1f)", rating)
	case rating >= 4.0:
		return 20, fmt.Sprintf("Strong rating (%.1f)", rating)
	case rating >= 3.5:
		return 10, fmt.Sprintf("Good rating (%.1f)", rating)
	default:
		return 0, ""
	}
}

func projectTier(completed int) (int, string) {
	switch {
	case completed >= 50:
		return 20, fmt.Sprintf("%d completed projects", completed)
	case completed >= 20:
		return 15, fmt.Sprintf("%d completed projects", completed)
	case completed >= 10:
		return 10, fmt.Sprintf("%d completed projects", completed)
	default:
		return 5, "Building their track record"
	}
}
