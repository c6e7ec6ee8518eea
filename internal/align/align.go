package align

import (
	"sort"

	"github.com/kasparro/pagegen/internal/schema"
)

// DefaultThreshold is the minimum similarity score for a confident match.
const DefaultThreshold = 0.3

// Candidate is one generated answer block, not yet tied to a question. The
// echoed question text is matched when present; otherwise the answer text
// itself is used.
type Candidate struct {
	Question string
	Answer   string
}

// Match binds a question to exactly one candidate answer.
type Match struct {
	Question schema.Question
	Answer   string
	// Score is the similarity that produced the binding, in [0,1].
	Score float64
	// Fallback is true when the binding was made below the confidence
	// threshold because no confident candidate remained.
	Fallback bool
}

// Warning records a question that could not be bound to any answer. It is
// diagnostic output, never a failure.
type Warning struct {
	Question schema.Question
	Reason   string
}

// Result is the outcome of one alignment pass. Matches are ordered by the
// original question order.
type Result struct {
	Matches  []Match
	Warnings []Warning
}

// scoredPair is one (question, candidate) similarity measurement.
type scoredPair struct {
	qIdx  int
	cIdx  int
	score float64
}

// Align assigns candidates to questions one-to-one, greedily by descending
// similarity. Pairs below threshold are only used as a last-resort fallback.
// Repeated calls with the same inputs produce identical results: all ties
// break on question order, then candidate order.
func Align(questions []schema.Question, candidates []Candidate, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	pairs := make([]scoredPair, 0, len(questions)*len(candidates))
	for qi, q := range questions {
		qNorm := Normalize(q.Question)
		for ci, c := range candidates {
			pairs = append(pairs, scoredPair{qi, ci, Similarity(qNorm, normalizedKey(c))})
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		if pairs[i].qIdx != pairs[j].qIdx {
			return pairs[i].qIdx < pairs[j].qIdx
		}
		return pairs[i].cIdx < pairs[j].cIdx
	})

	matchedQ := make(map[int]Match, len(questions))
	usedC := make(map[int]bool, len(candidates))

	// Confident pass: highest remaining score above threshold wins.
	for _, p := range pairs {
		if p.score < threshold {
			break
		}
		if _, ok := matchedQ[p.qIdx]; ok || usedC[p.cIdx] {
			continue
		}
		matchedQ[p.qIdx] = Match{
			Question: questions[p.qIdx],
			Answer:   candidates[p.cIdx].Answer,
			Score:    p.score,
		}
		usedC[p.cIdx] = true
	}

	// Fallback pass: each unmatched question, in original order, takes the
	// best candidate still available regardless of threshold.
	var warnings []Warning
	for qi, q := range questions {
		if _, ok := matchedQ[qi]; ok {
			continue
		}
		best := -1
		bestScore := -1.0
		for _, p := range pairs {
			if p.qIdx != qi || usedC[p.cIdx] {
				continue
			}
			if p.score > bestScore {
				best = p.cIdx
				bestScore = p.score
			}
		}
		if best < 0 {
			warnings = append(warnings, Warning{
				Question: q,
				Reason:   "no generated answer left to assign",
			})
			continue
		}
		matchedQ[qi] = Match{
			Question: q,
			Answer:   candidates[best].Answer,
			Score:    bestScore,
			Fallback: true,
		}
		usedC[best] = true
	}

	matches := make([]Match, 0, len(matchedQ))
	for qi := range questions {
		if m, ok := matchedQ[qi]; ok {
			matches = append(matches, m)
		}
	}
	return Result{Matches: matches, Warnings: warnings}
}

// normalizedKey picks the text a candidate is matched on: the echoed
// question when the service returned one, the answer body otherwise.
func normalizedKey(c Candidate) string {
	if c.Question != "" {
		return Normalize(c.Question)
	}
	return Normalize(c.Answer)
}
