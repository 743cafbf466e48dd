package domain

// CandidateResult pairs a candidate with its tallied votes.
type CandidateResult struct {
	Candidate Candidate `json:"candidate"`
	Votes     float64   `json:"votes"`
}

// ElectionResult is the shared capability every election variant's result
// implements. The driver serializes exactly these fields into its report
// schema, so the accessors are a stable contract.
type ElectionResult interface {
	// Winner returns the winning candidate.
	Winner() Candidate

	// OrderedResults returns (candidate, votes) pairs, descending.
	OrderedResults() []CandidateResult

	// VoterSatisfaction returns the satisfaction score in [0, 1].
	VoterSatisfaction() float64

	// NVotes returns the total number of ballots counted.
	NVotes() float64
}

// SatisfactionFor computes voter satisfaction with a winner:
// 1 − |2×(fraction of voters left of the winner) − 1|. It is maximal when
// the winner sits at the electorate's median. An empty voter set is a
// programming error.
func SatisfactionFor(voters []Voter, winner Candidate) float64 {
	if len(voters) == 0 {
		panic("voter satisfaction requires a non-empty voter set")
	}
	left := 0
	for _, v := range voters {
		if v.Ideology < winner.Ideology {
			left++
		}
	}
	frac := 2*float64(left)/float64(len(voters)) - 1
	if frac < 0 {
		frac = -frac
	}
	return 1 - frac
}
