package domain

import (
	"fmt"
	"math"
	"sort"
)

// CombinedPopulation is an ordered mixture of population groups plus a
// materialized, ideology-sorted voter sample. The sample is generated once
// at construction and is stable for the object's lifetime; every statistic
// the engine reads (median voter, percentiles) is taken from it.
type CombinedPopulation struct {
	// Groups holds the mixture in construction order.
	Groups []PopulationGroup

	byShort      map[string]PopulationGroup
	summedWeight float64
	sample       []Voter
	medianVoter  float64
}

// NewCombinedPopulation materializes a voter sample across the groups,
// allocating each group round(weight/total × desiredSamples) voters,
// then sorting ascending by ideology.
//
// An empty group list, a non-positive total weight, or a non-positive
// sample size is a programming error and panics: callers must validate
// district data before constructing a population.
func NewCombinedPopulation(groups []PopulationGroup, desiredSamples int, rng Rand) *CombinedPopulation {
	if len(groups) == 0 {
		panic("population requires at least one group")
	}
	if desiredSamples <= 0 {
		panic(fmt.Sprintf("population requires a positive sample size, got %d", desiredSamples))
	}

	total := 0.0
	byShort := make(map[string]PopulationGroup, len(groups))
	for _, g := range groups {
		total += g.Weight
		byShort[g.Tag.ShortName] = g
	}
	if total <= 0 {
		panic(fmt.Sprintf("population requires a positive total weight, got %f", total))
	}

	var sample []Voter
	for _, g := range groups {
		n := int(math.Round(g.Weight / total * float64(desiredSamples)))
		sample = append(sample, g.Sample(n, rng)...)
	}
	sort.Slice(sample, func(i, j int) bool { return sample[i].Ideology < sample[j].Ideology })

	return &CombinedPopulation{
		Groups:       groups,
		byShort:      byShort,
		summedWeight: total,
		sample:       sample,
		medianVoter:  sample[len(sample)/2].Ideology,
	}
}

// NSamples returns the materialized sample size.
func (p *CombinedPopulation) NSamples() int { return len(p.sample) }

// Voters returns the ideology-sorted voter sample. Callers must treat the
// returned slice as read-only.
func (p *CombinedPopulation) Voters() []Voter { return p.sample }

// MedianVoter returns the ideology of the sample's middle element.
func (p *CombinedPopulation) MedianVoter() float64 { return p.medianVoter }

// SummedWeight returns the total weight across all groups.
func (p *CombinedPopulation) SummedWeight() float64 { return p.summedWeight }

// GroupFor returns the group registered for a tag's short code.
func (p *CombinedPopulation) GroupFor(tag Tag) (PopulationGroup, bool) {
	g, ok := p.byShort[tag.ShortName]
	return g, ok
}

// Democrats returns the Democratic group. Missing major groups are a
// programming error.
func (p *CombinedPopulation) Democrats() PopulationGroup { return p.mustGroup(Democrats) }

// Republicans returns the Republican group.
func (p *CombinedPopulation) Republicans() PopulationGroup { return p.mustGroup(Republicans) }

// Independents returns the unaffiliated group.
func (p *CombinedPopulation) Independents() PopulationGroup { return p.mustGroup(Independents) }

func (p *CombinedPopulation) mustGroup(tag Tag) PopulationGroup {
	g, ok := p.byShort[tag.ShortName]
	if !ok {
		panic(fmt.Sprintf("population has no %s group", tag.Name))
	}
	return g
}

// PercentWeight returns a tag's share of the total weight.
func (p *CombinedPopulation) PercentWeight(tag Tag) float64 {
	return p.mustGroup(tag).Weight / p.summedWeight
}

// DominantParty returns the major party with the larger summed weight.
// An exact tie is broken by one coin flip.
func (p *CombinedPopulation) DominantParty(rng Rand) Tag {
	demWeight := p.Democrats().Weight
	repWeight := p.Republicans().Weight
	switch {
	case demWeight > repWeight:
		return Democrats
	case repWeight > demWeight:
		return Republicans
	case rng.Bool():
		return Democrats
	default:
		return Republicans
	}
}

// IdeologyForPercentile clamps pct to [0, 1] and returns the ideology at
// index round(pct × (n-1)) of the sorted sample.
func (p *CombinedPopulation) IdeologyForPercentile(pct float64) float64 {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	idx := int(math.Round(pct * float64(len(p.sample)-1)))
	return p.sample[idx].Ideology
}

// ApproximateMedian returns the weight-averaged group mean, a closed-form
// approximation of the sampled median.
func (p *CombinedPopulation) ApproximateMedian() float64 {
	m := 0.0
	for _, g := range p.Groups {
		m += g.Weight * g.Mean / p.summedWeight
	}
	return m
}

// RandomVoter draws a fresh voter: a uniform draw over the total weight
// selects the group, which then samples from its own distribution.
func (p *CombinedPopulation) RandomVoter(rng Rand) Voter {
	r := rng.Float64() * p.summedWeight
	for _, g := range p.Groups {
		if r <= g.Weight {
			return g.RandomVoter(rng)
		}
		r -= g.Weight
	}
	// Floating-point slack can leave r marginally past the last span.
	return p.Groups[len(p.Groups)-1].RandomVoter(rng)
}
