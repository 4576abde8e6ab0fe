package domain

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

// ErrNotFound is returned when a Riot ID does not resolve to an account.
var ErrNotFound = errors.New("summoner not found")

type Identity struct {
	Name string
	Tag  string
}

func (i Identity) String() string {
	return fmt.Sprintf("%s#%s", i.Name, i.Tag)
}

type Tier string

const (
	TierIron        Tier = "IRON"
	TierBronze      Tier = "BRONZE"
	TierSilver      Tier = "SILVER"
	TierGold        Tier = "GOLD"
	TierPlatinum    Tier = "PLATINUM"
	TierEmerald     Tier = "EMERALD"
	TierDiamond     Tier = "DIAMOND"
	TierMaster      Tier = "MASTER"
	TierGrandmaster Tier = "GRANDMASTER"
	TierChallenger  Tier = "CHALLENGER"
)

// Tiers lists every known tier from lowest to highest.
var Tiers = []Tier{
	TierIron, TierBronze, TierSilver, TierGold, TierPlatinum,
	TierEmerald, TierDiamond, TierMaster, TierGrandmaster, TierChallenger,
}

var knownTiers = func() map[Tier]struct{} {
	m := make(map[Tier]struct{}, len(Tiers))
	for _, t := range Tiers {
		m[t] = struct{}{}
	}
	return m
}()

// ParseTier uppercases the label. Unknown labels are kept so they can still be displayed.
func ParseTier(label string) Tier {
	return Tier(strings.ToUpper(strings.TrimSpace(label)))
}

func (t Tier) Known() bool {
	_, ok := knownTiers[t]
	return ok
}

// IsApex reports whether the tier is ranked by league points instead of divisions.
func (t Tier) IsApex() bool {
	return t == TierMaster || t == TierGrandmaster || t == TierChallenger
}

func (t Tier) String() string {
	return string(t)
}

type RankRecord struct {
	Tier         Tier
	Division     string // empty for apex tiers
	LeaguePoints int
	Wins         int
	Losses       int
}

// Winrate is wins over games played, in percent. Zero games yields 0.
func (r RankRecord) Winrate() float64 {
	total := r.Wins + r.Losses
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total) * 100
}

// Standing is one of Unranked, RankedStandard or RankedApex.
type Standing interface {
	standing()
}

type Unranked struct{}

type RankedStandard struct {
	Rank RankRecord
}

type RankedApex struct {
	Rank RankRecord
}

func (Unranked) standing()       {}
func (RankedStandard) standing() {}
func (RankedApex) standing()     {}

func NewStanding(rank *RankRecord) Standing {
	if rank == nil {
		return Unranked{}
	}
	if rank.Tier.IsApex() {
		r := *rank
		r.Division = ""
		return RankedApex{Rank: r}
	}
	return RankedStandard{Rank: *rank}
}

type Profile struct {
	Identity Identity
	Level    int
	Standing Standing
}

func (p Profile) Rank() (RankRecord, bool) {
	return RankOf(p.Standing)
}

// RankOf returns the rank behind a ranked standing. ok is false for Unranked.
func RankOf(s Standing) (rank RankRecord, ok bool) {
	switch s := s.(type) {
	case RankedStandard:
		return s.Rank, true
	case RankedApex:
		return s.Rank, true
	default:
		return RankRecord{}, false
	}
}

// ChampionStat is one row of the most-played table, kept exactly as displayed.
type ChampionStat struct {
	Name    string
	Games   string
	WinRate string
	KDA     string
}

type Theme struct {
	Accent color.RGBA
	Shade  color.RGBA
}

// RenderedReport is the finished card for one summoner.
type RenderedReport struct {
	ID       string
	Identity Identity
	Standing Standing
	PNG      []byte
}
