package theme

import (
	"image/color"
	"summoner-card/internal/domain"
)

// Neutral is used for unranked players and tiers missing from the table.
var Neutral = domain.Theme{
	Accent: rgb(230, 230, 230),
	Shade:  rgb(110, 110, 110),
}

var byTier = map[domain.Tier]domain.Theme{
	domain.TierIron:        {Accent: rgb(160, 157, 156), Shade: rgb(70, 50, 47)},
	domain.TierBronze:      {Accent: rgb(145, 112, 89), Shade: rgb(70, 68, 68)},
	domain.TierSilver:      {Accent: rgb(185, 195, 203), Shade: rgb(90, 73, 57)},
	domain.TierGold:        {Accent: rgb(229, 191, 86), Shade: rgb(41, 83, 44)},
	domain.TierPlatinum:    {Accent: rgb(50, 208, 146), Shade: rgb(0, 62, 31)},
	domain.TierEmerald:     {Accent: rgb(136, 235, 170), Shade: rgb(27, 97, 70)},
	domain.TierDiamond:     {Accent: rgb(137, 123, 222), Shade: rgb(157, 88, 191)},
	domain.TierMaster:      {Accent: rgb(200, 118, 221), Shade: rgb(194, 59, 187)},
	domain.TierGrandmaster: {Accent: rgb(134, 109, 109), Shade: rgb(202, 31, 37)},
	domain.TierChallenger:  {Accent: rgb(52, 185, 255), Shade: rgb(182, 173, 130)},
}

func ForTier(t domain.Tier) domain.Theme {
	if th, ok := byTier[t]; ok {
		return th
	}
	return Neutral
}

func ForStanding(s domain.Standing) domain.Theme {
	rank, ok := domain.RankOf(s)
	if !ok {
		return Neutral
	}
	return ForTier(rank.Tier)
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
