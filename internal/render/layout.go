package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"summoner-card/internal/constants"
	"summoner-card/internal/domain"
)

const (
	CanvasWidth  = 400
	CanvasHeight = 580
)

type Kind int

const (
	KindRect Kind = iota
	KindText
	KindImage
)

type Face int

const (
	FaceBody Face = iota
	FaceTitle
)

// Instruction is one draw step. Rect uses W/H and Color, Text uses Text, Face and Color,
// Image draws Image with its top-left corner at X/Y.
type Instruction struct {
	Kind  Kind
	X, Y  int
	W, H  int
	Color color.RGBA
	Text  string
	Face  Face
	Image image.Image
}

// Report is everything the card shows, already fetched.
type Report struct {
	Identity  domain.Identity
	Level     int
	Standing  domain.Standing
	Theme     domain.Theme
	Badge     image.Image
	Champions []domain.ChampionStat
	Icons     []image.Image
}

var (
	black     = color.RGBA{A: 0xff}
	white     = color.RGBA{R: 255, G: 255, B: 255, A: 0xff}
	labelGrey = color.RGBA{R: 140, G: 140, B: 140, A: 0xff}
	rowGrey   = color.RGBA{R: 160, G: 160, B: 160, A: 0xff}
	navy      = color.RGBA{R: 30, G: 32, B: 44, A: 0xff}
	slate     = color.RGBA{R: 54, G: 54, B: 61, A: 0xff}
)

const (
	labelLevel     = "레벨"
	labelTier      = "티어 정보"
	labelRecord    = "승/패 | 승률"
	labelChampions = "모스트 챔피언"
	noTier         = "티어 정보가 없습니다."
	noRankedGames  = "랭크 게임 전적이 없습니다."
)

func TierLine(s domain.Standing) string {
	switch s := s.(type) {
	case domain.RankedApex:
		return fmt.Sprintf("%s %dLP", s.Rank.Tier, s.Rank.LeaguePoints)
	case domain.RankedStandard:
		return fmt.Sprintf("%s %s", s.Rank.Tier, s.Rank.Division)
	default:
		return noTier
	}
}

func RecordLine(s domain.Standing) string {
	rank, ok := domain.RankOf(s)
	if !ok {
		return noRankedGames
	}
	return fmt.Sprintf("%d %d  %.2f%%", rank.Wins, rank.Losses, rank.Winrate())
}

func ChampionLine(c domain.ChampionStat) string {
	return fmt.Sprintf("%s | %s게임 | 승률 %s | KDA %s", c.Name, c.Games, c.WinRate, c.KDA)
}

// Compose lays the report out on the fixed 400x580 card.
func Compose(r Report) []Instruction {
	ops := []Instruction{
		rect(0, 0, CanvasWidth, CanvasHeight, r.Theme.Accent),
		rect(10, 10, 380, 560, r.Theme.Shade),
		rect(20, 20, 360, 540, black),
		text(40, 35, r.Identity.String(), FaceTitle, white),
		text(40, 60, labelLevel, FaceBody, labelGrey),
		text(80, 60, strconv.Itoa(r.Level), FaceBody, labelGrey),
	}

	if r.Badge != nil {
		ops = append(ops, Instruction{Kind: KindImage, X: 110, Y: 60, Image: r.Badge})
	}

	ops = append(ops,
		rect(20, 240, 360, 315, navy),
		text(40, 257, labelTier, FaceBody, white),
		text(40, 285, TierLine(r.Standing), FaceBody, labelGrey),
		text(40, 320, labelRecord, FaceBody, white),
		text(40, 347, RecordLine(r.Standing), FaceBody, labelGrey),
		text(40, 383, labelChampions, FaceBody, white),
	)

	for i, icon := range r.Icons {
		if i >= constants.MaxChampions {
			break
		}
		if icon == nil {
			continue
		}
		ops = append(ops, Instruction{Kind: KindImage, X: 40 + i*60, Y: 407, Image: icon})
	}

	// fixed height whatever the number of rows
	ops = append(ops, rect(30, 460, 340, 90, slate))

	for i, c := range r.Champions {
		if i >= constants.MaxChampions {
			break
		}
		ops = append(ops, text(40, 468+i*26, ChampionLine(c), FaceBody, rowGrey))
	}

	return ops
}

func rect(x, y, w, h int, c color.RGBA) Instruction {
	return Instruction{Kind: KindRect, X: x, Y: y, W: w, H: h, Color: c}
}

func text(x, y int, s string, face Face, c color.RGBA) Instruction {
	return Instruction{Kind: KindText, X: x, Y: y, Text: s, Face: face, Color: c}
}
