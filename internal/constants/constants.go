package constants

import "time"

const (
	ExternalAPITimeout = 10 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SoloQueueType     = "RANKED_SOLO_5x5"
	MaxChampions      = 3
	RiotTokenHeader   = "X-Riot-Token"
	FetchMaxRedirects = 5
)
