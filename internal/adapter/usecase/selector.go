package usecase

import (
	"math/rand"

	"adserve/internal/core/port"
)

// RandomSelector picks uniformly among the eligible creatives.
type RandomSelector struct{}

func (RandomSelector) Pick(candidates []port.CreativeCandidate) int {
	return rand.Intn(len(candidates))
}
