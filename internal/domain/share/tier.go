package share

import "fmt"

// Tier is the permission level of a grant and doubles as the requested
// operation on download paths: view < download.
type Tier string

const (
	TierView     Tier = "view"
	TierDownload Tier = "download"
)

var tierRank = map[Tier]int{
	TierView:     0,
	TierDownload: 1,
}

func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierRank[t]; !ok {
		return "", fmt.Errorf("unknown permission tier %q", s)
	}
	return t, nil
}

// Allows reports whether a grant of tier t covers the requested operation.
func (t Tier) Allows(op Tier) bool {
	return tierRank[t] >= tierRank[op]
}
