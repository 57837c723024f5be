package episodes

// singlesTwoFeedBias is the probability of taking one single rather than
// two when exactly two feeds contributed
const singlesTwoFeedBias = 0.7

// SinglesTarget decides how many slots of an attempt go to curated singles,
// given how many feeds produced eligible episodes and how many singles are
// eligible
func SinglesTarget(count, feedSourceCount, singlesAvailable int, r Random) int {
	switch {
	case feedSourceCount == 0:
		return min(singlesAvailable, count)

	case feedSourceCount < count:
		minRequired := max(count-feedSourceCount, 0)
		maxAllowed := min(singlesAvailable, count-1)
		floor := min(minRequired, maxAllowed)

		if feedSourceCount == 2 && maxAllowed >= 2 && floor == 1 {
			if r.Float64() < singlesTwoFeedBias {
				return 1
			}
			return 2
		}
		if maxAllowed <= 0 {
			return 0
		}
		return floor + int(r.Float64()*float64(maxAllowed-floor+1))

	default:
		maxAllowed := min(singlesAvailable, 1)
		if maxAllowed <= 0 {
			return 0
		}
		return int(r.Float64() * float64(maxAllowed+1))
	}
}
