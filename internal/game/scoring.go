package game

// PointsFor maps the attempt ordinal of a completed level to points.
// Attempts past the cap score nothing.
func PointsFor(attemptNumber int) int {
	switch attemptNumber {
	case 1:
		return 300
	case 2:
		return 200
	case 3:
		return 100
	default:
		return 0
	}
}

// StarsFor mirrors PointsFor with a 3/2/1/0 star rating.
func StarsFor(attemptNumber int) int {
	switch attemptNumber {
	case 1:
		return 3
	case 2:
		return 2
	case 3:
		return 1
	default:
		return 0
	}
}

// TimeUsed converts the remaining time reported at the moment of check into
// seconds spent, clamped to [0, limit].
func TimeUsed(limitSeconds, remainingSeconds int) int {
	used := limitSeconds - remainingSeconds
	if used < 0 {
		return 0
	}
	if used > limitSeconds {
		return limitSeconds
	}
	return used
}

// ClampTimeUsed bounds an already-computed duration to the level's limit.
func ClampTimeUsed(usedSeconds, limitSeconds int) int {
	if usedSeconds < 0 {
		return 0
	}
	if limitSeconds > 0 && usedSeconds > limitSeconds {
		return limitSeconds
	}
	return usedSeconds
}
