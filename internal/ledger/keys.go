package ledger

const keyPrefix = "savecircle_"

const (
	keyUser    = keyPrefix + "user"
	keyCircles = keyPrefix + "circles"

	// Standalone copies of user fields read by older clients.
	keyLegacyGems      = keyPrefix + "gems"
	keyLegacyXP        = keyPrefix + "xp"
	keyLegacyDailyGoal = keyPrefix + "daily_goal"

	keyCompletedLessons = keyPrefix + "completed_lessons"
	keyHearts           = keyPrefix + "hearts"
	keyHeartsReset      = keyPrefix + "hearts_reset"
)

func joinedKey(circleID string) string { return keyPrefix + "joined_" + circleID }

func lessonCacheKey(unitID string) string { return keyPrefix + "lesson_cache_" + unitID }
