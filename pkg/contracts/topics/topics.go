package topics

const (
	// Apostas registradas pelo bot
	WagerRecorded = "wager_recorded"

	// DLQ
	WagerRecordedDLQ = "wager_recorded_dlq"
)
