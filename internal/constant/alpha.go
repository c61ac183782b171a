package constant

const (
	TierBasic    = "basic"
	TierCreative = "creative"
	TierOptimize = "optimize"

	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"

	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"

	// platform simulation statuses
	StatusComplete = "COMPLETE"
	StatusError    = "ERROR"

	UnSubmitted  = 0
	Submitted    = 1
	SubmitFailed = 2
	UnFinished   = 0
	Finished     = 1
)

// Tiers lists the recognized generation tiers in escalation order.
var Tiers = []string{TierBasic, TierCreative, TierOptimize}

func IsValidTier(tier string) bool {
	for _, t := range Tiers {
		if t == tier {
			return true
		}
	}
	return false
}
