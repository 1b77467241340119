package domain

// DispatchStatus classifies the outcome of pushing one notification to one
// alert channel.
type DispatchStatus string

const (
	// DispatchSent means the channel accepted the message.
	DispatchSent DispatchStatus = "sent"
	// DispatchSkipped means the channel is unconfigured and no delivery was
	// attempted. Not an error: a missing credential set disables a channel
	// without affecting the rest of the system.
	DispatchSkipped DispatchStatus = "skipped"
	// DispatchFailed means delivery was attempted and failed. The failure is
	// recorded here instead of propagating: losing a push must never lose
	// the audit record.
	DispatchFailed DispatchStatus = "failed"
)

// DispatchResult is the explicit per-channel outcome of a fan-out. Callers
// that don't care can discard it; it stays inspectable for logging and
// tests.
type DispatchResult struct {
	Channel string
	Status  DispatchStatus
	Err     error
}

// Sent reports whether delivery succeeded.
func (r DispatchResult) Sent() bool { return r.Status == DispatchSent }

func Sent(channel string) DispatchResult {
	return DispatchResult{Channel: channel, Status: DispatchSent}
}

func Skipped(channel string) DispatchResult {
	return DispatchResult{Channel: channel, Status: DispatchSkipped}
}

func Failed(channel string, err error) DispatchResult {
	return DispatchResult{Channel: channel, Status: DispatchFailed, Err: err}
}
