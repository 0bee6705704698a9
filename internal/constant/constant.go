package constant

import "time"

const (
	// RankEventAppendLockPrefix names the per-account redsync mutex serializing the
	// append-or-collapse compare-then-write sequence.
	RankEventAppendLockPrefix = "mutex:rankEventAppend:"

	// RankEventAppendLockExpiry bounds how long a crashed holder can block an account.
	RankEventAppendLockExpiry = time.Second * 8
)
