// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// TrackEvent is one failed unlock attempt recorded for throttling.
type TrackEvent struct {
	UserID int64
	Source string
	Kind   string
	At     time.Time
}

// TrackSubject identifies who is being throttled. Either field may be empty.
type TrackSubject struct {
	UserID int64
	Source string
}
