package echeck

import "time"

func (r *RetryCaller) Backoff(attempt int) time.Duration { return r.backoff(attempt) }
