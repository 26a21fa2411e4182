package movie

import "time"

// SetClock overrides the usecase clock in tests.
func (uc *Usecase) SetClock(now func() time.Time) {
	uc.now = now
}

// SetGenreTTL overrides the genre mapping cache TTL in tests.
func (uc *Usecase) SetGenreTTL(ttl time.Duration) {
	uc.genreTTL = ttl
}
