package auth

import "time"

func (j *JWTTokenGenerator) SetClock(now func() time.Time) {
	j.now = now
}
