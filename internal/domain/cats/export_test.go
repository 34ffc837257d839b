package cats

import "time"

func SetClock(s *Service, now func() time.Time) { s.now = now }

func SetKeyPrefix(s *Service, f func() string) { s.newKey = f }

var RandomKeyPrefix = randomKeyPrefix
