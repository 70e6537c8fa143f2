package chaos

import "time"

// Sleeper blocks the calling goroutine for d.
type Sleeper func(d time.Duration)

// Sleep is the real Sleeper.
func Sleep(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
