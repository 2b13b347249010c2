package practice

import "time"

// hintTickMsg polls the hint service while a request is in flight.
type hintTickMsg time.Time
