package renderer

// PublishLatest delivers v through slot, a channel with capacity 1, for a consumer
// that only cares about the newest render. A pending value is replaced only when it
// is older than v according to newer. done abandons the delivery of v but never
// causes a newer pending value to be dropped.
func PublishLatest[T any](slot chan T, v T, newer func(a, b T) bool, done <-chan struct{}) {
	for {
		select {
		case slot <- v:
			return
		case pending := <-slot:
			if newer(pending, v) {
				// v is stale; the value to deliver is now the one just taken out
				v = pending
				done = nil
			}
		case <-done:
			return
		}
	}
}
