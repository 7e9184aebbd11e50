package utils

// CompletionCrossed reports whether a progress increment crossed the
// completion threshold for the first time. The flip happens exactly
// once: further increments past the threshold never re-cross.
func CompletionCrossed(prevProgress, newProgress, threshold int) bool {
	return prevProgress < threshold && newProgress >= threshold
}
