// Package collatz implements the Collatz stopping-time evaluator.
//
// The stopping time of n is the number of steps needed to reach 1 under the
// rule "even → n/2, odd → 3n+1". Sequences that have not reached 1 within
// StepCap steps are reported as StepCap.
package collatz

// StoppingTime returns the number of Collatz steps for n to reach 1, capped
// at StepCap. The function is pure and safe to call concurrently from any
// number of goroutines without coordination.
//
// Parameters:
//   - n: The starting value. The caller is expected to pass n >= 1; behavior
//     below 1 is out of the input domain.
//
// Returns:
//   - int: The stopping time in [0, StepCap].
func StoppingTime(n uint64) int {
	steps := 0
	for n != 1 && steps < StepCap {
		if n%2 == 0 {
			n /= 2
		} else {
			n = 3*n + 1
		}
		steps++
	}
	return steps
}
