package collatz

// StepCap is the maximum number of Collatz steps the evaluator follows before
// giving up on a sequence. Stopping times therefore always fall in [0, StepCap],
// which is also the index range of the histogram buckets downstream.
const StepCap = 1000
