package roam

// Budget defaults and detail control bounds.
const (
	DefaultPoolSize        = 25000
	DefaultDesiredTris     = 10000
	DefaultInitialVariance = 50

	// MinPoolSize is the smallest pool New accepts.
	MinPoolSize = 100

	DetailStep     = 500
	MinDesiredTris = 500
	MaxDesiredTris = 20000
)

// AdjustVariance moves the split threshold toward the value that makes the
// pool usage match desired. The step is the relative error, so a frame that
// used twice the budget raises the threshold by one.
func AdjustVariance(threshold float32, allocated, desired int) float32 {
	if desired <= 0 {
		return threshold
	}
	if allocated != desired {
		threshold += float32(allocated-desired) / float32(desired)
	}
	return max(threshold, 0)
}

// IncreaseDetail raises the triangle budget by one step.
func (f *Frame) IncreaseDetail() {
	f.DesiredTris = min(f.DesiredTris+DetailStep, MaxDesiredTris)
}

// DecreaseDetail lowers the triangle budget by one step.
func (f *Frame) DecreaseDetail() {
	f.DesiredTris = max(f.DesiredTris-DetailStep, MinDesiredTris)
}
