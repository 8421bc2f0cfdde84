// Package curve provides piecewise cubic Bézier path sampling for object animation.
package curve

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Bezier errors.
var (
	ErrNotEnoughControlPoints = errors.New("cubic Bézier path needs at least 4 control points")
	ErrInvalidResolution      = errors.New("invalid curve resolution")
)

// Bezier samples a chain of cubic segments at a fixed resolution.
//
// Segment k uses control points 3k..3k+3, so neighbouring segments share an
// endpoint (C0 continuity). Points left over after the last complete segment
// are ignored.
//
// The zero value is ready to use: set control points, then Generate.
type Bezier struct {
	controlPoints []mgl32.Vec3
	samples       []mgl32.Vec3
	generated     bool
}

// SetControlPoints stores a copy of points, replacing any previous set.
// Samples from an earlier Generate are discarded.
func (b *Bezier) SetControlPoints(points []mgl32.Vec3) {
	b.controlPoints = append(b.controlPoints[:0:0], points...)
	b.samples = nil
	b.generated = false
}

// ControlPoints returns the stored control points.
func (b *Bezier) ControlPoints() []mgl32.Vec3 {
	return b.controlPoints
}

// SegmentCount returns the number of complete cubic segments in the control polygon.
func (b *Bezier) SegmentCount() int {
	return SegmentCount(len(b.controlPoints))
}

// SegmentCount returns how many cubic segments n shared-endpoint control points form.
func SegmentCount(n int) int {
	if n < 4 {
		return 0
	}
	return (n - 1) / 3
}

// Generate computes exactly resolution samples along the path. resolution
// must be at least the segment count so every segment gets a sample and
// sample 0 is the first control point. Samples are split across segments resolution/segments each (floor), with
// the remainder going to the last segment. Every segment but the last stops
// short of t=1 since its endpoint starts the next one; the last segment ends
// on the final control point.
func (b *Bezier) Generate(resolution int) error {
	if resolution < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	segments := b.SegmentCount()
	if segments == 0 {
		return fmt.Errorf("%w: have %d", ErrNotEnoughControlPoints, len(b.controlPoints))
	}
	if resolution < segments {
		return fmt.Errorf("%w: %d samples for %d segments", ErrInvalidResolution, resolution, segments)
	}

	samples := make([]mgl32.Vec3, 0, resolution)
	for seg, count := range Distribute(resolution, segments) {
		p := b.controlPoints[seg*3 : seg*3+4]
		last := seg == segments-1

		for j := 0; j < count; j++ {
			samples = append(samples, mgl32.CubicBezierCurve3D(segmentT(j, count, last), p[0], p[1], p[2], p[3]))
		}
	}

	b.samples = samples
	b.generated = true
	return nil
}

// Generated reports whether samples are available.
func (b *Bezier) Generated() bool {
	return b.generated
}

// PointOnCurve returns sample index. It panics if the curve has not been
// generated or if index is outside [0, NumCurvePoints()); callers looping
// over the path wrap the index themselves.
func (b *Bezier) PointOnCurve(index int) mgl32.Vec3 {
	if !b.generated {
		panic("curve: PointOnCurve called before Generate")
	}
	if index < 0 || index >= len(b.samples) {
		panic(fmt.Sprintf("curve: sample index %d out of range [0, %d)", index, len(b.samples)))
	}
	return b.samples[index]
}

// NumCurvePoints returns the resolution used by the last Generate.
// It panics if the curve has not been generated.
func (b *Bezier) NumCurvePoints() int {
	if !b.generated {
		panic("curve: NumCurvePoints called before Generate")
	}
	return len(b.samples)
}

// Samples returns the generated samples. The slice must not be modified.
func (b *Bezier) Samples() []mgl32.Vec3 {
	return b.samples
}

// Distribute splits resolution samples across segments: floor(resolution/segments)
// each, remainder added to the last segment.
func Distribute(resolution, segments int) []int {
	counts := make([]int, segments)
	per := resolution / segments
	for i := range counts {
		counts[i] = per
	}
	counts[segments-1] += resolution - per*segments
	return counts
}

// segmentT returns the curve parameter of sample j out of count in one segment.
func segmentT(j, count int, last bool) float32 {
	switch {
	case count <= 1:
		return 0
	case last:
		return float32(j) / float32(count-1)
	default:
		return float32(j) / float32(count)
	}
}
