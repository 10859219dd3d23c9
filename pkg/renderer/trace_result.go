package renderer

import "github.com/df07/go-pathtracer/pkg/buffer"

// TraceResult is a checkpoint handed from a worker to the consumer. The
// buffer holds radiance sums over Samples passes and is owned by the
// receiver once sent.
type TraceResult struct {
	Buffer  *buffer.Accumulation
	Samples uint64
	Worker  int
}
