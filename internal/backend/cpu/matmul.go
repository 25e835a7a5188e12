package cpu

import (
	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// matmul evaluates a 2-D matrix product with an ikj loop order, parallel
// over output rows. Accumulation happens in float64.
func (in *Interp) matmul(n *graph.Node, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	m := a.Shape()[0]
	k := a.Shape()[1]
	p := b.Shape()[1]

	out := tensor.Zeros(n.Shape(), n.DType())
	parallel.For(m, in.par, func(i int) {
		row := make([]float64, p)
		for kk := 0; kk < k; kk++ {
			av := a.FloatAt(i*k + kk)
			if av == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				row[j] += av * b.FloatAt(kk*p+j)
			}
		}
		for j := 0; j < p; j++ {
			out.SetFloatAt(i*p+j, row[j])
		}
	})
	return out, nil
}
