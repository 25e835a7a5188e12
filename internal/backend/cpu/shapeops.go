package cpu

import (
	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// transpose evaluates an axis permutation by copying elements. Output
// dimension d reads input dimension perm[d].
func (in *Interp) transpose(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	perm := n.Perm()
	out := tensor.Zeros(n.Shape(), n.DType())
	outStrides := n.Shape().ComputeStrides()
	inStrides := a.Strides()

	parallel.For(out.NumElements(), in.par, func(i int) {
		src := 0
		rem := i
		for d := range outStrides {
			src += rem / outStrides[d] * inStrides[perm[d]]
			rem %= outStrides[d]
		}
		copyElement(out, i, a, src)
	})
	return out, nil
}

// reshape copies the contiguous buffer under a new shape.
func (in *Interp) reshape(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(n.Shape(), n.DType())
	copy(out.Data(), a.Data())
	return out, nil
}

// broadcastTo expands a tensor to a larger shape by repeating elements
// along stride-zero dimensions.
func (in *Interp) broadcastTo(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(n.Shape(), n.DType())
	ix := newBcastIndex(a.Shape(), n.Shape())
	parallel.For(out.NumElements(), in.par, func(i int) {
		copyElement(out, i, a, ix.at(i))
	})
	return out, nil
}

// copyElement moves one element between tensors of the same dtype.
func copyElement(dst *tensor.RawTensor, di int, src *tensor.RawTensor, si int) {
	if dst.DType().IsFloat() {
		dst.SetFloatAt(di, src.FloatAt(si))
	} else {
		dst.SetIntAt(di, src.IntAt(si))
	}
}
