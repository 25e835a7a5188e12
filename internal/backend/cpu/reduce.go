package cpu

import (
	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/tensor"
)

// sumAll reduces every element to a 0-D tensor.
func (in *Interp) sumAll(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(tensor.Shape{}, n.DType())
	if n.DType().IsFloat() {
		var sum float64
		for i := 0; i < a.NumElements(); i++ {
			sum += a.FloatAt(i)
		}
		out.SetFloatAt(0, sum)
	} else {
		var sum int64
		for i := 0; i < a.NumElements(); i++ {
			sum += a.IntAt(i)
		}
		out.SetIntAt(0, sum)
	}
	return out, nil
}

// mean reduces every element to their 0-D float average.
func (in *Interp) mean(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(tensor.Shape{}, n.DType())
	var sum float64
	for i := 0; i < a.NumElements(); i++ {
		sum += a.FloatAt(i)
	}
	out.SetFloatAt(0, sum/float64(a.NumElements()))
	return out, nil
}

// sumDim reduces along one dimension. Each input element accumulates into
// the output slot obtained by dropping its coordinate along the reduced
// dimension; accumulation is sequential to stay race-free.
func (in *Interp) sumDim(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	dim := n.Dim()
	shape := a.Shape()
	strides := a.Strides()
	out := tensor.Zeros(n.Shape(), n.DType())

	// Output flat index of input element i, with the reduced coordinate
	// removed: outer part keeps strides above dim collapsed by shape[dim].
	outerStride := strides[dim] * shape[dim]
	isFloat := n.DType().IsFloat()
	for i := 0; i < a.NumElements(); i++ {
		outer := i / outerStride
		inner := i % strides[dim]
		oi := outer*strides[dim] + inner
		if isFloat {
			out.SetFloatAt(oi, out.FloatAt(oi)+a.FloatAt(i))
		} else {
			out.SetIntAt(oi, out.IntAt(oi)+a.IntAt(i))
		}
	}
	return out, nil
}
