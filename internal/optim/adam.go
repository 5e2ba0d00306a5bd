package optim

import (
	"math"

	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Default Adam hyperparameters.
const (
	DefaultAdamLR    = 0.001
	DefaultAdamBeta1 = 0.9
	DefaultAdamBeta2 = 0.999
	DefaultAdamEps   = 1e-7
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t = beta1 * m_{t-1} + (1-beta1) * gradient       // First moment
//	v_t = beta2 * v_{t-1} + (1-beta2) * gradient²      // Second moment
//	m_hat = m_t / (1 - beta1^t)                        // Bias correction
//	v_hat = v_t / (1 - beta2^t)                        // Bias correction
//	param = param - lr * m_hat / (sqrt(v_hat) + eps)  // Parameter update
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
type Adam[B tensor.Backend] struct {
	params  []*nn.Parameter[B]
	lr      float32
	beta1   float32
	beta2   float32
	eps     float32
	t       int                                    // Timestep for bias correction
	m       map[*nn.Parameter[B]]*tensor.Tensor[B] // First moment estimates
	v       map[*nn.Parameter[B]]*tensor.Tensor[B] // Second moment estimates
	backend B
}

// AdamConfig holds configuration for Adam optimizer. Zero fields take the
// package defaults.
type AdamConfig struct {
	LR    float32    // Learning rate (default: 0.001)
	Betas [2]float32 // Coefficients for running averages (default: [0.9, 0.999])
	Eps   float32    // Term for numerical stability (default: 1e-7)
}

// WithDefaults returns c with zero fields replaced by defaults.
func (c AdamConfig) WithDefaults() AdamConfig {
	if c.LR == 0 {
		c.LR = DefaultAdamLR
	}
	if c.Betas[0] == 0 {
		c.Betas[0] = DefaultAdamBeta1
	}
	if c.Betas[1] == 0 {
		c.Betas[1] = DefaultAdamBeta2
	}
	if c.Eps == 0 {
		c.Eps = DefaultAdamEps
	}
	return c
}

// NewAdam creates a new Adam optimizer over params.
func NewAdam[B tensor.Backend](params []*nn.Parameter[B], config AdamConfig, backend B) *Adam[B] {
	config = config.WithDefaults()

	return &Adam[B]{
		params:  params,
		lr:      config.LR,
		beta1:   config.Betas[0],
		beta2:   config.Betas[1],
		eps:     config.Eps,
		m:       make(map[*nn.Parameter[B]]*tensor.Tensor[B]),
		v:       make(map[*nn.Parameter[B]]*tensor.Tensor[B]),
		backend: backend,
	}
}

// Step performs a single optimization step.
//
// Parameters with no gradient are skipped and their moments left untouched.
func (a *Adam[B]) Step(grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.t++

	biasCorrection1 := float32(1.0 - math.Pow(float64(a.beta1), float64(a.t)))
	biasCorrection2 := float32(1.0 - math.Pow(float64(a.beta2), float64(a.t)))

	for _, param := range a.params {
		grad := getGradient(param, grads)
		if grad == nil {
			continue
		}
		param.SetGrad(tensor.New(grad, a.backend))

		m, ok := a.m[param]
		if !ok {
			m = tensor.Zeros(param.Tensor().Shape(), a.backend)
			a.m[param] = m
		}
		v, ok := a.v[param]
		if !ok {
			v = tensor.Zeros(param.Tensor().Shape(), a.backend)
			a.v[param] = v
		}

		a.updateParameter(param, grad, m, v, biasCorrection1, biasCorrection2)
	}
}

// updateParameter performs Adam update for a single parameter in place.
func (a *Adam[B]) updateParameter(
	param *nn.Parameter[B],
	grad *tensor.RawTensor,
	m, v *tensor.Tensor[B],
	biasCorrection1, biasCorrection2 float32,
) {
	gradData := grad.Data()
	mData := m.Data()
	vData := v.Data()
	paramData := param.Tensor().Data()

	for i := range paramData {
		g := gradData[i]
		mData[i] = a.beta1*mData[i] + (1.0-a.beta1)*g
		vData[i] = a.beta2*vData[i] + (1.0-a.beta2)*g*g

		mHat := mData[i] / biasCorrection1
		vHat := vData[i] / biasCorrection2
		paramData[i] -= a.lr * mHat / (float32(math.Sqrt(float64(vHat))) + a.eps)
	}
}

// ZeroGrad clears gradients for all parameters.
func (a *Adam[B]) ZeroGrad() {
	for _, param := range a.params {
		param.ZeroGrad()
	}
}

// GetLR returns the current learning rate.
func (a *Adam[B]) GetLR() float32 {
	return a.lr
}

// SetLR updates the learning rate.
func (a *Adam[B]) SetLR(lr float32) {
	a.lr = lr
}

// GetTimestep returns the number of Step calls so far.
func (a *Adam[B]) GetTimestep() int {
	return a.t
}

// Parameters returns the parameters this optimizer updates.
func (a *Adam[B]) Parameters() []*nn.Parameter[B] {
	return a.params
}
