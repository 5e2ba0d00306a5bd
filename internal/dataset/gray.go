package dataset

import (
	"github.com/pkg/errors"
)

// Rec. 601 luma weights.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// ToGray converts 3-channel images to 1-channel luminance.
func ToGray(color *Images) (*Images, error) {
	if color.C != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "luminance needs 3 channels, got %d", color.C)
	}
	gray, err := NewImages(color.N, color.H, color.W, 1)
	if err != nil {
		return nil, err
	}
	for i := range gray.Data {
		px := color.Data[i*3 : i*3+3]
		gray.Data[i] = lumaR*px[0] + lumaG*px[1] + lumaB*px[2]
	}
	return gray, nil
}
