// Package classifier labels skin images with one of a fixed set of
// conditions and attaches reference guidance for the predicted label.
package classifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/disintegration/imaging"
)

// InputSize is the side length of the square model input.
const InputSize = 224

var (
	// ErrInvalidImage is returned when the upload cannot be decoded as an image.
	ErrInvalidImage = errors.New("invalid image")
	// ErrModelUnavailable is returned for every call once loading the model failed.
	ErrModelUnavailable = errors.New("classification model unavailable")
	// ErrInference is returned when the model call fails or returns an unexpected shape.
	ErrInference = errors.New("classification failed")
)

// Tensor is a single RGB image scaled to [0,1], indexed [row][col][channel].
type Tensor [InputSize][InputSize][3]float32

// Predictor returns one probability per entry of ClassNames.
type Predictor interface {
	Predict(ctx context.Context, input *Tensor) ([]float32, error)
}

// Loader builds the shared predictor. It is called at most once per Classifier.
type Loader func(ctx context.Context) (Predictor, error)

// Result is the classification returned to clients.
type Result struct {
	ClassName  string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
	SkinInfo
}

// Classifier lazily loads its predictor on first use and shares it across
// goroutines. A failed load is not retried.
type Classifier struct {
	load Loader

	once      sync.Once
	predictor Predictor
	loadErr   error
}

// New returns a Classifier that will obtain its predictor from load.
func New(load Loader) *Classifier {
	return &Classifier{load: load}
}

// Classify decodes img, runs the model and returns the most probable label.
func (c *Classifier) Classify(ctx context.Context, img []byte) (Result, error) {
	input, err := Preprocess(img)
	if err != nil {
		return Result{}, err
	}

	predictor, err := c.getPredictor(ctx)
	if err != nil {
		return Result{}, err
	}

	probs, err := predictor.Predict(ctx, input)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInference, err)
	}
	return Decide(probs)
}

func (c *Classifier) getPredictor(ctx context.Context) (Predictor, error) {
	c.once.Do(func() {
		if c.load == nil {
			c.loadErr = errors.New("no model loader configured")
			return
		}
		c.predictor, c.loadErr = c.load(ctx)
		if c.loadErr == nil && c.predictor == nil {
			c.loadErr = errors.New("model loader returned no predictor")
		}
	})
	if c.loadErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, c.loadErr)
	}
	return c.predictor, nil
}

// Preprocess decodes img, resizes it to InputSize x InputSize with
// nearest-neighbour sampling and scales each channel to [0,1].
func Preprocess(img []byte) (*Tensor, error) {
	src, err := imaging.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if b := src.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	return toTensor(imaging.Resize(src, InputSize, InputSize, imaging.NearestNeighbor)), nil
}

func toTensor(img *image.NRGBA) *Tensor {
	t := new(Tensor)
	for y := 0; y < InputSize; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < InputSize; x++ {
			px := row[x*4 : x*4+3]
			t[y][x][0] = float32(px[0]) / 255
			t[y][x][1] = float32(px[1]) / 255
			t[y][x][2] = float32(px[2]) / 255
		}
	}
	return t
}

// Decide maps a probability vector to a Result. Ties resolve to the lowest index.
func Decide(probs []float32) (Result, error) {
	if len(probs) != len(ClassNames) {
		return Result{}, fmt.Errorf("%w: expected %d probabilities, got %d", ErrInference, len(ClassNames), len(probs))
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}

	confidence := float64(probs[best]) * 100
	if math.IsNaN(confidence) {
		return Result{}, fmt.Errorf("%w: non-numeric probability", ErrInference)
	}
	if confidence < 0 {
		confidence = 0
	} else if confidence > 100 {
		confidence = 100
	}

	label := ClassNames[best]
	return Result{
		ClassName:  label,
		Confidence: confidence,
		SkinInfo:   LookupSkinInfo(label),
	}, nil
}
