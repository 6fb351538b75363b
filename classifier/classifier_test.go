package classifier

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPredictor struct {
	probs []float32
	err   error
}

func (f fixedPredictor) Predict(ctx context.Context, input *Tensor) ([]float32, error) {
	return f.probs, f.err
}

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func oneHot(idx int, p float32) []float32 {
	probs := make([]float32, len(ClassNames))
	rest := (1 - p) / float32(len(ClassNames)-1)
	for i := range probs {
		probs[i] = rest
	}
	probs[idx] = p
	return probs
}

func TestPreprocessScalesAndResizes(t *testing.T) {
	input, err := Preprocess(encodePNG(t, 10, 7, color.NRGBA{R: 255, G: 0, B: 51, A: 255}))
	require.NoError(t, err)

	for _, y := range []int{0, 100, InputSize - 1} {
		for _, x := range []int{0, 57, InputSize - 1} {
			assert.InDelta(t, 1.0, input[y][x][0], 1e-6)
			assert.InDelta(t, 0.0, input[y][x][1], 1e-6)
			assert.InDelta(t, 0.2, input[y][x][2], 1e-6)
		}
	}
}

func TestPreprocessRejectsGarbage(t *testing.T) {
	_, err := Preprocess([]byte("definitely not an image"))
	assert.True(t, errors.Is(err, ErrInvalidImage))
}

func encodeEmptyGIF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, image.NewPaletted(image.Rect(0, 0, 0, 0), palette.Plan9), nil))
	return buf.Bytes()
}

func TestPreprocessRejectsEmptyImage(t *testing.T) {
	var err error
	require.NotPanics(t, func() { _, err = Preprocess(encodeEmptyGIF(t)) })
	assert.True(t, errors.Is(err, ErrInvalidImage), "got %v", err)
}

func TestDecide(t *testing.T) {
	res, err := Decide(oneHot(17, 0.9))
	require.NoError(t, err)
	assert.Equal(t, "Melanoma", res.ClassName)
	assert.InDelta(t, 90.0, res.Confidence, 1e-4)
	assert.Equal(t, LookupSkinInfo("Melanoma"), res.SkinInfo)
}

func TestDecideTieTakesFirst(t *testing.T) {
	probs := make([]float32, len(ClassNames))
	probs[3] = 0.5
	probs[9] = 0.5
	res, err := Decide(probs)
	require.NoError(t, err)
	assert.Equal(t, "Rosacea", res.ClassName)
}

func TestDecideClampsConfidence(t *testing.T) {
	res, err := Decide(oneHot(0, 1.5))
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Confidence)
}

func TestDecideWrongLength(t *testing.T) {
	_, err := Decide([]float32{0.1, 0.9})
	assert.True(t, errors.Is(err, ErrInference))
}

func TestClassifyDeterministic(t *testing.T) {
	c := New(func(ctx context.Context) (Predictor, error) {
		return fixedPredictor{probs: oneHot(0, 0.8)}, nil
	})
	img := encodePNG(t, 32, 32, color.NRGBA{R: 200, G: 120, B: 90, A: 255})

	first, err := c.Classify(context.Background(), img)
	require.NoError(t, err)
	second, err := c.Classify(context.Background(), img)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Acne", first.ClassName)
	assert.NotEmpty(t, first.Description)
}

func TestClassifyLoadsOnceUnderConcurrency(t *testing.T) {
	var loads int32
	c := New(func(ctx context.Context) (Predictor, error) {
		atomic.AddInt32(&loads, 1)
		return fixedPredictor{probs: oneHot(1, 0.7)}, nil
	})
	img := encodePNG(t, 8, 8, color.White)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Classify(context.Background(), img)
			assert.NoError(t, err)
			assert.Equal(t, "Eczema", res.ClassName)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestClassifyLoadFailureIsSticky(t *testing.T) {
	var loads int32
	c := New(func(ctx context.Context) (Predictor, error) {
		atomic.AddInt32(&loads, 1)
		return nil, errors.New("weights missing")
	})
	img := encodePNG(t, 8, 8, color.Black)

	for i := 0; i < 3; i++ {
		_, err := c.Classify(context.Background(), img)
		assert.True(t, errors.Is(err, ErrModelUnavailable))
		assert.Contains(t, err.Error(), "weights missing")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestClassifyInvalidImageSkipsLoad(t *testing.T) {
	var loads int32
	c := New(func(ctx context.Context) (Predictor, error) {
		atomic.AddInt32(&loads, 1)
		return fixedPredictor{probs: oneHot(0, 1)}, nil
	})

	_, err := c.Classify(context.Background(), []byte{0x00, 0x01})

	assert.True(t, errors.Is(err, ErrInvalidImage))
	assert.Equal(t, int32(0), atomic.LoadInt32(&loads))
}

func TestClassifyPredictorError(t *testing.T) {
	c := New(func(ctx context.Context) (Predictor, error) {
		return fixedPredictor{err: errors.New("oom")}, nil
	})

	_, err := c.Classify(context.Background(), encodePNG(t, 4, 4, color.White))

	assert.True(t, errors.Is(err, ErrInference))
}

func TestClassifyNilLoader(t *testing.T) {
	_, err := New(nil).Classify(context.Background(), encodePNG(t, 4, 4, color.White))
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

func TestSkinInfoCoversEveryLabel(t *testing.T) {
	assert.Len(t, ClassNames, 23)
	assert.Len(t, skinInfo, len(ClassNames))
	for _, label := range ClassNames {
		info := LookupSkinInfo(label)
		assert.NotEmpty(t, info.Description, label)
		assert.NotEmpty(t, info.MedicalTreatment, label)
		assert.NotEmpty(t, info.HomeRemedies, label)
		assert.NotEmpty(t, info.Diet, label)
	}
}

func TestLookupSkinInfoUnknownLabel(t *testing.T) {
	assert.Equal(t, SkinInfo{}, LookupSkinInfo("Sunburn"))
	assert.Equal(t, SkinInfo{}, LookupSkinInfo("acne"))
}
