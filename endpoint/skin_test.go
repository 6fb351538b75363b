package endpoint_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ariebrainware/healthassist/classifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: 180, G: 90, B: 60, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func postSkin(t *testing.T, srv testServer, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if data != nil {
		part, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/skin", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func assertTempDirEmpty(t *testing.T, srv testServer) {
	t.Helper()
	entries, err := os.ReadDir(srv.store.TempDir())
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary upload left behind")
}

func TestClassifySkinMissingImage(t *testing.T) {
	clf := &fakeClassifier{}
	srv := setupTestServer(t, serverDeps{classifier: clf})

	w := postSkin(t, srv, "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp apiResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No image uploaded", resp.Msg)
	assert.Zero(t, clf.calls)
}

func TestClassifySkinSuccessRemovesTempFile(t *testing.T) {
	want := classifier.Result{ClassName: "Acne", Confidence: 87.5, SkinInfo: classifier.LookupSkinInfo("Acne")}
	clf := &fakeClassifier{result: want}
	srv := setupTestServer(t, serverDeps{classifier: clf})

	w := postSkin(t, srv, "face.png", pngBytes(t))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Acne", resp.Data["class_name"])
	assert.Equal(t, 87.5, resp.Data["confidence"])
	assert.Equal(t, want.Description, resp.Data["description"])
	assert.Equal(t, want.Diet, resp.Data["diet"])
	assertTempDirEmpty(t, srv)
}

func TestClassifySkinFailureStillRemovesTempFile(t *testing.T) {
	clf := &fakeClassifier{err: fmt.Errorf("%w: model crashed", classifier.ErrInference)}
	srv := setupTestServer(t, serverDeps{classifier: clf})

	w := postSkin(t, srv, "face.png", pngBytes(t))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertTempDirEmpty(t, srv)
}

func TestClassifySkinInvalidImage(t *testing.T) {
	clf := classifier.New(func(ctx context.Context) (classifier.Predictor, error) {
		return nil, errors.New("must not load for a bad upload")
	})
	srv := setupTestServer(t, serverDeps{classifier: clf})

	w := postSkin(t, srv, "notes.txt", []byte("plain text"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assertTempDirEmpty(t, srv)
}

func TestClassifySkinEmptyImage(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, gif.Encode(&empty, image.NewPaletted(image.Rect(0, 0, 0, 0), palette.Plan9), nil))
	clf := classifier.New(func(ctx context.Context) (classifier.Predictor, error) {
		return nil, errors.New("must not load for an empty image")
	})
	srv := setupTestServer(t, serverDeps{classifier: clf})

	w := postSkin(t, srv, "blank.gif", empty.Bytes())

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assertTempDirEmpty(t, srv)
}

func TestClassifySkinModelUnavailable(t *testing.T) {
	srv := setupTestServer(t, serverDeps{classifier: classifier.New(classifier.ModelServerLoader("", 0))})

	w := postSkin(t, srv, "face.png", pngBytes(t))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertTempDirEmpty(t, srv)
}

type constantPredictor []float32

func (p constantPredictor) Predict(ctx context.Context, input *classifier.Tensor) ([]float32, error) {
	return p, nil
}

func TestClassifySkinDeterministic(t *testing.T) {
	probs := make(constantPredictor, len(classifier.ClassNames))
	probs[4] = 0.93
	clf := classifier.New(func(ctx context.Context) (classifier.Predictor, error) { return probs, nil })
	srv := setupTestServer(t, serverDeps{classifier: clf})
	img := pngBytes(t)

	first := postSkin(t, srv, "a.png", img)
	second := postSkin(t, srv, "a.png", img)

	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, first.Body.String(), `"class_name":"Vitiligo"`)
}
