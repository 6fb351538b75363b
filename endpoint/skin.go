package endpoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariebrainware/healthassist/classifier"
	"github.com/ariebrainware/healthassist/media"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
)

// SkinClassifier labels a skin image.
type SkinClassifier interface {
	Classify(ctx context.Context, img []byte) (classifier.Result, error)
}

// ClassifySkin godoc
// @Summary      Skin condition prediction
// @Description  Classify an uploaded skin image and return reference guidance for the predicted condition
// @Tags         Skin
// @Accept       mpfd
// @Produce      json
// @Param        image formData file true "Skin image"
// @Success      200 {object} util.APIResponse{data=classifier.Result} "Prediction"
// @Failure      400 {object} util.APIResponse "No image uploaded or not an image"
// @Failure      500 {object} util.APIResponse "Classifier unavailable"
// @Router       /skin [post]
func ClassifySkin(clf SkinClassifier, store *media.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "No image uploaded", Err: err})
			return
		}

		var result classifier.Result
		err = store.WithTempFile(filepath.Ext(fh.Filename), func(path string) error {
			if err := c.SaveUploadedFile(fh, path); err != nil {
				return fmt.Errorf("save upload: %w", err)
			}
			img, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read upload: %w", err)
			}
			result, err = clf.Classify(c.Request.Context(), img)
			return err
		})

		switch {
		case err == nil:
			util.CallSuccessOK(c, util.APISuccessParams{Msg: "Prediction successful", Data: result})
		case errors.Is(err, classifier.ErrInvalidImage):
			util.CallUserError(c, util.APIErrorParams{Msg: "Uploaded file is not a valid image", Err: err})
		case errors.Is(err, classifier.ErrModelUnavailable):
			util.CallServerError(c, util.APIErrorParams{Msg: "Skin classifier is not available", Err: err})
		default:
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to classify image", Err: err})
		}
	}
}
