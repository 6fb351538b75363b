package endpoint

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/ariebrainware/healthassist/advice"
	"github.com/ariebrainware/healthassist/hospital"
	"github.com/ariebrainware/healthassist/model"
	"github.com/ariebrainware/healthassist/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	// DefaultFallbackCity is searched for hospitals when the user has no address.
	DefaultFallbackCity = "Ongole"
	// DefaultMaxBodyBytes caps a consultation request, image included.
	DefaultMaxBodyBytes int64 = 10 << 20
)

// ConsultDeps are the external services a consultation talks to.
type ConsultDeps struct {
	Advice       advice.Generator
	Hospitals    hospital.Locator
	FallbackCity string
	MaxBodyBytes int64
}

// ConsultRequest documents the JSON form of POST /bot. Multipart forms use the
// same field names with image as a file.
type ConsultRequest struct {
	UserID  json.RawMessage `json:"user_id" swaggertype:"integer" example:"1"`
	Message string          `json:"message" example:"Fever and sore throat since yesterday"`
	Image   string          `json:"image,omitempty" example:"iVBORw0KGgo..."`
}

type ConsultResponse struct {
	Record             model.HealthRecordResponse `json:"record"`
	SuggestedHospitals []hospital.Hospital        `json:"suggested_hospitals"`
}

type consultInput struct {
	UserID  string
	Message string
	Image   []byte
}

var errMissingUserID = errors.New("missing user ID")

// Consult godoc
// @Summary      Health consultation
// @Description  Record the user's symptoms (or a skin image) and return advice with nearby hospitals.
// @Description  Advice and hospital lookups never fail the request; fallback text or an empty list is returned instead.
// @Tags         Consultation
// @Accept       json,mpfd
// @Produce      json
// @Param        request body ConsultRequest true "Consultation"
// @Success      201 {object} util.APIResponse{data=ConsultResponse} "Consultation recorded"
// @Failure      400 {object} util.APIResponse "Missing user ID"
// @Failure      404 {object} util.APIResponse "Invalid user ID"
// @Failure      413 {object} util.APIResponse "Request too large"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /bot [post]
func Consult(deps ConsultDeps) gin.HandlerFunc {
	if deps.FallbackCity == "" {
		deps.FallbackCity = DefaultFallbackCity
	}
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, deps.MaxBodyBytes)
		in, err := readConsultInput(c)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			util.CallPayloadTooLarge(c, util.APIErrorParams{Msg: "Request too large", Err: err})
			return
		}
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid consultation request", Err: err})
			return
		}
		if in.UserID == "" || in.UserID == "0" {
			util.CallUserError(c, util.APIErrorParams{Msg: "Missing user ID", Err: errMissingUserID})
			return
		}
		userID, err := strconv.ParseUint(in.UserID, 10, 64)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Invalid user ID", Err: fmt.Errorf("user_id must be a positive integer")})
			return
		}

		db, ok := getDBOrRespond(c)
		if !ok {
			return
		}
		user, err := model.FindUserProfile(db, uint(userID))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Invalid user ID", Err: err})
			return
		}
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
			return
		}

		location := strings.TrimSpace(user.Address)
		if location == "" {
			location = deps.FallbackCity
		}

		var (
			adviceRes   advice.Result
			hospitalRes hospital.Result
			g           errgroup.Group
		)
		ctx := c.Request.Context()
		g.Go(func() error {
			adviceRes = deps.Advice.Generate(ctx, advice.Input{Text: in.Message, Image: in.Image})
			return nil
		})
		g.Go(func() error {
			hospitalRes = deps.Hospitals.Find(ctx, location)
			return nil
		})
		_ = g.Wait()

		if adviceRes.FellBack() {
			util.LogUpstreamDegraded("advice", user.ID, adviceRes.Err)
		}
		if hospitalRes.Err != nil {
			util.LogUpstreamDegraded("hospitals", user.ID, hospitalRes.Err)
		}

		record, err := model.CreateHealthRecord(db, &user, in.Message, adviceRes.Text)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to save health record", Err: err})
			return
		}

		util.CallSuccessCreated(c, util.APISuccessParams{
			Msg: "Consultation recorded",
			Data: ConsultResponse{
				Record:             record.Response(),
				SuggestedHospitals: hospitalRes.Suggestions(),
			},
		})
	}
}

func readConsultInput(c *gin.Context) (consultInput, error) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	switch mediaType {
	case "multipart/form-data", "application/x-www-form-urlencoded":
		return readConsultForm(c)
	default:
		return readConsultJSON(c)
	}
}

func readConsultForm(c *gin.Context) (consultInput, error) {
	in := consultInput{
		UserID:  strings.TrimSpace(c.PostForm("user_id")),
		Message: c.PostForm("message"),
	}
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil
	}
	if err != nil {
		return in, fmt.Errorf("read image: %w", err)
	}
	f, err := fh.Open()
	if err != nil {
		return in, fmt.Errorf("read image: %w", err)
	}
	defer f.Close()
	if in.Image, err = io.ReadAll(f); err != nil {
		return in, fmt.Errorf("read image: %w", err)
	}
	return in, nil
}

func readConsultJSON(c *gin.Context) (consultInput, error) {
	var req ConsultRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return consultInput{}, fmt.Errorf("invalid JSON body: %w", err)
	}

	in := consultInput{Message: req.Message}
	id, err := rawUserID(req.UserID)
	if err != nil {
		return consultInput{}, err
	}
	in.UserID = id

	if req.Image != "" {
		img, err := base64.StdEncoding.DecodeString(req.Image)
		if err != nil {
			return consultInput{}, fmt.Errorf("image must be base64 encoded: %w", err)
		}
		in.Image = img
	}
	return in, nil
}

// rawUserID accepts user_id as a JSON number or string.
func rawUserID(raw json.RawMessage) (string, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "", nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return "", fmt.Errorf("invalid user_id: %w", err)
		}
		return strings.TrimSpace(str), nil
	}
	return s, nil
}
