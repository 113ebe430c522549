package material

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/tuitionlk/portal/core"
)

var (
	kindTag  = "materialkind"
	kindText = "invalid material kind"

	videoURLRequiredTag  = "videourlrequired"
	videoURLRequiredText = "a video URL is required for recordings"

	fileURLRequiredTag  = "fileurlrequired"
	fileURLRequiredText = "a file URL is required for documents"

	singleContentRefTag  = "singlecontentref"
	singleContentRefText = "a material carries exactly one content reference"
)

// InitValidators registers the material validators and their translations.
// It must be called once at app start-up, after core.InitValidators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(kindTag, kindValidation)
	core.RegisterCustomTranslation(validate, translator, kindTag, kindText)

	validate.RegisterStructValidation(materialStructValidation, NewMaterial{}, UpdateMaterial{})
	core.RegisterCustomTranslation(validate, translator, videoURLRequiredTag, videoURLRequiredText)
	core.RegisterCustomTranslation(validate, translator, fileURLRequiredTag, fileURLRequiredText)
	core.RegisterCustomTranslation(validate, translator, singleContentRefTag, singleContentRefText)
}

// Custom Validators

func kindValidation(fl validator.FieldLevel) bool {
	return Kind(fl.Field().String()).Valid()
}

// materialStructValidation enforces the single content reference rule on
// both create and update payloads: recordings carry a video URL, documents
// a file URL, never both. Update payloads reach it already resolved against
// the original record (see UpdateMaterial.Validate).
func materialStructValidation(sl validator.StructLevel) {
	var (
		kind              Kind
		videoURL, fileURL string
	)
	switch m := sl.Current().Interface().(type) {
	case NewMaterial:
		kind, videoURL, fileURL = m.Kind, m.VideoURL, m.FileURL
	case UpdateMaterial:
		kind, videoURL, fileURL = m.Kind, m.VideoURL, m.FileURL
	default:
		return
	}

	switch kind {
	case KindRecording:
		if videoURL == "" {
			sl.ReportError(videoURL, "video_url", "VideoURL", videoURLRequiredTag, "")
		}
		if fileURL != "" {
			sl.ReportError(fileURL, "file_url", "FileURL", singleContentRefTag, "")
		}
	case KindDocument:
		if fileURL == "" {
			sl.ReportError(fileURL, "file_url", "FileURL", fileURLRequiredTag, "")
		}
		if videoURL != "" {
			sl.ReportError(videoURL, "video_url", "VideoURL", singleContentRefTag, "")
		}
	}
}
