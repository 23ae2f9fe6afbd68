package billing

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/anviet/tuition-api/internal/domain/entity"
	"github.com/anviet/tuition-api/pkg/apperror"
)

// requiredFields lists the gated fields in form layout order. The validator
// reports errors in field order, so the first error is where focus lands.
type requiredFields struct {
	Type          string `json:"type" validate:"-"`
	StudentName   string `json:"studentName" validate:"notblank"`
	ClassName     string `json:"className" validate:"notblank"`
	PhoneNumber   string `json:"phoneNumber" validate:"notblank"`
	StudySchedule string `json:"studySchedule" validate:"requiredfor=daycare"`
	Issuer        string `json:"issuer" validate:"notblank"`
}

var fieldMessages = map[string]string{
	"studentName":   "Vui lòng chọn học sinh",
	"className":     "Vui lòng nhập lớp",
	"phoneNumber":   "Vui lòng nhập số điện thoại",
	"studySchedule": "Vui lòng chọn lịch học",
	"issuer":        "Vui lòng chọn người lập phiếu",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// requiredfor=<type>: not blank when the record's Type equals the param.
		_ = v.RegisterValidation("requiredfor", func(fl validator.FieldLevel) bool {
			if fl.Parent().FieldByName("Type").String() != fl.Param() {
				return true
			}
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		validate = v
	})
	return validate
}

// Validate checks the fields a record needs before it can be finalized.
// It returns one error per violated field in form layout order, or nil.
func Validate(record entity.TuitionRecord) []apperror.FieldError {
	fields := requiredFields{
		Type:          string(record.Type),
		StudentName:   record.StudentName,
		ClassName:     record.ClassName,
		PhoneNumber:   record.PhoneNumber,
		StudySchedule: record.StudySchedule,
		Issuer:        record.Issuer,
	}

	err := fieldValidator().Struct(fields)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperror.FieldError{{Field: "record", Message: err.Error()}}
	}

	out := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperror.FieldError{
			Field:   fe.Field(),
			Message: fieldMessages[fe.Field()],
		})
	}
	return out
}
