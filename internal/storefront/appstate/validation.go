package appstate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BMIWB/go-larek/pkg/types"
)

// ============================================================================
// 两阶段表单校验
// ============================================================================

type deliveryForm struct {
	Payment string `json:"payment" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type contactForm struct {
	Email string `json:"email" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// fieldMessages 字段错误消息
var fieldMessages = map[string]string{
	"payment": "Select a payment method",
	"address": "Enter a delivery address",
	"email":   "Enter an email",
	"phone":   "Enter a phone number",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateOrder 校验一个阶段并发布结果
//
// 无论是否有效都会发布该阶段的事件，载荷为新的错误映射（空映射表示有效）。
// 两个阶段互不影响。
func (a *AppData) ValidateOrder(phase types.Phase) bool {
	var (
		form  any
		event string
	)
	switch phase {
	case types.PhaseDelivery:
		form = deliveryForm{Payment: string(a.order.Payment), Address: a.order.Address}
		event = types.EventDeliveryErrors
	case types.PhaseContact:
		form = contactForm{Email: a.order.Email, Phone: a.order.Phone}
		event = types.EventContactErrors
	default:
		logger.Warn("未知的校验阶段", "phase", phase)
		return false
	}

	errs := a.check(form)
	a.phaseErrors[phase] = errs
	a.formErrors = errs
	a.EmitChanges(event, errs.Clone())
	return errs.Valid()
}

// FormErrors 返回最近一次校验的错误
func (a *AppData) FormErrors() types.FormErrors {
	return a.formErrors.Clone()
}

// PhaseErrors 返回指定阶段最近一次校验的错误
//
// 该阶段尚未校验时 ok 为 false。
func (a *AppData) PhaseErrors(phase types.Phase) (types.FormErrors, bool) {
	errs, ok := a.phaseErrors[phase]
	if !ok {
		return nil, false
	}
	return errs.Clone(), true
}

// IsValid 两个阶段都已校验且都没有错误
func (a *AppData) IsValid() bool {
	for _, phase := range []types.Phase{types.PhaseDelivery, types.PhaseContact} {
		errs, ok := a.phaseErrors[phase]
		if !ok || !errs.Valid() {
			return false
		}
	}
	return true
}

func (a *AppData) check(form any) types.FormErrors {
	errs := types.FormErrors{}

	err := a.validate.Struct(form)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		logger.Error("表单校验失败", "err", err)
		return errs
	}
	for _, fe := range fieldErrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		errs[fe.Field()] = msg
	}
	return errs
}
