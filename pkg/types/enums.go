package types

// ============================================================================
//                              Phase - 校验阶段
// ============================================================================

// Phase 表单校验阶段
//
// 两个阶段相互独立：联系人字段的变更不会重新计算配送阶段，反之亦然。
type Phase int

const (
	// PhaseDelivery 配送阶段（payment、address）
	PhaseDelivery Phase = iota
	// PhaseContact 联系人阶段（email、phone）
	PhaseContact
)

// String 返回阶段的字符串表示
func (p Phase) String() string {
	switch p {
	case PhaseDelivery:
		return "delivery"
	case PhaseContact:
		return "contact"
	default:
		return "unknown"
	}
}

// ============================================================================
//                              ContactField - 联系人字段
// ============================================================================

// ContactField 联系人表单字段
type ContactField string

const (
	// FieldEmail 邮箱
	FieldEmail ContactField = "email"
	// FieldPhone 电话
	FieldPhone ContactField = "phone"
)

// Valid 字段名是否合法
func (f ContactField) Valid() bool {
	return f == FieldEmail || f == FieldPhone
}
