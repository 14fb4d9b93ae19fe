package errcode

// 错误码约定：
// - 0：无错误
// - 4xxx：业务可恢复/告警类错误（例如校验失败、资源缺失）
// - 5xxx：系统错误（需要中断流程）
const (
	OK              = 0
	ValidationError = 4001
	ResourceMissing = 4004
	AIServiceError  = 4102
	SystemError     = 5000
)
