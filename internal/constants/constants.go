package constants

// 订单状态常量
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusDelivered  = "delivered"
	OrderStatusCanceled   = "canceled"
)

// 支付方式标签常量（订单仅记录标签，不接入支付渠道）
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
)

// 兑换码前缀常量
const (
	CouponPrefixDefault = "SAVE"
)

// 队列常量
const (
	QueueDefault         = "default"
	TaskTriggerFollowup  = "trigger:followup"
	TaskCustomerStatsFix = "customer:stats_recalc"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sa"
)

// 发票编号前缀常量
const (
	InvoiceNoPrefix = "INV"
)
