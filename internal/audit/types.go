package audit

// AuditAction represents the type of action performed on the local collections
type AuditAction string

const (
	AuditActionContactCreate    AuditAction = "contact_create"
	AuditActionContactDelete    AuditAction = "contact_delete"
	AuditActionContactDeleteAll AuditAction = "contact_delete_all"
	AuditActionChatOpen         AuditAction = "chat_open"
	AuditActionHistoryDelete    AuditAction = "history_delete"
	AuditActionHistoryClear     AuditAction = "history_clear"
	AuditActionTemplatesSave    AuditAction = "templates_save"
)
