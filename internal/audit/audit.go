package audit

import (
	"context"

	"github.com/devconnect/devconnect-backend/pkg/log"
)

// Audit actions.
const (
	ActionRegister          = "user.register"
	ActionLogin             = "user.login"
	ActionLoginFailed       = "user.login_failed"
	ActionUpdateProfile     = "user.update_profile"
	ActionChangePassword    = "user.change_password"
	ActionCreateProject     = "project.create"
	ActionUpdateProject     = "project.update"
	ActionCloseProject      = "project.close"
	ActionDeleteProject     = "project.delete"
	ActionApplyProject      = "project.apply"
	ActionDecideApplication = "project.decide_application"
	ActionCreateCommunity   = "community.create"
	ActionJoinCommunity     = "community.join"
	ActionLeaveCommunity    = "community.leave"
	ActionChatAuth          = "chat.auth"
	ActionChatAuthFailed    = "chat.auth_failed"
	ActionJoinRoom          = "chat.join_room"
	ActionLeaveRoom         = "chat.leave_room"
	ActionSendMessage       = "chat.send_message"
	ActionDisconnect        = "chat.disconnect"
	ActionAssistantQuery    = "assistant.query"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, userID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldDetail, detail).
		Msg(msg)
}
