package domain

// WebSocket frame types from client.
const (
	FrameTypeAuth        = "auth"
	FrameTypeJoinRoom    = "join_room"
	FrameTypeChatMessage = "chat_message"
	FrameTypeLeaveRoom   = "leave_room"
	FrameTypePing        = "ping"
)

// WebSocket frame types to client.
const (
	FrameTypeAuthResult = "auth_result"
	FrameTypeRoomJoined = "room_joined"
	FrameTypeError      = "error"
	FrameTypePong       = "pong"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeInternalError = "INTERNAL_ERROR"
	ErrCodeNotInRoom     = "NOT_IN_ROOM"
	ErrCodeNotAMember    = "NOT_A_MEMBER"
)

// BaseFrame is the base structure for all WebSocket frames.
type BaseFrame struct {
	Type string `json:"type"`
}

// Client -> Server frames

type AuthFrame struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

type JoinRoomFrame struct {
	Type        string `json:"type"`
	CommunityID string `json:"community_id"`
}

type ChatMessageFrame struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// Server -> Client frames

type AuthResultFrame struct {
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message,omitempty"`
}

type RoomJoinedFrame struct {
	Type        string `json:"type"`
	CommunityID string `json:"community_id"`
}

// ChatMessageOut is the broadcast form of a persisted ChatMessage.
type ChatMessageOut struct {
	Type           string `json:"type"`
	MessageID      string `json:"message_id"`
	SenderID       string `json:"sender_id"`
	SenderUsername string `json:"sender_username"`
	CommunityID    string `json:"community_id"`
	Content        string `json:"content"`
	CreatedAt      int64  `json:"created_at"`
}

type ErrorFrame struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewErrorFrame(code, message string) *ErrorFrame {
	return &ErrorFrame{
		Type:    FrameTypeError,
		Code:    code,
		Message: message,
	}
}
