package domain

import "time"

type MessageID string
type SubjectID string

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Role is the author tag the tutoring service expects for prior turns.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Timestamp = time.Time
