package errors

import "fmt"

var (
	ErrIdentifiersRequired     = fmt.Errorf("Participant ID and channel name are required")
	ErrMaxConnections          = fmt.Errorf("Maximum connections reached")
	ErrParticipantNotConnected = fmt.Errorf("Participant not connected")
	ErrParticipantNotInChannel = fmt.Errorf("Participant not in channel")
	ErrParticipantNotFound     = fmt.Errorf("Participant not found")
	ErrJoinFailed              = fmt.Errorf("Internal error joining channel")
	ErrSendFailed              = fmt.Errorf("Failed to send message")
	ErrLeaveFailed             = fmt.Errorf("Failed to leave channel")
	ErrInvalidConfig           = fmt.Errorf("invalid bridge configuration")
	ErrInvalidPayload          = fmt.Errorf("invalid event payload")
	ErrWorkerPanic             = fmt.Errorf("worker panic")
	ErrIDGeneration            = fmt.Errorf("secure identifier generation failed")
	ErrUnknownCommand          = fmt.Errorf("unknown command")
)
