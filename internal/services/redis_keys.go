package services

const (
	KeyGameSession  = "game:session:%s"
	KeySessionIndex = "game:sessions"
)
