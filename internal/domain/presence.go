package domain

// PresenceUpdate announces that an identity came online or went offline.
// It is transient: broadcast once, never persisted.
type PresenceUpdate struct {
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

// TypingSignal is a transient keystroke notification relayed to a single
// target identity. Repeats are expected and a matching stop signal is
// not guaranteed.
type TypingSignal struct {
	FromUsername string `json:"from_username"`
	ToUsername   string `json:"to_username"`
	IsTyping     bool   `json:"is_typing"`
}
