package dto

// Res is the envelope every endpoint answers with.
type Res struct {
	Success bool `json:"success"`
	Error   any  `json:"error"`
	Data    any  `json:"data"`
}

// ErrorType carries one field-level validation failure.
type ErrorType struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type StatusRes struct {
	Connected         bool     `json:"connected"`
	Source            string   `json:"source"`
	SubscribedSymbols []string `json:"subscribed_symbols"`
	ReconnectAttempts int      `json:"reconnect_attempts"`
}

type MetricsRes struct {
	UpdateFrequency    float64 `json:"update_frequency"`
	TrackedSymbolCount int     `json:"tracked_symbol_count"`
	ReconnectAttempts  int     `json:"reconnect_attempts"`
	UptimeMs           int64   `json:"uptime_ms"`
}

type SymbolsReq struct {
	Symbols []string `json:"symbols" binding:"required,min=1,dive,required"`
}

type ThrottleReq struct {
	DelayMs int `json:"delay_ms" binding:"required,gt=0"`
}
