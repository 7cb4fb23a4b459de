package usecase

import (
	"price-stream-backend/internal/api/constant"
	"price-stream-backend/internal/models"
	"strings"
)

// StreamItf is the slice of the streaming client the API layer drives.
// *stream.Client satisfies it.
type StreamItf interface {
	Status() models.ConnectionStatus
	Metrics() models.StreamMetrics
	Subscribe(symbols []string)
	Unsubscribe(symbols []string)
	SetThrottleDelay(ms int)
}

type UsecaseItf interface {
	GetStatus() models.ConnectionStatus
	GetMetrics() models.StreamMetrics
	AddSymbols(symbols []string) (models.ConnectionStatus, error)
	RemoveSymbols(symbols []string) (models.ConnectionStatus, error)
	SetThrottleDelay(ms int)
}

type Usecase struct {
	st StreamItf
}

func NewUsecase(st StreamItf) *Usecase {
	return &Usecase{st: st}
}

func (uc *Usecase) GetStatus() models.ConnectionStatus {
	return uc.st.Status()
}

func (uc *Usecase) GetMetrics() models.StreamMetrics {
	return uc.st.Metrics()
}

func (uc *Usecase) AddSymbols(symbols []string) (models.ConnectionStatus, error) {
	cleaned := cleanSymbols(symbols)
	if len(cleaned) == 0 {
		return models.ConnectionStatus{}, constant.ErrNoSymbols
	}

	uc.st.Subscribe(cleaned)
	return uc.st.Status(), nil
}

func (uc *Usecase) RemoveSymbols(symbols []string) (models.ConnectionStatus, error) {
	cleaned := cleanSymbols(symbols)
	if len(cleaned) == 0 {
		return models.ConnectionStatus{}, constant.ErrNoSymbols
	}

	uc.st.Unsubscribe(cleaned)
	return uc.st.Status(), nil
}

func (uc *Usecase) SetThrottleDelay(ms int) {
	uc.st.SetThrottleDelay(ms)
}

// cleanSymbols drops blank entries so a request of [" ", ""] does not
// reach the client as a subscription change.
func cleanSymbols(symbols []string) []string {
	cleaned := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}
