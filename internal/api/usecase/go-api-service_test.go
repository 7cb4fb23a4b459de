package usecase

import (
	"price-stream-backend/internal/api/constant"
	"price-stream-backend/internal/api/usecase/mocks"
	"price-stream-backend/internal/models"
	"testing"

	"github.com/go-playground/assert"
)

func TestGetStatus(t *testing.T) {
	//given
	status := models.ConnectionStatus{
		Connected:         true,
		Source:            models.SourcePrimary,
		SubscribedSymbols: []string{"BTCUSDT"},
	}
	mockStream := new(mocks.StreamItf)
	mockStream.On("Status").Return(status)
	uc := NewUsecase(mockStream)

	//when
	output := uc.GetStatus()

	//then
	assert.Equal(t, status, output)
}

func TestGetMetrics(t *testing.T) {
	//given
	metrics := models.StreamMetrics{
		UpdateFrequency:    4.5,
		TrackedSymbolCount: 3,
		ReconnectAttempts:  1,
		UptimeMs:           20000,
	}
	mockStream := new(mocks.StreamItf)
	mockStream.On("Metrics").Return(metrics)
	uc := NewUsecase(mockStream)

	//when
	output := uc.GetMetrics()

	//then
	assert.Equal(t, metrics, output)
}

func TestAddSymbols(t *testing.T) {
	status := models.ConnectionStatus{
		Connected:         true,
		Source:            models.SourcePrimary,
		SubscribedSymbols: []string{"BTCUSDT", "ETHUSDT"},
	}

	testCases := []struct {
		name           string
		input          []string
		streamSetup    func() *mocks.StreamItf
		expectedOutput models.ConnectionStatus
		expectedErr    error
	}{
		{
			name:  "subscribe and return fresh status",
			input: []string{"ethusdt"},
			streamSetup: func() *mocks.StreamItf {
				mockStream := new(mocks.StreamItf)
				mockStream.On("Subscribe", []string{"ethusdt"}).Return()
				mockStream.On("Status").Return(status)
				return mockStream
			},
			expectedOutput: status,
			expectedErr:    nil,
		},
		{
			name:  "blank entries are dropped before subscribing",
			input: []string{"  ethusdt ", ""},
			streamSetup: func() *mocks.StreamItf {
				mockStream := new(mocks.StreamItf)
				mockStream.On("Subscribe", []string{"ethusdt"}).Return()
				mockStream.On("Status").Return(status)
				return mockStream
			},
			expectedOutput: status,
			expectedErr:    nil,
		},
		{
			name:  "empty request is rejected",
			input: []string{},
			streamSetup: func() *mocks.StreamItf {
				// Subscribe must not be called
				return new(mocks.StreamItf)
			},
			expectedOutput: models.ConnectionStatus{},
			expectedErr:    constant.ErrNoSymbols,
		},
		{
			name:  "all-blank request is rejected",
			input: []string{" ", "\t"},
			streamSetup: func() *mocks.StreamItf {
				return new(mocks.StreamItf)
			},
			expectedOutput: models.ConnectionStatus{},
			expectedErr:    constant.ErrNoSymbols,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			//given
			mockStream := tt.streamSetup()
			uc := NewUsecase(mockStream)

			//when
			output, err := uc.AddSymbols(tt.input)

			//then
			assert.Equal(t, tt.expectedOutput, output)
			assert.Equal(t, tt.expectedErr, err)
			mockStream.AssertExpectations(t)
		})
	}
}

func TestRemoveSymbols(t *testing.T) {
	status := models.ConnectionStatus{
		Connected:         true,
		Source:            models.SourcePrimary,
		SubscribedSymbols: []string{"BTCUSDT"},
	}

	testCases := []struct {
		name           string
		input          []string
		streamSetup    func() *mocks.StreamItf
		expectedOutput models.ConnectionStatus
		expectedErr    error
	}{
		{
			name:  "unsubscribe and return fresh status",
			input: []string{"ethusdt"},
			streamSetup: func() *mocks.StreamItf {
				mockStream := new(mocks.StreamItf)
				mockStream.On("Unsubscribe", []string{"ethusdt"}).Return()
				mockStream.On("Status").Return(status)
				return mockStream
			},
			expectedOutput: status,
			expectedErr:    nil,
		},
		{
			name:  "empty request is rejected",
			input: nil,
			streamSetup: func() *mocks.StreamItf {
				return new(mocks.StreamItf)
			},
			expectedOutput: models.ConnectionStatus{},
			expectedErr:    constant.ErrNoSymbols,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			//given
			mockStream := tt.streamSetup()
			uc := NewUsecase(mockStream)

			//when
			output, err := uc.RemoveSymbols(tt.input)

			//then
			assert.Equal(t, tt.expectedOutput, output)
			assert.Equal(t, tt.expectedErr, err)
			mockStream.AssertExpectations(t)
		})
	}
}

func TestSetThrottleDelay(t *testing.T) {
	//given
	mockStream := new(mocks.StreamItf)
	mockStream.On("SetThrottleDelay", 250).Return()
	uc := NewUsecase(mockStream)

	//when
	uc.SetThrottleDelay(250)

	//then
	mockStream.AssertExpectations(t)
}
