package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "shorts-script-api/pkg/errors"
)

func TestClassifyUpstreamError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code apperrors.ErrorCode
	}{
		{"rate limit", errors.New("Rate limit exceeded for model"), apperrors.CodeUpstreamTransient},
		{"quota", errors.New("You exceeded your current quota"), apperrors.CodeUpstreamTransient},
		{"grpc resource exhausted", errors.New("rpc error: code = RESOURCE_EXHAUSTED desc = quota exceeded"), apperrors.CodeUpstreamTransient},
		{"bare 429", errors.New("upstream returned status 429"), apperrors.CodeUpstreamTransient},
		{"deadline", fmt.Errorf("call failed: %w", context.DeadlineExceeded), apperrors.CodeUpstreamTimeout},
		{"invalid request", errors.New("invalid request: model not found"), apperrors.CodeUpstreamFatal},
		{"auth failure", errors.New("API key not valid"), apperrors.CodeUpstreamFatal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := classifyUpstreamError(tc.err)
			assert.Equal(t, tc.code, appErr.Code)
			assert.ErrorIs(t, appErr, tc.err)
		})
	}
}
