package echeck_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/echeck/mocks"
	"github.com/greenlyst/greenmoney/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	lookup   = transport.Operation{Name: "CheckStatus", ReadOnly: true}
	mutation = transport.Operation{Name: "CancelCheck"}
	policy   = echeck.RetryPolicy{BaseDelay: time.Millisecond, MaxRetries: 3}
)

func serverError() error {
	return &transport.Error{Kind: transport.KindHTTPStatus, Operation: "CheckStatus", StatusCode: 503}
}

func TestRetryCaller_Success(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, policy)

	want := transport.Result{"Result": "0"}
	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, echeck.StatusSchema).
		Return(want, nil).
		Once()

	got, err := retry.Call(context.Background(), lookup, nil, echeck.StatusSchema)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRetryCaller_RetriesReadOnlyOn5xx(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, policy)

	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Return(nil, serverError()).
		Twice()
	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Return(transport.Result{"Result": "0"}, nil).
		Once()

	got, err := retry.Call(context.Background(), lookup, nil, echeck.StatusSchema)

	require.NoError(t, err)
	assert.Equal(t, "0", got.Get("Result"))
}

func TestRetryCaller_RetriesOnNetworkError(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, policy)

	netErr := &transport.Error{Kind: transport.KindNetwork, Operation: "CheckStatus", Message: "request timeout"}
	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Return(nil, netErr).
		Once()
	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Return(transport.Result{}, nil).
		Once()

	_, err := retry.Call(context.Background(), lookup, nil, echeck.StatusSchema)
	require.NoError(t, err)
}

func TestRetryCaller_ExhaustsRetries(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, policy)

	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Return(nil, serverError()).
		Times(3)

	got, err := retry.Call(context.Background(), lookup, nil, echeck.StatusSchema)

	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum retries exceeded")
	assert.True(t, transport.IsKind(err, transport.KindHTTPStatus))
}

func TestRetryCaller_NeverRetriesMutations(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, policy)

	inner.EXPECT().
		Call(mock.Anything, mutation, mock.Anything, mock.Anything).
		Return(nil, serverError()).
		Once()

	_, err := retry.Call(context.Background(), mutation, nil, echeck.StatusSchema)

	require.Error(t, err)
	assert.NotContains(t, err.Error(), "maximum retries exceeded")
}

func TestRetryCaller_DoesNotRetryClientErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"4xx", &transport.Error{Kind: transport.KindHTTPStatus, StatusCode: 400}},
		{"fault", &transport.Error{Kind: transport.KindProtocolFault, Fault: "bad input"}},
		{"malformed", &transport.Error{Kind: transport.KindMalformedResponse}},
		{"cancelled", &transport.Error{Kind: transport.KindNetwork, Cause: context.Canceled}},
		{"foreign error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := mocks.NewMockCaller(t)
			retry := echeck.NewRetryCaller(inner, policy)

			inner.EXPECT().
				Call(mock.Anything, lookup, mock.Anything, mock.Anything).
				Return(nil, tt.err).
				Once()

			_, err := retry.Call(context.Background(), lookup, nil, echeck.StatusSchema)

			assert.Equal(t, tt.err, err)
		})
	}
}

func TestRetryCaller_StopsOnContextCancel(t *testing.T) {
	inner := mocks.NewMockCaller(t)
	retry := echeck.NewRetryCaller(inner, echeck.RetryPolicy{BaseDelay: time.Hour, MaxRetries: 5})

	ctx, cancel := context.WithCancel(context.Background())
	inner.EXPECT().
		Call(mock.Anything, lookup, mock.Anything, mock.Anything).
		Run(func(context.Context, transport.Operation, *transport.Fields, transport.Schema) { cancel() }).
		Return(nil, serverError()).
		Once()

	start := time.Now()
	_, err := retry.Call(ctx, lookup, nil, echeck.StatusSchema)

	assert.Less(t, time.Since(start), time.Minute)
	assert.True(t, transport.IsKind(err, transport.KindHTTPStatus))
}

func TestRetryCaller_BackoffIsBounded(t *testing.T) {
	retry := echeck.NewRetryCaller(mocks.NewMockCaller(t), echeck.RetryPolicy{
		BaseDelay:  time.Second,
		MaxDelay:   10 * time.Second,
		MaxRetries: 200,
	})

	first := retry.Backoff(0)
	assert.GreaterOrEqual(t, first, time.Second)
	assert.Less(t, first, 2*time.Second)

	for _, attempt := range []int{5, 40, 63, 64, 70, 199} {
		d := retry.Backoff(attempt)
		assert.Positive(t, d, "attempt %d", attempt)
		assert.LessOrEqual(t, d, 10*time.Second, "attempt %d", attempt)
	}
	assert.Equal(t, 10*time.Second, retry.Backoff(199))
}

func TestRetryCaller_DefaultMaxDelay(t *testing.T) {
	retry := echeck.NewRetryCaller(mocks.NewMockCaller(t), echeck.RetryPolicy{BaseDelay: time.Second, MaxRetries: 100})

	assert.Equal(t, echeck.DefaultMaxDelay, retry.Backoff(99))
}
