package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsdesk/internal/fetcher"
	"newsdesk/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Status string `json:"status"`
	Items  []int  `json:"items"`
}

func TestGetJSON(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		expected payload
		wantKind fetcher.Kind
	}{
		{
			name:     "valid json",
			status:   http.StatusOK,
			body:     `{"status":"ok","items":[1,2,3]}`,
			expected: payload{Status: "ok", Items: []int{1, 2, 3}},
			wantKind: fetcher.KindNone,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `oops`,
			wantKind: fetcher.KindStatus,
		},
		{
			name:     "error body is still decoded",
			status:   http.StatusBadRequest,
			body:     `{"status":"error"}`,
			expected: payload{Status: "error"},
			wantKind: fetcher.KindStatus,
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `{"status": `,
			wantKind: fetcher.KindDecode,
		},
		{
			name:     "unexpected shape",
			status:   http.StatusOK,
			body:     `[1,2,3]`,
			wantKind: fetcher.KindDecode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := fetcher.New("test", server.Client(), nil)

			var got payload
			err := client.GetJSON(context.Background(), server.URL, &got)
			require.Equal(t, tc.wantKind, fetcher.KindOf(err))
			require.Equal(t, tc.expected, got)

			if tc.wantKind == fetcher.KindStatus {
				var fe *fetcher.Error
				require.True(t, errors.As(err, &fe))
				require.Equal(t, tc.status, fe.StatusCode)
			}
		})
	}
}

func TestGetJSON_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	m := metrics.New()
	client := fetcher.New("closed", nil, m)

	var got payload
	err := client.GetJSON(context.Background(), url, &got)
	require.Error(t, err)
	require.Equal(t, fetcher.KindTransport, fetcher.KindOf(err))
	require.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamCount("closed", "transport")))
}

func TestGetJSON_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var got payload
	err := fetcher.New("test", server.Client(), nil).GetJSON(ctx, server.URL, &got)
	require.Equal(t, fetcher.KindTransport, fetcher.KindOf(err))
}

func TestGetJSON_NullBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	var got *payload
	err := fetcher.New("test", server.Client(), nil).GetJSON(context.Background(), server.URL, &got)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestErrorDoesNotLeakAPIKey(t *testing.T) {
	client := fetcher.New("newsapi", nil, nil)

	var got payload
	err := client.GetJSON(context.Background(), "http://127.0.0.1:1/top?apiKey=secret&page=1", &got)
	require.Error(t, err)
	require.NotContains(t, err.Error(), "secret")

	var fe *fetcher.Error
	require.True(t, errors.As(err, &fe))
	require.NotContains(t, fe.URL, "secret")
}

func TestKindOf(t *testing.T) {
	require.Equal(t, fetcher.KindNone, fetcher.KindOf(nil))
	require.Equal(t, fetcher.KindUpstream, fetcher.KindOf(fetcher.Upstream("x", "bad category")))
	require.Equal(t, fetcher.KindTransport, fetcher.KindOf(errors.New("boom")))
	require.Equal(t, "decode", fetcher.KindDecode.String())
}
