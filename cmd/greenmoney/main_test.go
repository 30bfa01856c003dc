package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenlyst/greenmoney/pkg/echeck"
	"github.com/greenlyst/greenmoney/pkg/transport"
)

type fakeRemote struct {
	server *httptest.Server
	hits   atomic.Int32
	path   atomic.Value
}

// newFakeRemote answers every operation with body and points the CLI at it.
func newFakeRemote(t *testing.T, status int, body string) *fakeRemote {
	t.Helper()
	f := &fakeRemote{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.path.Store(r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client-1", r.PostForm.Get("Client_ID"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.server.Close)

	t.Setenv("GREENMONEY_CREDENTIALS__CLIENT_ID", "client-1")
	t.Setenv("GREENMONEY_CREDENTIALS__API_PASSWORD", "secret")
	t.Setenv("GREENMONEY_TRANSPORT__BASE_URL", f.server.URL)
	t.Setenv("GREENMONEY_RETRY__BASE_DELAY", "1ms")
	t.Setenv("GREENMONEY_LOGGER__LEVEL", "error")
	return f
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckStatus(t *testing.T) {
	remote := newFakeRemote(t, http.StatusOK, "0,OK,0,Verified,0,0,,1,01/05/2026,0,,1001,55")

	t.Run("delimited", func(t *testing.T) {
		out, err := run(t, "check", "status", "55", "--format", "delimited")

		require.NoError(t, err)
		assert.Equal(t, "0,OK,0,Verified,0,0,,1,01/05/2026,0,,1001,55\n", out)
		assert.Equal(t, "/CheckStatus", remote.path.Load())
	})

	t.Run("map in schema order", func(t *testing.T) {
		out, err := run(t, "check", "status", "55")

		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, len(echeck.CheckStatusSchema))
		for i, name := range echeck.CheckStatusSchema {
			assert.True(t, strings.HasPrefix(lines[i], name+" "), lines[i])
		}
		assert.Contains(t, lines[len(lines)-1], "55")
	})
}

func TestCheckWatch(t *testing.T) {
	newFakeRemote(t, http.StatusOK, "0,OK,0,Verified,0,0,,1,01/05/2026,0,,1001,55")

	out, err := run(t, "check", "watch", "55", "--interval", "10ms")

	require.NoError(t, err)
	assert.Equal(t, "55\tprocessed\n", out)
}

func TestCheckWatch_InvalidInterval(t *testing.T) {
	for _, interval := range []string{"0s", "-5s"} {
		t.Run(interval, func(t *testing.T) {
			remote := newFakeRemote(t, http.StatusOK, "0,OK,0,Verified,0,0,,1,01/05/2026,0,,1001,55")

			_, err := run(t, "check", "watch", "55", "--interval="+interval)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "--interval must be positive")
			assert.Equal(t, int32(0), remote.hits.Load())
		})
	}
}

func TestCheckCancel_RemoteFailureNotRetried(t *testing.T) {
	remote := newFakeRemote(t, http.StatusServiceUnavailable, "down")

	_, err := run(t, "check", "cancel", "55")

	require.Error(t, err)
	assert.True(t, transport.IsKind(err, transport.KindHTTPStatus))
	assert.Equal(t, int32(1), remote.hits.Load())
}

func TestCheckNote(t *testing.T) {
	remote := newFakeRemote(t, http.StatusOK, "0,Note added")

	out, err := run(t, "check", "note", "55", "called customer")

	require.NoError(t, err)
	assert.Contains(t, out, "Note added")
	assert.Equal(t, "/CheckNote", remote.path.Load())
}

func TestBillPay(t *testing.T) {
	payee := []string{"--name", "Acme Supply", "--amount", "20.00", "--date", "02/01/2026"}

	t.Run("mails a check without bank", func(t *testing.T) {
		remote := newFakeRemote(t, http.StatusOK, "0,OK,1002,77")

		out, err := run(t, append([]string{"billpay", "--format", "delimited"}, payee...)...)

		require.NoError(t, err)
		assert.Equal(t, "0,OK,1002,77\n", out)
		assert.Equal(t, "/BillPayCheckNoBankInfo", remote.path.Load())
	})

	t.Run("drafts from a bank account", func(t *testing.T) {
		remote := newFakeRemote(t, http.StatusOK, "0,OK,1002,77")

		_, err := run(t, append([]string{"billpay", "--routing", "111000025", "--account", "1234"}, payee...)...)

		require.NoError(t, err)
		assert.Equal(t, "/BillPayCheck", remote.path.Load())
	})

	t.Run("recurring needs bank", func(t *testing.T) {
		remote := newFakeRemote(t, http.StatusOK, "0,OK,1002,77")

		_, err := run(t, append([]string{"billpay", "--every", "M", "--payments", "3"}, payee...)...)

		require.Error(t, err)
		assert.Equal(t, int32(0), remote.hits.Load())
	})
}

func TestInvoiceStatus(t *testing.T) {
	remote := newFakeRemote(t, http.StatusOK, "0,OK,1,Paid,3,55")

	out, err := run(t, "invoice", "status", "3", "--format", "delimited")

	require.NoError(t, err)
	assert.Equal(t, "0,OK,1,Paid,3,55\n", out)
	assert.Equal(t, "/InvoiceStatus", remote.path.Load())
}

func TestUnknownFormat(t *testing.T) {
	remote := newFakeRemote(t, http.StatusOK, "0,OK")

	_, err := run(t, "check", "cancel", "55", "--format", "yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Equal(t, int32(0), remote.hits.Load())
}

func TestPrintResult(t *testing.T) {
	schema := transport.Schema{"Result", "ResultDescription", "Check_ID"}
	result := transport.Result{"Result": "0", "ResultDescription": "OK", "Check_ID": "55", "Extra": "x"}

	t.Run("delimited", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, formatDelimited, "|", schema, result))
		assert.Equal(t, "0|OK|55\n", buf.String())
	})

	t.Run("map", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printResult(&buf, formatMap, ",", schema, result))
		assert.Equal(t, "Result             0\nResultDescription  OK\nCheck_ID           55\n", buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, printResult(&bytes.Buffer{}, "xml", ",", schema, result))
	})
}
