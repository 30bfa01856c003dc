package transport_test

import (
	"testing"

	"github.com/greenlyst/greenmoney/pkg/transport"
	"github.com/stretchr/testify/assert"
)

var testCreds = transport.Credentials{ClientID: "118", APIPassword: "s3cret"}

func TestAssemble(t *testing.T) {
	op := transport.Operation{Name: "CheckStatus"}

	t.Run("injects credentials and delimiter controls", func(t *testing.T) {
		fields := transport.FieldsOf("Check_ID", "55")

		p := transport.Assemble("https://cpsandbox.com/echeck.asmx", op, fields, testCreds, ",")

		assert.Equal(t, "https://cpsandbox.com/echeck.asmx/CheckStatus", p.URL)
		assert.Equal(t, []string{"Check_ID", "Client_ID", "ApiPassword", "x_delim_data", "x_delim_char"}, p.Fields.Names())
		v, _ := p.Fields.Get("Client_ID")
		assert.Equal(t, "118", v)
		v, _ = p.Fields.Get("ApiPassword")
		assert.Equal(t, "s3cret", v)
		v, _ = p.Fields.Get("x_delim_data")
		assert.Equal(t, "TRUE", v)
		v, _ = p.Fields.Get("x_delim_char")
		assert.Equal(t, ",", v)
	})

	t.Run("does not overwrite caller supplied credentials", func(t *testing.T) {
		fields := transport.FieldsOf("Client_ID", "999", "ApiPassword", "override")

		p := transport.Assemble("https://x", op, fields, testCreds, ",")

		v, _ := p.Fields.Get("Client_ID")
		assert.Equal(t, "999", v)
		v, _ = p.Fields.Get("ApiPassword")
		assert.Equal(t, "override", v)
	})

	t.Run("forces delimited output even if the caller asked otherwise", func(t *testing.T) {
		fields := transport.FieldsOf("x_delim_data", "", "x_delim_char", "|")

		p := transport.Assemble("https://x", op, fields, testCreds, ",")

		v, _ := p.Fields.Get("x_delim_data")
		assert.Equal(t, "TRUE", v)
		v, _ = p.Fields.Get("x_delim_char")
		assert.Equal(t, ",", v)
	})

	t.Run("is idempotent and leaves the input untouched", func(t *testing.T) {
		fields := transport.FieldsOf("Check_ID", "55")

		first := transport.Assemble("https://x", op, fields, testCreds, ",")
		second := transport.Assemble("https://x", op, fields, testCreds, ",")

		assert.Equal(t, first, second)
		assert.Equal(t, []string{"Check_ID"}, fields.Names())

		again := transport.Assemble("https://x", op, first.Fields, testCreds, ",")
		assert.Equal(t, first.Fields, again.Fields)
	})
}

func TestFields(t *testing.T) {
	t.Run("set keeps position and replaces value", func(t *testing.T) {
		f := transport.FieldsOf("A", "1", "B", "2")
		f.Set("A", "3")

		assert.Equal(t, []string{"A", "B"}, f.Names())
		v, ok := f.Get("A")
		assert.True(t, ok)
		assert.Equal(t, "3", v)
	})

	t.Run("merge applies sources in order", func(t *testing.T) {
		merged := transport.Merge(
			transport.FieldsOf("Name", "first", "City", "Austin"),
			nil,
			transport.FieldsOf("Name", "second", "Zip", "78701"),
		)

		assert.Equal(t, []string{"Name", "City", "Zip"}, merged.Names())
		v, _ := merged.Get("Name")
		assert.Equal(t, "second", v)
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		f := transport.FieldsOf("CheckAmount", "1.00", "checkamount", "2.00")
		assert.Equal(t, 2, f.Len())
	})

	t.Run("values encode every field", func(t *testing.T) {
		f := transport.FieldsOf("Note", "a&b", "Check_ID", "7")
		assert.Equal(t, "Check_ID=7&Note=a%26b", f.Values().Encode())
	})

	t.Run("nil set is empty", func(t *testing.T) {
		var f *transport.Fields
		assert.Equal(t, 0, f.Len())
		assert.False(t, f.Has("A"))
		assert.Empty(t, f.Values())
	})
}

func TestCredentials(t *testing.T) {
	assert.NoError(t, testCreds.Validate())
	assert.Error(t, transport.Credentials{ClientID: "1"}.Validate())
	assert.Error(t, transport.Credentials{APIPassword: "x"}.Validate())
	assert.NotContains(t, testCreds.String(), "s3cret")
}
